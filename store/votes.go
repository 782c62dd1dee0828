// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/feedback-board/auth"
	"github.com/danielhkuo/feedback-board/db"
)

// VoteRepository is the vote ledger.
type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Toggle flips the vote of userID on feedbackID and reports whether a vote
// exists afterwards. Returns ErrNotFound if the feedback does not exist.
//
// The delete and the insert run in one transaction. A concurrent toggle
// that inserts the same pair first makes our insert a no-op via
// ON CONFLICT, so the pair never holds two rows.
func (r *VoteRepository) Toggle(ctx context.Context, userID, feedbackID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM feedbacks WHERE id = $1)
	`, feedbackID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check feedback: %w", err)
	}
	if !exists {
		return false, ErrNotFound
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM votes WHERE user_id = $1 AND feedback_id = $2
	`, userID, feedbackID)
	if err != nil {
		return false, fmt.Errorf("delete vote: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	voted := removed == 0
	if voted {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO votes (id, user_id, feedback_id, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, feedback_id) DO NOTHING
		`, auth.GenerateID(), userID, feedbackID, time.Now().UTC())
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return false, ErrMissingReference
			}
			return false, fmt.Errorf("insert vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return voted, nil
}

// ListByUser returns the IDs of every feedback item userID has voted on.
func (r *VoteRepository) ListByUser(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT feedback_id FROM votes WHERE user_id = $1 ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	return ids, nil
}
