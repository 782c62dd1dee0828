// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/feedback-board/db"
	"github.com/danielhkuo/feedback-board/models"
)

// FeedbackRepository stores feedback items and aggregates their votes.
type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// viewSelect joins the author and counts votes. LEFT JOIN keeps items with
// no votes; COUNT(DISTINCT) keeps the author join from inflating the total.
const viewSelect = `
	SELECT
		f.id,
		f.title,
		f.description,
		f.status,
		f.created_at,
		f.updated_at,
		u.name AS author_name,
		u.id AS author_id,
		COUNT(DISTINCT v.id) AS votes_count
	FROM feedbacks f
	LEFT JOIN users u ON f.user_id = u.id
	LEFT JOIN votes v ON f.id = v.feedback_id
`

const viewGroupBy = ` GROUP BY f.id, u.name, u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(row rowScanner) (models.FeedbackView, error) {
	var fv models.FeedbackView
	var authorName, authorID sql.NullString
	err := row.Scan(
		&fv.ID,
		&fv.Title,
		&fv.Description,
		&fv.Status,
		&fv.CreatedAt,
		&fv.UpdatedAt,
		&authorName,
		&authorID,
		&fv.VotesCount,
	)
	fv.AuthorName = authorName.String
	fv.AuthorID = authorID.String
	return fv, err
}

func getView(ctx context.Context, q queryRower, id string) (*models.FeedbackView, error) {
	fv, err := scanView(q.QueryRowContext(ctx, viewSelect+` WHERE f.id = $1`+viewGroupBy, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	return &fv, nil
}

// Create inserts f and returns it joined with its author.
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) (*models.FeedbackView, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO feedbacks (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, f.ID, f.AuthorID, f.Title, f.Description, f.Status, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrMissingReference
		}
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	fv, err := getView(ctx, tx, f.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return fv, nil
}

// Get returns one feedback view or ErrNotFound.
func (r *FeedbackRepository) Get(ctx context.Context, id string) (*models.FeedbackView, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()
	return getView(ctx, r.db, id)
}

// List returns feedback views newest first. An empty status returns all items.
func (r *FeedbackRepository) List(ctx context.Context, status string) ([]models.FeedbackView, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := viewSelect
	var args []any
	if status != "" {
		query += ` WHERE f.status = $1`
		args = append(args, status)
	}
	query += viewGroupBy + ` ORDER BY f.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feedbacks: %w", err)
	}
	defer rows.Close()

	out := []models.FeedbackView{}
	for rows.Next() {
		fv, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, fv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedbacks: %w", err)
	}
	return out, nil
}

// UpdateStatus overwrites the status, stamps updated_at and returns the
// refreshed view. Returns ErrNotFound if no row matched.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id, status string, at time.Time) (*models.FeedbackView, error) {
	ctx, cancel := context.WithTimeout(ctx, rowTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE feedbacks SET status = $1, updated_at = $2 WHERE id = $3
	`, status, at, id)
	if err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	fv, err := getView(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return fv, nil
}
