// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/danielhkuo/feedback-board/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference means a row points at a user or feedback that
	// does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

const (
	rowTimeout  = 3 * time.Second
	listTimeout = 5 * time.Second
)

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// FeedbackStore persists feedback items and reads them back as views.
type FeedbackStore interface {
	Create(ctx context.Context, f *models.Feedback) (*models.FeedbackView, error)
	Get(ctx context.Context, id string) (*models.FeedbackView, error)
	List(ctx context.Context, status string) ([]models.FeedbackView, error)
	UpdateStatus(ctx context.Context, id, status string, at time.Time) (*models.FeedbackView, error)
}

// VoteLedger records one vote per (user, feedback) pair.
type VoteLedger interface {
	Toggle(ctx context.Context, userID, feedbackID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]string, error)
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
