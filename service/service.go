// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/feedback-board/auth"
	"github.com/danielhkuo/feedback-board/cliparse"
	"github.com/danielhkuo/feedback-board/models"
	"github.com/danielhkuo/feedback-board/store"
)

const statusTag = "feedback_status"

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Service holds the feedback board rules. It talks to storage only through
// the store interfaces it is given.
type Service struct {
	users     store.UserStore
	feedbacks store.FeedbackStore
	votes     store.VoteLedger

	jwtSecret string
	tokenTTL  time.Duration

	validate *validator.Validate
	now      func() time.Time
}

func New(users store.UserStore, feedbacks store.FeedbackStore, votes store.VoteLedger, cfg cliparse.Config) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	err := v.RegisterValidation(statusTag, func(fl validator.FieldLevel) bool {
		return models.IsValidStatus(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", statusTag, err))
	}

	return &Service{
		users:     users,
		feedbacks: feedbacks,
		votes:     votes,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
		validate:  v,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type feedbackInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,feedback_status"`
}

func (s *Service) check(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return &ValidationError{Message: describe(err)}
	}
	return nil
}

func requireUser(userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	return nil
}

// Register creates an account and returns it with a fresh token.
// Emails are compared case-insensitively.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	in := registerInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}
	if err := s.check(in); err != nil {
		return nil, "", err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, "", invalid("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		ID:           auth.GenerateID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", fmt.Errorf("email %s: %w", in.Email, ErrConflict)
		}
		return nil, "", err
	}

	token, err := auth.IssueToken(s.jwtSecret, u.ID, u.Name, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks credentials. Unknown emails and wrong passwords both
// return ErrUnauthorized.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	in := loginInput{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
	}
	if err := s.check(in); err != nil {
		return nil, "", err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrUnauthorized
	}
	if err != nil {
		return nil, "", err
	}
	if err := auth.CheckPassword(u.PasswordHash, in.Password); err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := auth.IssueToken(s.jwtSecret, u.ID, u.Name, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return u, err
}

// ListFeedback returns feedback newest first, optionally filtered by an
// exact status.
func (s *Service) ListFeedback(ctx context.Context, status string) ([]models.FeedbackView, error) {
	if status != "" && !models.IsValidStatus(status) {
		return nil, invalid("status must be one of: %s", strings.Join(models.Statuses, ", "))
	}
	return s.feedbacks.List(ctx, status)
}

func (s *Service) GetFeedback(ctx context.Context, id string) (*models.FeedbackView, error) {
	fv, err := s.feedbacks.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}
	return fv, err
}

// CreateFeedback stores a new item in the Planned state.
func (s *Service) CreateFeedback(ctx context.Context, authorID, title, description string) (*models.FeedbackView, error) {
	if err := requireUser(authorID); err != nil {
		return nil, err
	}
	in := feedbackInput{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	now := s.now()
	fv, err := s.feedbacks.Create(ctx, &models.Feedback{
		ID:          auth.GenerateID(),
		AuthorID:    authorID,
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusPlanned,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, store.ErrMissingReference) {
		return nil, fmt.Errorf("author %s: %w", authorID, ErrUnauthorized)
	}
	return fv, err
}

// UpdateStatus overwrites the status of a feedback item. Any status may
// follow any other.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*models.FeedbackView, error) {
	if err := s.check(statusInput{Status: status}); err != nil {
		return nil, err
	}

	fv, err := s.feedbacks.UpdateStatus(ctx, id, status, s.now())
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}
	return fv, err
}

// ToggleVote adds the caller's vote if absent and removes it if present.
// It reports whether the caller has a vote afterwards.
func (s *Service) ToggleVote(ctx context.Context, userID, feedbackID string) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	voted, err := s.votes.Toggle(ctx, userID, feedbackID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return false, fmt.Errorf("feedback %s: %w", feedbackID, ErrNotFound)
	case errors.Is(err, store.ErrMissingReference):
		return false, fmt.Errorf("user %s: %w", userID, ErrUnauthorized)
	}
	return voted, err
}

// ListVotesByUser returns the IDs of the feedback items userID voted on.
func (s *Service) ListVotesByUser(ctx context.Context, userID string) ([]string, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.votes.ListByUser(ctx, userID)
}
