package models

import "time"

// Feedback status constants
const (
	StatusPlanned    = "Planned"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusRejected   = "Rejected"
)

// Statuses lists every accepted feedback status in lifecycle order.
var Statuses = []string{StatusPlanned, StatusInProgress, StatusCompleted, StatusRejected}

// IsValidStatus reports whether s is one of Statuses (exact match).
func IsValidStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateFeedbackRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response types

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type AuthData struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type UserData struct {
	User User `json:"user"`
}

type FeedbackData struct {
	Feedback FeedbackView `json:"feedback"`
}

type FeedbackListData struct {
	Feedbacks []FeedbackView `json:"feedbacks"`
}

type VoteData struct {
	Voted bool `json:"voted"`
}

type UserVotesData struct {
	VotedFeedbacks []string `json:"votedFeedbacks"`
}

// Domain types

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Feedback struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FeedbackView is a feedback item joined with its author and vote total.
type FeedbackView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AuthorName  string    `json:"author_name"`
	AuthorID    string    `json:"author_id"`
	VotesCount  int64     `json:"votes_count"`
}
