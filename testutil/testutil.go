// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/feedback-board/auth"
	"github.com/danielhkuo/feedback-board/cliparse"
	"github.com/danielhkuo/feedback-board/db"
	"github.com/danielhkuo/feedback-board/models"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// TestPassword is the password of every fixture user
const TestPassword = "password123"

// bcrypt hash of TestPassword, computed on first use
var testPasswordHash string

// SetupTestDB creates a fresh SQLite database in a temp dir with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feedback_test.db")
	conn, err := db.Open(context.Background(), cliparse.DatabaseSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5000,
		DatabaseURL:  "feedback_test.db",
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    TestJWTSecret,
		TokenTTL:     time.Hour,
		FrontendURL:  "https://board.example.com",
		Environment:  "test",
	}
}

// CreateTestUser inserts a user whose password is TestPassword
func CreateTestUser(t *testing.T, conn *sql.DB, name, email string) models.User {
	t.Helper()

	if testPasswordHash == "" {
		h, err := auth.HashPassword(TestPassword)
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}
		testPasswordHash = h
	}

	u := models.User{
		ID:           auth.GenerateID(),
		Name:         name,
		Email:        email,
		PasswordHash: testPasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := conn.Exec(`
		INSERT INTO users (id, name, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return u
}

// CreateTestFeedback inserts a feedback item and returns its ID
func CreateTestFeedback(t *testing.T, conn *sql.DB, authorID, title, status string, createdAt time.Time) string {
	t.Helper()

	id := auth.GenerateID()
	createdAt = createdAt.UTC()
	_, err := conn.Exec(`
		INSERT INTO feedbacks (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, authorID, title, "Description of "+title, status, createdAt, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test feedback: %v", err)
	}

	return id
}

// AddTestVote records a vote of userID on feedbackID
func AddTestVote(t *testing.T, conn *sql.DB, userID, feedbackID string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (id, user_id, feedback_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, auth.GenerateID(), userID, feedbackID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// CountVotes returns the number of vote rows for a (user, feedback) pair
func CountVotes(t *testing.T, conn *sql.DB, userID, feedbackID string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM votes WHERE user_id = $1 AND feedback_id = $2
	`, userID, feedbackID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// AuthHeader returns an Authorization header carrying a valid token for u
func AuthHeader(t *testing.T, u models.User) map[string]string {
	t.Helper()

	tok, err := auth.IssueToken(TestJWTSecret, u.ID, u.Name, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + tok}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
