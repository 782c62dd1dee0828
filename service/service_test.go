// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/feedback-board/auth"
	"github.com/danielhkuo/feedback-board/models"
	"github.com/danielhkuo/feedback-board/store"
	"github.com/danielhkuo/feedback-board/testutil"
)

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := New(
		store.NewUserRepository(db),
		store.NewFeedbackRepository(db),
		store.NewVoteRepository(db),
		testutil.GetTestConfig(),
	)
	return svc, &testDeps{svc: svc, t: t}
}

type testDeps struct {
	svc *Service
	t   *testing.T
}

func (d *testDeps) user(name string) models.User {
	d.t.Helper()
	u, _, err := d.svc.Register(context.Background(), models.RegisterRequest{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "password123",
	})
	if err != nil {
		d.t.Fatalf("register %s: %v", name, err)
	}
	return *u
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, token, err := svc.Register(ctx, models.RegisterRequest{
		Name:     "  Alice ",
		Email:    " Alice@Example.COM ",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Name != "Alice" || u.Email != "alice@example.com" {
		t.Errorf("input not normalized: %+v", u)
	}
	if u.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}
	p, err := auth.ParseToken(testutil.TestJWTSecret, token)
	if err != nil || p.UserID != u.ID {
		t.Errorf("register token: %v %+v", err, p)
	}

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, _, err := svc.Register(ctx, models.RegisterRequest{
			Name: "Alice Two", Email: "alice@example.com", Password: "password456",
		})
		if !errors.Is(err, ErrConflict) {
			t.Errorf("got %v, want ErrConflict", err)
		}
	})

	t.Run("login with correct credentials", func(t *testing.T) {
		got, token, err := svc.Login(ctx, models.LoginRequest{Email: "ALICE@example.com", Password: "password123"})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if got.ID != u.ID {
			t.Errorf("login returned %s, want %s", got.ID, u.ID)
		}
		p, err := auth.ParseToken(testutil.TestJWTSecret, token)
		if err != nil || p.UserID != u.ID || p.Name != "Alice" {
			t.Errorf("login token principal: %v %+v", err, p)
		}
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "nope-nope"})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("got %v, want ErrUnauthorized", err)
		}
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "password123"})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("got %v, want ErrUnauthorized", err)
		}
	})

	t.Run("current user", func(t *testing.T) {
		got, err := svc.CurrentUser(ctx, u.ID)
		if err != nil || got.Email != "alice@example.com" {
			t.Errorf("current user: %v %+v", err, got)
		}
		if _, err := svc.CurrentUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing user: got %v, want ErrNotFound", err)
		}
		if _, err := svc.CurrentUser(ctx, ""); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("no principal: got %v, want ErrUnauthorized", err)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantMsg string
	}{
		{"missing name", models.RegisterRequest{Email: "a@example.com", Password: "password123"}, "name is required"},
		{"blank name", models.RegisterRequest{Name: "   ", Email: "a@example.com", Password: "password123"}, "name is required"},
		{"bad email", models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "password123"}, "email must be a valid email address"},
		{"short password", models.RegisterRequest{Name: "A", Email: "a@example.com", Password: "123"}, "password must be at least 6 characters"},
		{"multibyte password over 72 bytes", models.RegisterRequest{Name: "A", Email: "a@example.com", Password: strings.Repeat("é", 40)}, "password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}

	if _, _, err := svc.Login(context.Background(), models.LoginRequest{}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty login: got %v, want ErrValidation", err)
	}
}

func TestCreateFeedback(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()
	alice := deps.user("Alice")

	tests := []struct {
		name        string
		title       string
		description string
		wantErr     error
	}{
		{"empty title", "", "x", ErrValidation},
		{"empty description", "x", "", ErrValidation},
		{"whitespace title", "   ", "x", ErrValidation},
		{"title too long", strings.Repeat("t", 201), "x", ErrValidation},
		{"valid", "Title", "Desc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv, err := svc.CreateFeedback(ctx, alice.ID, tt.title, tt.description)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if fv.Status != models.StatusPlanned {
				t.Errorf("status = %q, want Planned", fv.Status)
			}
			if fv.AuthorID != alice.ID || fv.AuthorName != "Alice" || fv.VotesCount != 0 {
				t.Errorf("unexpected view: %+v", fv)
			}
		})
	}

	if _, err := svc.CreateFeedback(ctx, "", "Title", "Desc"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous create: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.CreateFeedback(ctx, "deleted-user", "Title", "Desc"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("create by deleted user: got %v, want ErrUnauthorized", err)
	}
}

func TestRegisterPasswordAtByteLimit(t *testing.T) {
	svc, _ := newTestService(t)

	// 36 two-byte runes is exactly 72 bytes.
	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Name: "A", Email: "a@example.com", Password: strings.Repeat("é", 36),
	})
	if err != nil {
		t.Fatalf("72-byte password rejected: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, deps := newTestService(t)
	svc.now = fixedClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	alice := deps.user("Alice")

	fv, err := svc.CreateFeedback(ctx, alice.ID, "Title", "Desc")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateStatus(ctx, fv.ID, "Bogus"); !errors.Is(err, ErrValidation) {
		t.Errorf("bogus status: got %v, want ErrValidation", err)
	}
	if _, err := svc.UpdateStatus(ctx, fv.ID, "completed"); !errors.Is(err, ErrValidation) {
		t.Errorf("status match must be exact: got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, fv.ID, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty status: got %v, want ErrValidation", err)
	}

	updated, err := svc.UpdateStatus(ctx, fv.ID, models.StatusCompleted)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q", updated.Status)
	}
	if !updated.UpdatedAt.After(fv.UpdatedAt) {
		t.Errorf("updated_at did not advance: %v -> %v", fv.UpdatedAt, updated.UpdatedAt)
	}

	// No transition graph: Completed may go back to Planned.
	back, err := svc.UpdateStatus(ctx, fv.ID, models.StatusPlanned)
	if err != nil || back.Status != models.StatusPlanned {
		t.Errorf("Completed -> Planned: %v %+v", err, back)
	}

	if _, err := svc.UpdateStatus(ctx, "missing", models.StatusRejected); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing feedback: got %v, want ErrNotFound", err)
	}
}

func TestListFeedback(t *testing.T) {
	svc, deps := newTestService(t)
	svc.now = fixedClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()
	alice := deps.user("Alice")

	first, _ := svc.CreateFeedback(ctx, alice.ID, "first", "d")
	second, _ := svc.CreateFeedback(ctx, alice.ID, "second", "d")
	third, _ := svc.CreateFeedback(ctx, alice.ID, "third", "d")
	for _, id := range []string{first.ID, third.ID} {
		if _, err := svc.UpdateStatus(ctx, id, models.StatusRejected); err != nil {
			t.Fatal(err)
		}
	}

	rejected, err := svc.ListFeedback(ctx, models.StatusRejected)
	if err != nil {
		t.Fatal(err)
	}
	if len(rejected) != 2 || rejected[0].ID != third.ID || rejected[1].ID != first.ID {
		t.Errorf("rejected list = %+v", rejected)
	}

	all, err := svc.ListFeedback(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != third.ID || all[1].ID != second.ID || all[2].ID != first.ID {
		t.Errorf("all list order wrong: %+v", all)
	}

	if _, err := svc.ListFeedback(ctx, "Bogus"); !errors.Is(err, ErrValidation) {
		t.Errorf("bogus filter: got %v, want ErrValidation", err)
	}
}

func TestGetFeedbackNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GetFeedback(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestToggleVote(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()
	alice := deps.user("Alice")
	bob := deps.user("Bob")

	fv, err := svc.CreateFeedback(ctx, alice.ID, "Title", "Desc")
	if err != nil {
		t.Fatal(err)
	}

	voted, err := svc.ToggleVote(ctx, alice.ID, fv.ID)
	if err != nil || !voted {
		t.Fatalf("first toggle: %v %v", voted, err)
	}
	voted, err = svc.ToggleVote(ctx, alice.ID, fv.ID)
	if err != nil || voted {
		t.Fatalf("second toggle: %v %v", voted, err)
	}

	// Count equals distinct current voters, not cumulative toggles.
	for _, u := range []models.User{alice, bob} {
		if _, err := svc.ToggleVote(ctx, u.ID, fv.ID); err != nil {
			t.Fatal(err)
		}
	}
	got, err := svc.GetFeedback(ctx, fv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.VotesCount != 2 {
		t.Errorf("votes_count = %d, want 2", got.VotesCount)
	}

	ids, err := svc.ListVotesByUser(ctx, bob.ID)
	if err != nil || len(ids) != 1 || ids[0] != fv.ID {
		t.Errorf("bob's votes = %v, %v", ids, err)
	}

	if _, err := svc.ToggleVote(ctx, alice.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing feedback: got %v, want ErrNotFound", err)
	}
	if _, err := svc.ToggleVote(ctx, "", fv.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous toggle: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.ToggleVote(ctx, "deleted-user", fv.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("toggle by deleted user: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.ListVotesByUser(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous list: got %v, want ErrUnauthorized", err)
	}
}

type failingFeedbacks struct {
	store.FeedbackStore
	err error
}

func (f failingFeedbacks) List(context.Context, string) ([]models.FeedbackView, error) {
	return nil, f.err
}

func TestStoreFailuresPassThrough(t *testing.T) {
	boom := errors.New("connection reset")
	svc := New(nil, failingFeedbacks{err: boom}, nil, testutil.GetTestConfig())

	_, err := svc.ListFeedback(context.Background(), "")
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want store error", err)
	}
	for _, sentinel := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, sentinel) {
			t.Errorf("store failure must not map to %v", sentinel)
		}
	}
}
