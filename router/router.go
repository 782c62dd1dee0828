// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/feedback-board/cliparse"
	"github.com/danielhkuo/feedback-board/handlers"
	"github.com/danielhkuo/feedback-board/middleware"
	"github.com/danielhkuo/feedback-board/models"
	"github.com/danielhkuo/feedback-board/service"
	"github.com/danielhkuo/feedback-board/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	svc := service.New(
		store.NewUserRepository(db),
		store.NewFeedbackRepository(db),
		store.NewVoteRepository(db),
		cfg,
	)
	authHandler := handlers.NewAuthHandler(svc)
	feedbackHandler := handlers.NewFeedbackHandler(svc)

	log := middleware.WithLogging
	protect := middleware.RequireAuth(cfg.JWTSecret)

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.APIResponse{Success: true, Message: "Server is running"})
	})

	// Accounts
	mux.HandleFunc("POST /api/auth/register", log(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", log(authHandler.Login))
	mux.HandleFunc("GET /api/auth/me", log(protect(authHandler.Me)))

	// Feedback (reads are public)
	mux.HandleFunc("GET /api/feedbacks", log(feedbackHandler.List))
	mux.HandleFunc("GET /api/feedbacks/{id}", log(feedbackHandler.Get))
	mux.HandleFunc("POST /api/feedbacks", log(protect(feedbackHandler.Create)))
	mux.HandleFunc("PUT /api/feedbacks/{id}", log(protect(feedbackHandler.UpdateStatus)))

	// Votes
	mux.HandleFunc("POST /api/feedbacks/{id}/vote", log(protect(feedbackHandler.Vote)))
	mux.HandleFunc("GET /api/feedbacks/votes/me", log(protect(feedbackHandler.MyVotes)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("feedback-board API v1"))
	})

	// Everything else
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Route not found")
	})

	cors := middleware.CORS(middleware.AllowedOrigins(cfg.FrontendURL))
	return middleware.Recover(cors(mux))
}
