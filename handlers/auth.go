// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-board/middleware"
	"github.com/danielhkuo/feedback-board/models"
	"github.com/danielhkuo/feedback-board/service"
)

type AuthHandler struct {
	svc *service.Service
}

func NewAuthHandler(svc *service.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	u, token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		serviceError(w, r, err, "User not found", "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", u.ID)

	ok(w, http.StatusCreated, "User registered successfully", models.AuthData{User: *u, Token: token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	u, token, err := h.svc.Login(r.Context(), req)
	if errors.Is(err, service.ErrUnauthorized) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		serviceError(w, r, err, "User not found", "Failed to log in")
		return
	}

	ok(w, http.StatusOK, "Login successful", models.AuthData{User: *u, Token: token})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.CurrentUser(r.Context(), callerID(r))
	if err != nil {
		serviceError(w, r, err, "User not found", "Failed to load user")
		return
	}

	ok(w, http.StatusOK, "", models.UserData{User: *u})
}
