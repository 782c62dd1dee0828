// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-board/auth"
	"github.com/danielhkuo/feedback-board/middleware"
	"github.com/danielhkuo/feedback-board/models"
	"github.com/danielhkuo/feedback-board/service"
)

// ok writes a success envelope
func ok(w http.ResponseWriter, status int, message string, data any) {
	middleware.JSONResponse(w, status, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// callerID returns the authenticated user ID, or "" when there is none.
func callerID(r *http.Request) string {
	p, found := auth.FromContext(r.Context())
	if !found {
		return ""
	}
	return p.UserID
}

// serviceError maps service errors onto HTTP statuses. Store failures are
// logged and answered with failMsg so internals never reach the client.
func serviceError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg, failMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, service.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, service.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "User already exists")
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, failMsg)
	}
}
