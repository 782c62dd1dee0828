// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
humanized response size, duration_ms).

# Authentication

RequireAuth checks the Authorization: Bearer header and stores the caller
in the request context:

	protect := middleware.RequireAuth(cfg.JWTSecret)
	mux.HandleFunc("POST /api/feedbacks", middleware.WithLogging(protect(h.Create)))

Handlers read the caller back with auth.FromContext.

# CORS and Recovery

	handler := middleware.Recover(middleware.CORS(middleware.AllowedOrigins(cfg.FrontendURL))(mux))

CORS echoes allowed origins (local dev servers, FRONTEND_URL and hosted
frontends on vercel, netlify and render) and answers preflight with 204.
Recover turns panics into a 500 envelope.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, models.APIResponse{Success: true, Data: data})
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreateFeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
