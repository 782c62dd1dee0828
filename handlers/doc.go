// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Feedback Board API.

# Handler Types

Each handler wraps a *service.Service:

  - AuthHandler: registration, login and the current user
  - FeedbackHandler: listing, creating, status updates and vote toggles

	svc := service.New(users, feedbacks, votes, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(svc)

# Responses

Every response uses the models.APIResponse envelope:

	{"success": true, "message": "...", "count": 3, "data": {...}}

Service errors map to statuses: validation 400, unauthorized 401, not
found 404, conflict 409. Anything else is logged and answered with 500.

# Authentication

Handlers behind middleware.RequireAuth read the caller with
auth.FromContext. Status updates are open to any signed-in user.

# Voting

	POST /api/feedbacks/{id}/vote → Vote

Adds the caller's vote when absent and removes it when present. The
response reports the new state as {"voted": bool}.
*/
package handlers
