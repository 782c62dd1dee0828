// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Feedback Board API.

# Route Registration

NewRouter wires stores, service and handlers together and returns the
full handler, already wrapped in CORS and panic recovery:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /api/health

Accounts:

	POST /api/auth/register - Create account, returns token
	POST /api/auth/login    - Exchange credentials for a token
	GET  /api/auth/me       - Current user (auth)

Feedback:

	GET  /api/feedbacks?status= - List, newest first, with vote counts
	GET  /api/feedbacks/{id}    - One item
	POST /api/feedbacks         - Create (auth)
	PUT  /api/feedbacks/{id}    - Change status (auth)

Votes:

	POST /api/feedbacks/{id}/vote - Toggle the caller's vote (auth)
	GET  /api/feedbacks/votes/me  - IDs the caller voted on (auth)

Any other path answers 404 "Route not found".
*/
package router
