// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: name, email, password
  - LoginRequest: email, password
  - CreateFeedbackRequest: title, description
  - UpdateStatusRequest: status

# Response Types

Every response is wrapped in APIResponse:

	{"success": true, "message": "...", "count": 2, "data": {...}}

Payloads placed in Data:

  - AuthData: user, token
  - UserData: user
  - FeedbackData: feedback
  - FeedbackListData: feedbacks
  - VoteData: voted
  - UserVotesData: votedFeedbacks

# Domain Types

  - User: account; the password hash is never serialized
  - Feedback: stored feedback row
  - FeedbackView: feedback plus author_name, author_id, votes_count

# Constants

Status values:

	StatusPlanned    = "Planned"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusRejected   = "Rejected"
*/
package models
