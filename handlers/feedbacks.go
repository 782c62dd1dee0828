// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/feedback-board/middleware"
	"github.com/danielhkuo/feedback-board/models"
	"github.com/danielhkuo/feedback-board/service"
)

const feedbackNotFound = "Feedback not found"

type FeedbackHandler struct {
	svc *service.Service
}

func NewFeedbackHandler(svc *service.Service) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// List handles GET /api/feedbacks?status=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListFeedback(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		serviceError(w, r, err, feedbackNotFound, "Failed to fetch feedbacks")
		return
	}

	count := len(items)
	middleware.JSONResponse(w, http.StatusOK, models.APIResponse{
		Success: true,
		Count:   &count,
		Data:    models.FeedbackListData{Feedbacks: items},
	})
}

// Get handles GET /api/feedbacks/{id}
func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	fv, err := h.svc.GetFeedback(r.Context(), r.PathValue("id"))
	if err != nil {
		serviceError(w, r, err, feedbackNotFound, "Failed to fetch feedback")
		return
	}

	ok(w, http.StatusOK, "", models.FeedbackData{Feedback: *fv})
}

// Create handles POST /api/feedbacks
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fv, err := h.svc.CreateFeedback(r.Context(), callerID(r), req.Title, req.Description)
	if err != nil {
		serviceError(w, r, err, feedbackNotFound, "Failed to create feedback")
		return
	}

	slog.Info("feedback created", "feedback_id", fv.ID, "user_id", fv.AuthorID)

	ok(w, http.StatusCreated, "Feedback created successfully", models.FeedbackData{Feedback: *fv})
}

// UpdateStatus handles PUT /api/feedbacks/{id}
func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := r.PathValue("id")
	fv, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		serviceError(w, r, err, feedbackNotFound, "Failed to update feedback")
		return
	}

	slog.Info("feedback status updated", "feedback_id", id, "status", fv.Status, "user_id", callerID(r))

	ok(w, http.StatusOK, "Feedback status updated successfully", models.FeedbackData{Feedback: *fv})
}

// Vote handles POST /api/feedbacks/{id}/vote
func (h *FeedbackHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	userID := callerID(r)

	voted, err := h.svc.ToggleVote(r.Context(), userID, id)
	if err != nil {
		serviceError(w, r, err, feedbackNotFound, "Failed to toggle vote")
		return
	}

	slog.Info("vote toggled", "feedback_id", id, "user_id", userID, "voted", voted)

	msg := "Vote removed successfully"
	if voted {
		msg = "Vote added successfully"
	}
	ok(w, http.StatusOK, msg, models.VoteData{Voted: voted})
}

// MyVotes handles GET /api/feedbacks/votes/me
func (h *FeedbackHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.ListVotesByUser(r.Context(), callerID(r))
	if err != nil {
		serviceError(w, r, err, feedbackNotFound, "Failed to fetch votes")
		return
	}

	ok(w, http.StatusOK, "", models.UserVotesData{VotedFeedbacks: ids})
}
