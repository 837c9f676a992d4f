package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
)

const maxReviewTags = 10

// ReviewLearner applies a review directly when no event bus is wired.
type ReviewLearner interface {
	ApplyReview(ctx context.Context, review *entities.Review) error
}

// ReviewHandler handles venue review submissions.
type ReviewHandler struct {
	bus     providers.EventBus
	learner ReviewLearner
}

// NewReviewHandler creates a new review handler. When bus is nil the
// review is applied synchronously through the learner.
func NewReviewHandler(bus providers.EventBus, learner ReviewLearner) *ReviewHandler {
	return &ReviewHandler{bus: bus, learner: learner}
}

type reviewRequest struct {
	UserID  string   `json:"user_id"`
	VenueID string   `json:"venue_id"`
	Rating  float64  `json:"rating"`
	Tags    []string `json:"tags"`
	Reason  string   `json:"reason"`
}

// SubmitReview handles POST /api/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var payload reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.UserID = strings.TrimSpace(payload.UserID)
	payload.VenueID = strings.TrimSpace(payload.VenueID)

	if payload.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if payload.VenueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue_id is required")
		return
	}
	if payload.Rating < 0 || payload.Rating > 5 {
		respondWithError(w, http.StatusBadRequest, "rating must be between 0 and 5")
		return
	}
	if len(payload.Tags) > maxReviewTags {
		respondWithError(w, http.StatusBadRequest, "too many tags")
		return
	}

	tags := make([]string, 0, len(payload.Tags))
	for _, tag := range payload.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	review := entities.Review{
		UserID:  payload.UserID,
		VenueID: payload.VenueID,
		Rating:  payload.Rating,
		Tags:    tags,
		Reason:  strings.TrimSpace(payload.Reason),
	}

	event := entities.NewReviewEvent(review)

	if h.bus != nil {
		if err := h.bus.Publish(r.Context(), providers.EventChannelReviewSubmitted, event); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to submit review")
			return
		}
	} else if h.learner != nil {
		if err := h.learner.ApplyReview(r.Context(), &review); err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to submit review")
			return
		}
	}

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"status": "received",
		"id":     event.ID,
	})
}
