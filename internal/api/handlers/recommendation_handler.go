package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/meetspot/backend/internal/application/services"
	"github.com/meetspot/backend/internal/domain/entities"
	apperrors "github.com/meetspot/backend/pkg/errors"
)

const maxParticipantsPerRequest = 20

// Recommender defines the recommendation operation used by the handler.
type Recommender interface {
	RecommendVenues(
		ctx context.Context,
		purposeLabel string,
		inputs []services.ParticipantInput,
		explicitTags []string,
		fallbackCenter entities.Location,
	) ([]entities.RegionResult, error)
}

// RecommendationHandler handles group recommendation requests.
type RecommendationHandler struct {
	service Recommender
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(service Recommender) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

type participantPayload struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Place       string  `json:"place"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type recommendationRequest struct {
	Purpose      string               `json:"purpose"`
	Participants []participantPayload `json:"participants"`
	Tags         []string             `json:"tags"`
	FallbackLat  float64              `json:"fallback_latitude"`
	FallbackLng  float64              `json:"fallback_longitude"`
}

// Recommend handles POST /api/recommendations
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var payload recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.Purpose = strings.TrimSpace(payload.Purpose)
	if payload.Purpose == "" {
		respondWithError(w, http.StatusBadRequest, "purpose is required")
		return
	}
	if len(payload.Participants) > maxParticipantsPerRequest {
		respondWithError(w, http.StatusBadRequest, "too many participants")
		return
	}

	inputs := make([]services.ParticipantInput, 0, len(payload.Participants))
	for _, p := range payload.Participants {
		inputs = append(inputs, services.ParticipantInput{
			UserID:      strings.TrimSpace(p.UserID),
			DisplayName: strings.TrimSpace(p.DisplayName),
			PlaceName:   strings.TrimSpace(p.Place),
			Location: entities.Location{
				Latitude:  p.Latitude,
				Longitude: p.Longitude,
			},
		})
	}

	fallback := entities.Location{
		Latitude:  payload.FallbackLat,
		Longitude: payload.FallbackLng,
	}

	regions, err := h.service.RecommendVenues(r.Context(), payload.Purpose, inputs, payload.Tags, fallback)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeValidation:
				respondWithError(w, http.StatusBadRequest, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"regions": regions,
		"count":   len(regions),
	})
}
