package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/meetspot/backend/internal/domain/repositories"
	apperrors "github.com/meetspot/backend/pkg/errors"
)

// VenueHandler handles venue-related HTTP requests
type VenueHandler struct {
	venueRepo repositories.VenueRepository
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venueRepo repositories.VenueRepository) *VenueHandler {
	return &VenueHandler{
		venueRepo: venueRepo,
	}
}

// GetVenue handles GET /api/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := r.PathValue("id")
	if venueID == "" {
		respondWithError(w, http.StatusBadRequest, "venue ID is required")
		return
	}

	venue, err := h.venueRepo.GetByID(r.Context(), venueID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			switch appErr.Type {
			case apperrors.ErrorTypeNotFound:
				respondWithError(w, http.StatusNotFound, appErr.Message)
			default:
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, venue)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
