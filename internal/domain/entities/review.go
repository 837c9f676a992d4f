package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// Review is a completed venue review as submitted by a user. Ratings are on
// a 0-5 scale.
type Review struct {
	UserID  string   `json:"user_id"`
	VenueID string   `json:"venue_id"`
	Rating  float64  `json:"rating"`
	Tags    []string `json:"tags,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// ReviewEvent wraps a review for transport on the event bus. The preference
// learner consumes each event at most once.
type ReviewEvent struct {
	ID        string    `json:"id"`
	Review    Review    `json:"review"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReviewEvent creates a new review event with a unique ID.
func NewReviewEvent(review Review) *ReviewEvent {
	return &ReviewEvent{
		ID:        generateEventID(),
		Review:    review,
		Timestamp: time.Now(),
	}
}

func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
