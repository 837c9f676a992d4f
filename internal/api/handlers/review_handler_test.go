package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetspot/backend/internal/adapters/events"
	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
)

type recordingLearner struct {
	reviews []*entities.Review
}

func (l *recordingLearner) ApplyReview(ctx context.Context, review *entities.Review) error {
	l.reviews = append(l.reviews, review)
	return nil
}

func postReview(t *testing.T, handler *ReviewHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.SubmitReview(rec, req)
	return rec
}

func TestSubmitReview_PublishesToBus(t *testing.T) {
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	received, err := bus.Subscribe(ctx, providers.EventChannelReviewSubmitted)
	require.NoError(t, err)

	handler := NewReviewHandler(bus, nil)
	rec := postReview(t, handler, map[string]interface{}{
		"user_id":  "u1",
		"venue_id": "v1",
		"rating":   4.5,
		"tags":     []string{" Quiet ", "WINE", ""},
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)

	event := <-received
	require.NotNil(t, event)
	assert.Equal(t, "u1", event.Review.UserID)
	assert.Equal(t, []string{"quiet", "wine"}, event.Review.Tags)
	assert.NotEmpty(t, event.ID)
}

func TestSubmitReview_AppliesSynchronouslyWithoutBus(t *testing.T) {
	learner := &recordingLearner{}
	handler := NewReviewHandler(nil, learner)

	rec := postReview(t, handler, map[string]interface{}{
		"user_id":  "u1",
		"venue_id": "v1",
		"rating":   2.0,
		"tags":     []string{"ramen"},
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, learner.reviews, 1)
	assert.Equal(t, 2.0, learner.reviews[0].Rating)
}

func TestSubmitReview_Validation(t *testing.T) {
	handler := NewReviewHandler(nil, &recordingLearner{})

	cases := []map[string]interface{}{
		{"venue_id": "v1", "rating": 4.0},                 // missing user
		{"user_id": "u1", "rating": 4.0},                  // missing venue
		{"user_id": "u1", "venue_id": "v1", "rating": -1}, // rating too low
		{"user_id": "u1", "venue_id": "v1", "rating": 6},  // rating too high
	}
	for _, body := range cases {
		rec := postReview(t, handler, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

// Ratings live on a 0-5 scale; a half-star review is valid negative
// feedback and must reach the learner.
func TestSubmitReview_AcceptsHalfStarRating(t *testing.T) {
	learner := &recordingLearner{}
	handler := NewReviewHandler(nil, learner)

	rec := postReview(t, handler, map[string]interface{}{
		"user_id":  "u1",
		"venue_id": "v1",
		"rating":   0.5,
		"tags":     []string{"loud"},
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, learner.reviews, 1)
	assert.Equal(t, 0.5, learner.reviews[0].Rating)
}

func TestSubmitReview_MalformedBody(t *testing.T) {
	handler := NewReviewHandler(nil, &recordingLearner{})

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.SubmitReview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
