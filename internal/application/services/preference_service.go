package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
	"github.com/meetspot/backend/internal/domain/repositories"
)

const (
	// learningRate is the per-review step applied to each mentioned tag.
	learningRate = 0.1

	neutralRating  = 3.0
	positiveRating = 4.0
)

// PreferenceService adjusts a user's tag weights from their venue reviews.
type PreferenceService struct {
	prefs repositories.PreferenceRepository
}

func NewPreferenceService(prefs repositories.PreferenceRepository) *PreferenceService {
	return &PreferenceService{prefs: prefs}
}

// ApplyReview nudges the weight of every tag mentioned in the review.
// A rating of 4.0 or above counts as positive, below 3.0 as negative,
// and exactly 3.0 as mildly positive. Tags not mentioned keep their
// current weight, and results stay clamped to the allowed range.
func (s *PreferenceService) ApplyReview(ctx context.Context, review *entities.Review) error {
	if review == nil || len(review.Tags) == 0 {
		return nil
	}

	vector, err := s.prefs.Load(ctx, review.UserID)
	if err != nil {
		return err
	}

	sentiment := sentimentOf(review.Rating)
	for _, tag := range review.Tags {
		old := vector.Weight(tag)
		vector.Weights[tag] = entities.ClampWeight(old + learningRate*sentiment)
	}

	return s.prefs.Save(ctx, review.UserID, vector)
}

// sentimentOf maps a star rating to a learning direction.
func sentimentOf(rating float64) float64 {
	switch {
	case rating >= positiveRating:
		return 1.0
	case rating == neutralRating:
		return 0.1
	default:
		return -1.0
	}
}

// StartReviewSubscriber consumes review events from the bus and folds
// each into the reviewer's preference vector. It runs until the context
// is cancelled or the bus closes the channel.
func (s *PreferenceService) StartReviewSubscriber(ctx context.Context, bus providers.EventBus) error {
	events, err := bus.Subscribe(ctx, providers.EventChannelReviewSubmitted)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if event == nil {
					continue
				}
				if err := s.ApplyReview(ctx, &event.Review); err != nil {
					log.Warn().Err(err).
						Str("user_id", event.Review.UserID).
						Str("venue_id", event.Review.VenueID).
						Msg("failed to apply review to preferences")
				}
			}
		}
	}()

	return nil
}
