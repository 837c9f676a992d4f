package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetspot/backend/internal/adapters/events"
	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
)

type stubPreferenceRepo struct {
	mu      sync.Mutex
	vectors map[string]*entities.PreferenceVector
	saves   int
}

func newStubPreferenceRepo() *stubPreferenceRepo {
	return &stubPreferenceRepo{vectors: make(map[string]*entities.PreferenceVector)}
}

func (r *stubPreferenceRepo) Load(ctx context.Context, userID string) (*entities.PreferenceVector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vectors[userID]; ok {
		return v, nil
	}
	return entities.NewPreferenceVector(), nil
}

func (r *stubPreferenceRepo) Save(ctx context.Context, userID string, vector *entities.PreferenceVector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vectors[userID] = vector
	r.saves++
	return nil
}

func (r *stubPreferenceRepo) weight(userID, tag string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vectors[userID].Weight(tag)
}

func TestApplyReview_PositiveRatingRaisesMentionedTags(t *testing.T) {
	repo := newStubPreferenceRepo()
	svc := NewPreferenceService(repo)

	err := svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 4.5, Tags: []string{"quiet", "wine"},
	})

	require.NoError(t, err)
	assert.InDelta(t, 1.1, repo.weight("u1", "quiet"), 1e-9)
	assert.InDelta(t, 1.1, repo.weight("u1", "wine"), 1e-9)
}

func TestApplyReview_NegativeRatingLowersMentionedTags(t *testing.T) {
	repo := newStubPreferenceRepo()
	svc := NewPreferenceService(repo)

	err := svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 1.0, Tags: []string{"ramen"},
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.9, repo.weight("u1", "ramen"), 1e-9)
}

func TestApplyReview_NeutralRatingIsMildlyPositive(t *testing.T) {
	repo := newStubPreferenceRepo()
	svc := NewPreferenceService(repo)

	err := svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 3.0, Tags: []string{"coffee"},
	})

	require.NoError(t, err)
	assert.InDelta(t, 1.01, repo.weight("u1", "coffee"), 1e-9)
}

func TestApplyReview_UnmentionedTagsUntouched(t *testing.T) {
	repo := newStubPreferenceRepo()
	existing := entities.NewPreferenceVector()
	existing.Weights["sushi"] = 2.0
	repo.vectors["u1"] = existing

	svc := NewPreferenceService(repo)
	err := svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 5.0, Tags: []string{"quiet"},
	})

	require.NoError(t, err)
	assert.InDelta(t, 2.0, repo.weight("u1", "sushi"), 1e-9)
	assert.InDelta(t, 1.1, repo.weight("u1", "quiet"), 1e-9)
}

func TestApplyReview_WeightsStayClamped(t *testing.T) {
	repo := newStubPreferenceRepo()
	existing := entities.NewPreferenceVector()
	existing.Weights["floor"] = 0.15
	existing.Weights["ceiling"] = 4.95
	repo.vectors["u1"] = existing

	svc := NewPreferenceService(repo)

	require.NoError(t, svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 1.0, Tags: []string{"floor"},
	}))
	require.NoError(t, svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v2", Rating: 5.0, Tags: []string{"ceiling"},
	}))

	assert.InDelta(t, entities.MinTagWeight, repo.weight("u1", "floor"), 1e-9)
	assert.InDelta(t, entities.MaxTagWeight, repo.weight("u1", "ceiling"), 1e-9)
}

func TestApplyReview_NoTagsIsNoOp(t *testing.T) {
	repo := newStubPreferenceRepo()
	svc := NewPreferenceService(repo)

	require.NoError(t, svc.ApplyReview(context.Background(), &entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 5.0,
	}))
	require.NoError(t, svc.ApplyReview(context.Background(), nil))

	assert.Equal(t, 0, repo.saves)
}

func TestStartReviewSubscriber_AppliesPublishedReviews(t *testing.T) {
	repo := newStubPreferenceRepo()
	svc := NewPreferenceService(repo)

	bus := events.NewMemoryEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.StartReviewSubscriber(ctx, bus))

	event := entities.NewReviewEvent(entities.Review{
		UserID: "u1", VenueID: "v1", Rating: 4.0, Tags: []string{"quiet"},
	})
	require.NoError(t, bus.Publish(ctx, providers.EventChannelReviewSubmitted, event))

	assert.Eventually(t, func() bool {
		return repo.weight("u1", "quiet") > 1.0
	}, time.Second, 10*time.Millisecond)
	assert.InDelta(t, 1.1, repo.weight("u1", "quiet"), 1e-9)
}
