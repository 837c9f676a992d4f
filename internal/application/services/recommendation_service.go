package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
	"github.com/meetspot/backend/internal/domain/repositories"
	"github.com/meetspot/backend/internal/geo"
	apperrors "github.com/meetspot/backend/pkg/errors"
)

// ParticipantInput is one member of the group as the caller describes
// them. Exactly one of UserID, Location, or PlaceName should be set;
// they are tried in that order.
type ParticipantInput struct {
	UserID      string
	DisplayName string
	PlaceName   string
	Location    entities.Location
}

// RecommendationService runs the full pipeline: resolve participants,
// pick meeting regions, collect venue candidates, and rank them.
type RecommendationService struct {
	users      repositories.UserRepository
	prefs      repositories.PreferenceRepository
	places     providers.PlaceSearchProvider
	midpoint   *MidpointService
	aggregator *AggregationService
	scorer     *ScoringService
}

func NewRecommendationService(
	users repositories.UserRepository,
	prefs repositories.PreferenceRepository,
	places providers.PlaceSearchProvider,
	midpoint *MidpointService,
	aggregator *AggregationService,
	scorer *ScoringService,
) *RecommendationService {
	return &RecommendationService{
		users:      users,
		prefs:      prefs,
		places:     places,
		midpoint:   midpoint,
		aggregator: aggregator,
		scorer:     scorer,
	}
}

// RecommendVenues produces ranked venue lists for up to three meeting
// regions. An unknown purpose is the only hard failure; participants
// that cannot be placed on the map are dropped with a warning.
func (s *RecommendationService) RecommendVenues(
	ctx context.Context,
	purposeLabel string,
	inputs []ParticipantInput,
	explicitTags []string,
	fallbackCenter entities.Location,
) ([]entities.RegionResult, error) {
	purpose, err := entities.ParsePurpose(purposeLabel)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	participants := s.resolveParticipants(ctx, inputs)

	regions := s.midpoint.Resolve(ctx, participants, fallbackCenter)

	prefVectors := make([]*entities.PreferenceVector, 0, len(participants))
	for _, p := range participants {
		if p.Preferences != nil {
			prefVectors = append(prefVectors, p.Preferences)
		}
	}

	results := make([]entities.RegionResult, 0, len(regions))
	for _, region := range regions {
		venues := s.aggregator.Collect(ctx, region, purpose, explicitTags)
		results = append(results, entities.RegionResult{
			Name:     region.Name,
			Location: region.Location,
			Venues:   s.scorer.Rank(venues, prefVectors, purpose),
		})
	}

	return results, nil
}

// resolveParticipants turns caller inputs into located participants.
// Known users come from the user store, free-text places go through the
// gazetteer and then the external place search. Unresolvable entries
// are skipped.
func (s *RecommendationService) resolveParticipants(ctx context.Context, inputs []ParticipantInput) []entities.Participant {
	participants := make([]entities.Participant, 0, len(inputs))

	for i, in := range inputs {
		p := entities.Participant{
			ID:          in.UserID,
			DisplayName: in.DisplayName,
			Location:    in.Location,
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("guest-%d", i+1)
		}

		if in.UserID != "" {
			user, err := s.users.GetByID(ctx, in.UserID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", in.UserID).Msg("dropping unknown participant")
				continue
			}
			if p.DisplayName == "" {
				p.DisplayName = user.DisplayName
			}
			if p.Location.IsZero() {
				p.Location = user.Home
			}
			vector, err := s.prefs.Load(ctx, in.UserID)
			if err != nil {
				log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to load preferences, using defaults")
				vector = entities.NewPreferenceVector()
			}
			p.Preferences = vector
		}

		if p.Location.IsZero() && in.PlaceName != "" {
			p.Location = s.resolvePlace(ctx, in.PlaceName)
		}

		if p.Location.IsZero() {
			log.Warn().
				Str("participant", p.DisplayName).
				Str("place", in.PlaceName).
				Msg("dropping participant with no resolvable location")
			continue
		}

		participants = append(participants, p)
	}

	return participants
}

// resolvePlace maps a free-text place name to coordinates, preferring
// the local gazetteer over the external search provider.
func (s *RecommendationService) resolvePlace(ctx context.Context, name string) entities.Location {
	if loc, ok := geo.ResolveFuzzy(name); ok {
		return loc
	}

	if s.places == nil {
		return entities.Location{}
	}

	hits, err := s.places.Search(ctx, name, 1)
	if err != nil || len(hits) == 0 {
		log.Warn().Err(err).Str("place", name).Msg("place name did not resolve")
		return entities.Location{}
	}
	return hits[0].Location
}
