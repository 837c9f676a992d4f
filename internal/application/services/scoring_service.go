package services

import (
	"sort"

	"github.com/meetspot/backend/internal/domain/entities"
)

const (
	// ratingWeight converts a venue's 0-5 quality rating into score points.
	ratingWeight = 10.0

	// tagMatchWeight scales the summed preference weights of matching tags.
	tagMatchWeight = 5.0

	// displayScoreFloor is the cosmetic minimum a score is shown as. It is
	// applied after ranking and never affects order.
	displayScoreFloor = 0.1

	defaultTopK = 10
)

// ScoringService ranks venue candidates against the merged preference
// vectors of all participants.
type ScoringService struct {
	topK int
}

// NewScoringService creates a new scoring service. topK caps the ranked
// list per region.
func NewScoringService(topK int) *ScoringService {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &ScoringService{topK: topK}
}

// Rank scores and orders the candidates, best first. Ordering is
// deterministic: ties keep the original candidate order.
func (s *ScoringService) Rank(venues []*entities.Venue, prefs []*entities.PreferenceVector, purpose entities.Purpose) []entities.RankedVenue {
	if len(venues) == 0 {
		return nil
	}

	ranked := make([]entities.RankedVenue, len(venues))
	for i, v := range venues {
		ranked[i] = entities.RankedVenue{
			ID:       v.ID,
			Name:     v.Name,
			Category: v.Category,
			Tags:     v.Tags,
			Location: v.Location,
			Score:    s.score(v, prefs),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > s.topK {
		ranked = ranked[:s.topK]
	}

	// Cosmetic floor, applied after the order is fixed.
	for i := range ranked {
		if ranked[i].Score < displayScoreFloor {
			ranked[i].Score = displayScoreFloor
		}
	}

	return ranked
}

// score is base quality plus the tag-match bonus. A tag counts for a
// participant only when it appears in their explicit liked lists; its
// learned weight defaults to 1.0.
func (s *ScoringService) score(v *entities.Venue, prefs []*entities.PreferenceVector) float64 {
	score := v.Rating * ratingWeight

	bonus := 0.0
	for _, pref := range prefs {
		if pref == nil {
			continue
		}
		for _, tag := range v.Tags {
			if pref.Likes(tag) {
				bonus += pref.Weight(tag)
			}
		}
	}

	return score + tagMatchWeight*bonus
}
