package services

import (
	"context"
	"strings"
	"time"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
	"github.com/meetspot/backend/internal/domain/repositories"
	"github.com/meetspot/backend/internal/infrastructure/observability"
)

const (
	// boxDeltaDegrees bounds the internal store lookup around the region
	// center.
	boxDeltaDegrees = 0.02

	// internalSqDegreeCut is the squared-degree radius applied on top of
	// the bounding box.
	internalSqDegreeCut = 0.02

	// backfillThreshold triggers external search when the internal lookup
	// found fewer venues than this.
	backfillThreshold = 5

	// backfillPageWindow caps hits taken from one external query.
	backfillPageWindow = 5

	// sanityCutKm discards external hits geocoded implausibly far from the
	// region center.
	sanityCutKm = 3.0

	// finalCutKm is the tighter distance filter applied to the assembled
	// candidate set.
	finalCutKm = 2.0

	// indexSearchRadiusKm and indexSearchLimit bound the search-index
	// shortcut of the internal lookup.
	indexSearchRadiusKm = 3.0
	indexSearchLimit    = 50
)

// keywordQuery pairs the outbound search query with the bare tag that
// produced it; venues discovered through the query inherit the tag.
type keywordQuery struct {
	query string
	tag   string
}

// AggregationService assembles venue candidates for a region by merging the
// shared venue store with external place search. It always returns whatever
// it could assemble, even an empty list.
type AggregationService struct {
	venues       repositories.VenueRepository
	index        repositories.VenueIndex // optional
	places       providers.PlaceSearchProvider
	tags         *TagExpansionService
	queryCap     int
	queryTimeout time.Duration
}

// NewAggregationService creates a new aggregation service. index may be nil;
// queryCap bounds external search queries per region.
func NewAggregationService(
	venues repositories.VenueRepository,
	index repositories.VenueIndex,
	places providers.PlaceSearchProvider,
	tags *TagExpansionService,
	queryCap int,
	queryTimeout time.Duration,
) *AggregationService {
	if queryCap <= 0 {
		queryCap = 15
	}
	if queryTimeout <= 0 {
		queryTimeout = 3 * time.Second
	}
	if tags == nil {
		tags = NewTagExpansionService()
	}
	return &AggregationService{
		venues:       venues,
		index:        index,
		places:       places,
		tags:         tags,
		queryCap:     queryCap,
		queryTimeout: queryTimeout,
	}
}

// Collect returns the candidate venues for the region, deduplicated and
// geo-filtered, ready for scoring.
func (s *AggregationService) Collect(ctx context.Context, region entities.CandidateRegion, purpose entities.Purpose, explicitTags []string) []*entities.Venue {
	queries := s.buildQueries(region, purpose, explicitTags)

	keywords := make([]string, len(queries))
	for i, q := range queries {
		keywords[i] = q.tag
	}

	candidates := s.internalLookup(ctx, region, purpose, keywords)

	if len(candidates) < backfillThreshold && s.places != nil {
		candidates = s.backfill(ctx, region, candidates, queries)
	}

	return filterWithinKm(candidates, region.Location, finalCutKm)
}

// buildQueries expands organizer tags (or the purpose defaults) into search
// queries, prefixing each with the region's display name unless the region
// carries a synthetic label.
func (s *AggregationService) buildQueries(region entities.CandidateRegion, purpose entities.Purpose, explicitTags []string) []keywordQuery {
	var terms []string
	if len(explicitTags) > 0 {
		terms = s.tags.ExpandAll(explicitTags)
	} else {
		terms = purpose.DefaultKeywords()
	}

	prefix := ""
	if !region.IsSynthetic() {
		prefix = stripParenthetical(region.Name)
	}

	queries := make([]keywordQuery, 0, len(terms))
	for _, term := range terms {
		q := term
		if prefix != "" {
			q = prefix + " " + term
		}
		queries = append(queries, keywordQuery{query: q, tag: term})
	}
	return queries
}

// internalLookup queries the shared store (and, when available, the search
// index) and filters to venues matching a keyword or an allow-listed
// category within the region's radius.
func (s *AggregationService) internalLookup(ctx context.Context, region entities.CandidateRegion, purpose entities.Purpose, keywords []string) []*entities.Venue {
	logger := observability.LoggerFromContext(ctx)

	var pool []*entities.Venue
	seen := make(map[string]bool)

	if s.index != nil {
		indexed, err := s.index.Search(ctx, keywords, region.Location, indexSearchRadiusKm, indexSearchLimit)
		if err != nil {
			logger.Warn().Err(err).Str("region", region.Name).Msg("venue index search failed, store only")
		} else {
			for _, v := range indexed {
				if !seen[v.NormalizedName] {
					pool = append(pool, v)
					seen[v.NormalizedName] = true
				}
			}
		}
	}

	stored, err := s.venues.QueryBox(ctx, repositories.BoxAround(region.Location, boxDeltaDegrees))
	if err != nil {
		logger.Warn().Err(err).Str("region", region.Name).Msg("venue store lookup failed")
	} else {
		for _, v := range stored {
			key := v.NormalizedName
			if key == "" {
				key = entities.NormalizeVenueName(v.Name)
			}
			if !seen[key] {
				pool = append(pool, v)
				seen[key] = true
			}
		}
	}

	var matched []*entities.Venue
	for _, v := range pool {
		if v.Location.IsZero() {
			continue
		}
		if v.Location.SqDegreesTo(region.Location) > internalSqDegreeCut {
			continue
		}
		if v.HasAnyKeyword(keywords) || purpose.AllowsCategory(v.Category) {
			matched = append(matched, v)
		}
	}
	return matched
}

// backfill issues up to queryCap external searches, each with its own
// timeout, persisting newly seen venues best-effort.
func (s *AggregationService) backfill(ctx context.Context, region entities.CandidateRegion, candidates []*entities.Venue, queries []keywordQuery) []*entities.Venue {
	logger := observability.LoggerFromContext(ctx)

	seen := make(map[string]bool, len(candidates))
	for _, v := range candidates {
		seen[v.NormalizedName] = true
	}

	issued := 0
	for _, kq := range queries {
		if issued >= s.queryCap {
			break
		}
		// Stop at the floor even with quota left; the later distance
		// cut may trim below it and that is tolerated.
		if len(candidates) >= backfillThreshold {
			break
		}
		issued++

		qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		hits, err := s.places.Search(qctx, kq.query, backfillPageWindow)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("query", kq.query).Msg("place search query failed, skipping")
			continue
		}

		for _, hit := range hits {
			if hit.Location.IsZero() {
				continue
			}
			norm := entities.NormalizeVenueName(hit.Name)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true

			// Geocoding noise guard.
			if hit.Location.KmTo(region.Location) > sanityCutKm {
				continue
			}

			venue := &entities.Venue{
				Name:           hit.Name,
				NormalizedName: norm,
				ExternalID:     hit.ExternalID,
				Category:       hit.Category,
				Tags:           []string{kq.tag},
				Location:       hit.Location,
				Rating:         hit.Rating,
				Address:        hit.Address,
			}

			if err := s.venues.Upsert(ctx, venue); err != nil {
				// Non-fatal: the recommendation still uses the in-memory venue.
				logger.Warn().Err(err).Str("venue", venue.Name).Msg("venue persist failed")
			} else if s.index != nil {
				if err := s.index.Index(ctx, venue); err != nil {
					logger.Warn().Err(err).Str("venue", venue.Name).Msg("venue index write failed")
				}
			}

			candidates = append(candidates, venue)
		}
	}

	return candidates
}

// filterWithinKm keeps venues within km of center with resolved
// coordinates. Applying it to an already-filtered list changes nothing.
func filterWithinKm(venues []*entities.Venue, center entities.Location, km float64) []*entities.Venue {
	filtered := make([]*entities.Venue, 0, len(venues))
	for _, v := range venues {
		if v.Location.IsZero() {
			continue
		}
		if v.Location.KmTo(center) <= km {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// stripParenthetical removes a trailing parenthetical suffix from a region
// display name.
func stripParenthetical(name string) string {
	if idx := strings.IndexAny(name, "(（"); idx > 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
