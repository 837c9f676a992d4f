package providers

import (
	"context"

	"github.com/meetspot/backend/internal/domain/entities"
)

// PlaceHit is a raw result from the external place-search service, before
// deduplication and geo sanity checks.
type PlaceHit struct {
	ExternalID string
	Name       string
	Category   entities.Category
	Address    string
	Location   entities.Location
	Rating     float64
}

// PlaceSearchProvider queries the external, rate-limited place-search
// service. Each call carries its own context deadline; failures are
// per-query and the aggregator continues with whatever it has.
type PlaceSearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]*PlaceHit, error)
}
