package providers

import (
	"context"

	"github.com/meetspot/backend/internal/domain/entities"
)

// Endpoint is one end of a transit query. Name may be empty for ad-hoc
// coordinates; when both endpoints are named the provider may use the names
// as a cache key.
type Endpoint struct {
	Name     string
	Location entities.Location
}

// TransitProvider estimates public-transit travel time between two points.
//
// TravelTime returns (minutes, true) on success and (0, false) on any
// failure (timeout, HTTP error, malformed payload, missing route). Failures
// are never surfaced as errors; the caller decides the fallback policy.
type TransitProvider interface {
	TravelTime(ctx context.Context, origin, destination Endpoint) (int, bool)
}
