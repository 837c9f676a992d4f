package repositories

import (
	"context"

	"github.com/meetspot/backend/internal/domain/entities"
)

// BoundingBox is an axis-aligned degree-space box.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoxAround returns the bounding box extending delta degrees in each
// direction from center.
func BoxAround(center entities.Location, delta float64) BoundingBox {
	return BoundingBox{
		MinLat: center.Latitude - delta,
		MaxLat: center.Latitude + delta,
		MinLng: center.Longitude - delta,
		MaxLng: center.Longitude + delta,
	}
}

// VenueRepository is the shared venue store.
type VenueRepository interface {
	// GetByID retrieves a venue by ID.
	GetByID(ctx context.Context, id string) (*entities.Venue, error)

	// QueryBox returns venues whose coordinates fall inside the box.
	// Keyword and category filtering happens in the caller.
	QueryBox(ctx context.Context, box BoundingBox) ([]*entities.Venue, error)

	// FindDuplicate returns an existing venue with the same normalized name
	// within radiusM meters of loc, or nil when there is none.
	FindDuplicate(ctx context.Context, normalizedName string, loc entities.Location, radiusM float64) (*entities.Venue, error)

	// Upsert stores a venue, collapsing it onto an existing duplicate when
	// one is found. The venue's ID is set to the surviving record's ID.
	Upsert(ctx context.Context, venue *entities.Venue) error
}

// VenueIndex is the secondary keyword/geo search index over the venue store.
// It is best-effort: the aggregator falls back to VenueRepository.QueryBox
// when the index is unavailable.
type VenueIndex interface {
	// Index upserts a venue document into the index.
	Index(ctx context.Context, venue *entities.Venue) error

	// Search returns venues matching any keyword within radiusKm of center.
	Search(ctx context.Context, keywords []string, center entities.Location, radiusKm float64, limit int) ([]*entities.Venue, error)
}
