package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/repositories"
	tsclient "github.com/meetspot/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "venues"

// TypesenseAdapter implements the venue search index using Typesense.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements VenueIndex
var _ repositories.VenueIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "tags", Type: "string[]"},
			{Name: "location", Type: "geopoint"},
			{Name: "rating", Type: "float"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a venue document into the index.
func (a *TypesenseAdapter) Index(ctx context.Context, venue *entities.Venue) error {
	tags := venue.Tags
	if tags == nil {
		tags = []string{}
	}
	document := map[string]interface{}{
		"id":         venue.ID,
		"name":       venue.Name,
		"category":   string(venue.Category),
		"tags":       tags,
		"location":   []float64{venue.Location.Latitude, venue.Location.Longitude},
		"rating":     venue.Rating,
		"created_at": venue.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index venue: %w", err)
	}

	return nil
}

// Search returns venues matching any keyword within radiusKm of center.
func (a *TypesenseAdapter) Search(ctx context.Context, keywords []string, center entities.Location, radiusKm float64, limit int) ([]*entities.Venue, error) {
	q := strings.Join(keywords, " ")
	if q == "" {
		q = "*"
	}
	if limit <= 0 {
		limit = 30
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(q),
		QueryBy:  pointer.String("name,tags"),
		FilterBy: pointer.String(fmt.Sprintf("location:(%f, %f, %f km)", center.Latitude, center.Longitude, radiusKm)),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}

	venues := []*entities.Venue{}
	if result.Hits == nil {
		return venues, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document

		locInterface, ok := doc["location"].([]interface{})
		var lat, lng float64
		if ok && len(locInterface) == 2 {
			lat, _ = locInterface[0].(float64)
			lng, _ = locInterface[1].(float64)
		}

		// Typesense returns map[string]interface{}; cast field by field.
		venue := &entities.Venue{
			ID:       fmt.Sprintf("%v", doc["id"]),
			Name:     fmt.Sprintf("%v", doc["name"]),
			Category: entities.Category(fmt.Sprintf("%v", doc["category"])),
			Location: entities.Location{
				Latitude:  lat,
				Longitude: lng,
			},
		}
		venue.NormalizedName = entities.NormalizeVenueName(venue.Name)

		if val, ok := doc["rating"].(float64); ok {
			venue.Rating = val
		}
		if rawTags, ok := doc["tags"].([]interface{}); ok {
			for _, t := range rawTags {
				if s, ok := t.(string); ok {
					venue.Tags = append(venue.Tags, s)
				}
			}
		}

		venues = append(venues, venue)
	}

	return venues, nil
}
