package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/repositories"
	"github.com/meetspot/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/meetspot/backend/pkg/errors"
)

// dedupRadiusM is the coordinate proximity under which two venues with the
// same normalized name collapse to one record.
const dedupRadiusM = 50.0

// VenueAdapter implements the VenueRepository interface on Postgres.
type VenueAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVenueAdapter creates a new venue adapter.
func NewVenueAdapter(client *postgres.Client) repositories.VenueRepository {
	return &VenueAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a venue by ID.
func (a *VenueAdapter) GetByID(ctx context.Context, id string) (*entities.Venue, error) {
	query, args, err := a.db.From("venues").
		Select(venueColumns()...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue query", err)
	}

	venue, err := scanVenue(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get venue", err)
	}
	return venue, nil
}

// QueryBox returns venues inside the bounding box.
func (a *VenueAdapter) QueryBox(ctx context.Context, box repositories.BoundingBox) ([]*entities.Venue, error) {
	query, args, err := a.db.From("venues").
		Select(venueColumns()...).
		Where(
			goqu.C("latitude").Between(goqu.Range(box.MinLat, box.MaxLat)),
			goqu.C("longitude").Between(goqu.Range(box.MinLng, box.MaxLng)),
		).
		Order(goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build venue box query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query venues", err)
	}
	defer rows.Close()

	var venues []*entities.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan venue", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate venues", err)
	}
	return venues, nil
}

// FindDuplicate returns an existing venue with the same normalized name
// within radiusM meters of loc, or nil when none exists.
func (a *VenueAdapter) FindDuplicate(ctx context.Context, normalizedName string, loc entities.Location, radiusM float64) (*entities.Venue, error) {
	query, args, err := a.db.From("venues").
		Select(venueColumns()...).
		Where(goqu.C("normalized_name").Eq(normalizedName)).
		Order(goqu.C("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build duplicate query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query duplicates", err)
	}
	defer rows.Close()

	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan venue", err)
		}
		if venue.Location.KmTo(loc)*1000 <= radiusM {
			return venue, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate duplicates", err)
	}
	return nil, nil
}

// Upsert stores a venue, collapsing onto an existing duplicate when one is
// found. The venue's ID is rewritten to the surviving record's ID.
func (a *VenueAdapter) Upsert(ctx context.Context, venue *entities.Venue) error {
	if venue == nil {
		return apperrors.NewInternalError("venue is nil", fmt.Errorf("venue is nil"))
	}
	if venue.Location.IsZero() {
		return apperrors.NewValidationError("venue has unresolved coordinates")
	}

	if venue.NormalizedName == "" {
		venue.NormalizedName = entities.NormalizeVenueName(venue.Name)
	}

	existing, err := a.FindDuplicate(ctx, venue.NormalizedName, venue.Location, dedupRadiusM)
	if err != nil {
		return err
	}

	now := time.Now()
	if existing != nil {
		venue.ID = existing.ID
		record := goqu.Record{
			"rating":     venue.Rating,
			"updated_at": now,
		}
		if venue.ExternalID != "" {
			record["external_id"] = venue.ExternalID
		}
		if venue.Address != "" {
			record["address"] = venue.Address
		}
		if len(venue.Tags) > 0 {
			record["tags"] = pq.Array(mergeTags(existing.Tags, venue.Tags))
		}
		query, args, err := a.db.Update("venues").
			Set(record).
			Where(goqu.C("id").Eq(existing.ID)).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build venue update query", err)
		}
		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to update venue", err)
		}
		return nil
	}

	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	venue.CreatedAt = now
	venue.UpdatedAt = now

	record := goqu.Record{
		"id":              venue.ID,
		"name":            venue.Name,
		"normalized_name": venue.NormalizedName,
		"external_id":     sql.NullString{String: venue.ExternalID, Valid: venue.ExternalID != ""},
		"category":        string(venue.Category),
		"tags":            pq.Array(venue.Tags),
		"latitude":        venue.Location.Latitude,
		"longitude":       venue.Location.Longitude,
		"rating":          venue.Rating,
		"review_count":    venue.ReviewCount,
		"address":         sql.NullString{String: venue.Address, Valid: venue.Address != ""},
		"created_at":      venue.CreatedAt,
		"updated_at":      venue.UpdatedAt,
	}

	query, args, err := a.db.Insert("venues").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build venue insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create venue", err)
	}
	return nil
}

func venueColumns() []interface{} {
	return []interface{}{
		"id", "name", "normalized_name", "external_id", "category", "tags",
		"latitude", "longitude", "rating", "review_count", "address",
		"created_at", "updated_at",
	}
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*entities.Venue, error) {
	venue := &entities.Venue{}
	var externalID, address sql.NullString
	var tags pq.StringArray

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.NormalizedName,
		&externalID,
		&venue.Category,
		&tags,
		&venue.Location.Latitude,
		&venue.Location.Longitude,
		&venue.Rating,
		&venue.ReviewCount,
		&address,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.ExternalID = externalID.String
	venue.Address = address.String
	venue.Tags = []string(tags)
	return venue, nil
}

func mergeTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, t := range existing {
		if !seen[t] {
			merged = append(merged, t)
			seen[t] = true
		}
	}
	for _, t := range incoming {
		if !seen[t] {
			merged = append(merged, t)
			seen[t] = true
		}
	}
	return merged
}
