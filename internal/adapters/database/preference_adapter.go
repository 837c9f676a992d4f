package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/repositories"
	"github.com/meetspot/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/meetspot/backend/pkg/errors"
)

// PreferenceAdapter implements preference vector persistence in Postgres.
// Weights live in a jsonb column; liked/disliked lists are text arrays.
type PreferenceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPreferenceAdapter creates a new preference adapter.
func NewPreferenceAdapter(client *postgres.Client) repositories.PreferenceRepository {
	return &PreferenceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Load returns the user's preference vector, or a fresh empty vector when
// the user has no stored preferences yet.
func (a *PreferenceAdapter) Load(ctx context.Context, userID string) (*entities.PreferenceVector, error) {
	query, args, err := a.db.From("preferences").
		Select("weights", "liked_tags", "liked_categories", "disliked_categories", "budget").
		Where(goqu.C("user_id").Eq(userID)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build preference query", err)
	}

	var weightsRaw []byte
	var likedTags, likedCategories, dislikedCategories pq.StringArray
	var budget int

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&weightsRaw, &likedTags, &likedCategories, &dislikedCategories, &budget,
	)
	if err == sql.ErrNoRows {
		return entities.NewPreferenceVector(), nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load preferences", err)
	}

	vector := entities.NewPreferenceVector()
	if len(weightsRaw) > 0 {
		if err := json.Unmarshal(weightsRaw, &vector.Weights); err != nil {
			return nil, apperrors.NewInternalError("failed to decode preference weights", err)
		}
	}
	vector.LikedTags = []string(likedTags)
	vector.LikedCategories = []string(likedCategories)
	vector.DislikedCategories = []string(dislikedCategories)
	vector.Budget = budget
	return vector, nil
}

// Save stores the user's preference vector.
func (a *PreferenceAdapter) Save(ctx context.Context, userID string, vector *entities.PreferenceVector) error {
	if vector == nil {
		return apperrors.NewValidationError("preference vector is nil")
	}

	weightsRaw, err := json.Marshal(vector.Weights)
	if err != nil {
		return apperrors.NewInternalError("failed to encode preference weights", err)
	}

	record := goqu.Record{
		"user_id":             userID,
		"weights":             weightsRaw,
		"liked_tags":          pq.Array(vector.LikedTags),
		"liked_categories":    pq.Array(vector.LikedCategories),
		"disliked_categories": pq.Array(vector.DislikedCategories),
		"budget":              vector.Budget,
		"updated_at":          time.Now(),
	}

	query, args, err := a.db.Insert("preferences").
		Rows(record).
		OnConflict(goqu.DoUpdate("user_id", record)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build preference upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to save preferences", err)
	}
	return nil
}
