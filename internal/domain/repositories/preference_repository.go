package repositories

import (
	"context"

	"github.com/meetspot/backend/internal/domain/entities"
)

// PreferenceRepository persists per-user preference vectors.
type PreferenceRepository interface {
	// Load returns the user's preference vector. A user with no stored
	// vector gets a fresh empty one, not an error.
	Load(ctx context.Context, userID string) (*entities.PreferenceVector, error)

	// Save stores the user's preference vector.
	Save(ctx context.Context, userID string, vector *entities.PreferenceVector) error
}

// UserRepository looks up registered users for participant construction.
type UserRepository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*entities.User, error)
}
