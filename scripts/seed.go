package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/meetspot/backend/internal/adapters/database"
	"github.com/meetspot/backend/internal/adapters/search"
	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/infrastructure/clients/postgres"
	"github.com/meetspot/backend/internal/infrastructure/clients/typesense"
	"github.com/meetspot/backend/pkg/config"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS venues (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	external_id TEXT,
	category TEXT NOT NULL DEFAULT 'other',
	tags TEXT[] NOT NULL DEFAULT '{}',
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	address TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_venues_normalized_name ON venues (normalized_name);
CREATE INDEX IF NOT EXISTS idx_venues_lat_lng ON venues (latitude, longitude);

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	display_name TEXT NOT NULL,
	latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS preferences (
	user_id UUID PRIMARY KEY REFERENCES users (id) ON DELETE CASCADE,
	weights JSONB NOT NULL DEFAULT '{}',
	liked_tags TEXT[] NOT NULL DEFAULT '{}',
	liked_categories TEXT[] NOT NULL DEFAULT '{}',
	disliked_categories TEXT[] NOT NULL DEFAULT '{}',
	budget INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schemaDDL); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				preferences,
				users,
				venues
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var venueIndex *search.TypesenseAdapter
	if err == nil {
		venueIndex = search.NewTypesenseAdapter(tsClient)
		if err := venueIndex.InitSchema(ctx); err != nil {
			log.Printf("Failed to initialize venue index: %v", err)
			venueIndex = nil
		}
	}

	venueRepo := database.NewVenueAdapter(pgClient)

	// 1. Seed venues around common Tokyo meeting areas
	venues := []entities.Venue{
		{Name: "Blue Bottle Coffee Shibuya", Category: entities.CategoryCafe, Tags: []string{"coffee", "quiet", "wifi"}, Location: entities.Location{Latitude: 35.6595, Longitude: 139.7005}, Rating: 4.3, ReviewCount: 820, Address: "Shibuya, Tokyo"},
		{Name: "Uobei Shibuya Dogenzaka", Category: entities.CategoryDining, Tags: []string{"sushi", "cheap", "group"}, Location: entities.Location{Latitude: 35.6582, Longitude: 139.6986}, Rating: 4.1, ReviewCount: 2400, Address: "Dogenzaka, Shibuya, Tokyo"},
		{Name: "Ichiran Shinjuku", Category: entities.CategoryDining, Tags: []string{"ramen", "solo", "late-night"}, Location: entities.Location{Latitude: 35.6917, Longitude: 139.7036}, Rating: 4.2, ReviewCount: 5100, Address: "Kabukicho, Shinjuku, Tokyo"},
		{Name: "Golden Gai Albatross", Category: entities.CategoryBar, Tags: []string{"beer", "sake", "cozy"}, Location: entities.Location{Latitude: 35.6938, Longitude: 139.7044}, Rating: 4.4, ReviewCount: 930, Address: "Golden Gai, Shinjuku, Tokyo"},
		{Name: "Tsutaya Book Apartment", Category: entities.CategoryWorkspace, Tags: []string{"quiet", "wifi", "study"}, Location: entities.Location{Latitude: 35.6910, Longitude: 139.7005}, Rating: 4.0, ReviewCount: 410, Address: "Shinjuku, Tokyo"},
		{Name: "Nezu Museum", Category: entities.CategoryCulture, Tags: []string{"art", "garden", "quiet"}, Location: entities.Location{Latitude: 35.6622, Longitude: 139.7175}, Rating: 4.5, ReviewCount: 1900, Address: "Minami-Aoyama, Tokyo"},
		{Name: "Savoy Azabu-Juban", Category: entities.CategoryDining, Tags: []string{"pizza", "date", "cozy"}, Location: entities.Location{Latitude: 35.6565, Longitude: 139.7365}, Rating: 4.6, ReviewCount: 760, Address: "Azabu-Juban, Tokyo"},
		{Name: "Fuglen Asakusa", Category: entities.CategoryCafe, Tags: []string{"coffee", "wine", "date"}, Location: entities.Location{Latitude: 35.7125, Longitude: 139.7905}, Rating: 4.3, ReviewCount: 1100, Address: "Asakusa, Tokyo"},
		{Name: "Popeye Beer Club", Category: entities.CategoryBar, Tags: []string{"beer", "craft", "group"}, Location: entities.Location{Latitude: 35.6960, Longitude: 139.7935}, Rating: 4.4, ReviewCount: 1300, Address: "Ryogoku, Tokyo"},
		{Name: "Yanaka Coffee", Category: entities.CategoryCafe, Tags: []string{"coffee", "retro", "quiet"}, Location: entities.Location{Latitude: 35.7270, Longitude: 139.7660}, Rating: 4.2, ReviewCount: 540, Address: "Yanaka, Tokyo"},
	}

	for i := range venues {
		v := &venues[i]
		v.ID = uuid.New().String()
		v.NormalizedName = entities.NormalizeVenueName(v.Name)
		v.CreatedAt = time.Now()
		v.UpdatedAt = time.Now()
		if err := venueRepo.Upsert(ctx, v); err != nil {
			log.Printf("Failed to seed venue %s: %v", v.Name, err)
			continue
		}
		if venueIndex != nil {
			if err := venueIndex.Index(ctx, v); err != nil {
				log.Printf("Failed to index venue %s: %v", v.Name, err)
			}
		}
	}

	// 2. Seed demo users with home coordinates
	users := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"Aiko", 35.7295, 139.7109},  // Ikebukuro
		{"Ben", 35.6284, 139.7387},   // Shinagawa
		{"Chisato", 35.6812, 139.767}, // Tokyo Station
	}

	for _, u := range users {
		_, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO users (id, display_name, latitude, longitude) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO NOTHING`,
			uuid.New().String(), u.name, u.lat, u.lng,
		)
		if err != nil {
			log.Printf("Failed to seed user %s: %v", u.name, err)
		}
	}

	log.Printf("Seeding complete: %d venues, %d users", len(venues), len(users))
}
