package entities

import (
	"strings"
	"time"
)

// Category is the fixed venue taxonomy.
type Category string

const (
	CategoryDining    Category = "dining"
	CategoryCafe      Category = "cafe"
	CategoryBar       Category = "bar"
	CategoryWorkspace Category = "workspace"
	CategoryCulture   Category = "culture"
	CategoryActivity  Category = "activity"
	CategoryOther     Category = "other"
)

// Venue represents a point of interest eligible for recommendation.
// Venues are created on first sighting from either the internal store or an
// external place search, and deduplicated by (normalized name, ~50m
// coordinate proximity).
type Venue struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	NormalizedName string    `json:"-" db:"normalized_name"`
	ExternalID     string    `json:"external_id,omitempty" db:"external_id"`
	Category       Category  `json:"category" db:"category"`
	Tags           []string  `json:"tags,omitempty" db:"-"`
	Location       Location  `json:"location" db:"-"`
	Rating         float64   `json:"rating" db:"rating"`
	ReviewCount    int       `json:"review_count" db:"review_count"`
	Address        string    `json:"address,omitempty" db:"address"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// HasAnyKeyword reports whether the venue name or one of its tags contains
// at least one of the given keywords (case-insensitive substring match).
func (v *Venue) HasAnyKeyword(keywords []string) bool {
	name := strings.ToLower(v.Name)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(name, kw) {
			return true
		}
		for _, tag := range v.Tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				return true
			}
		}
	}
	return false
}

// NormalizeVenueName produces the dedup key for a venue title: lowercased,
// whitespace collapsed, common decorations stripped.
func NormalizeVenueName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	// Strip parenthetical suffixes like "(Shibuya branch)".
	if idx := strings.IndexAny(name, "(（"); idx > 0 {
		name = strings.TrimSpace(name[:idx])
	}
	return strings.Join(strings.Fields(name), " ")
}
