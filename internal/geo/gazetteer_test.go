package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meetspot/backend/internal/domain/entities"
)

func TestResolveFuzzy_SubstringMatch(t *testing.T) {
	loc, ok := ResolveFuzzy("let's meet near Shibuya station")
	assert.True(t, ok)
	assert.InDelta(t, 35.6580, loc.Latitude, 0.0001)
	assert.InDelta(t, 139.7016, loc.Longitude, 0.0001)
}

func TestResolveFuzzy_CaseInsensitive(t *testing.T) {
	loc, ok := ResolveFuzzy("SHINJUKU")
	assert.True(t, ok)
	assert.InDelta(t, 35.6896, loc.Latitude, 0.0001)
}

func TestResolveFuzzy_FirstMatchWins(t *testing.T) {
	// "Tokyo" precedes "Shibuya" in the table, so a text mentioning both
	// resolves to Tokyo.
	loc, ok := ResolveFuzzy("Tokyo or Shibuya, either works")
	assert.True(t, ok)
	assert.InDelta(t, 35.6812, loc.Latitude, 0.0001)
	assert.InDelta(t, 139.7671, loc.Longitude, 0.0001)
}

func TestResolveFuzzy_NoMatch(t *testing.T) {
	_, ok := ResolveFuzzy("somewhere in Hokkaido")
	assert.False(t, ok)
}

func TestNearestName_ExactCoordinate(t *testing.T) {
	name := NearestName(entities.Location{Latitude: 35.6580, Longitude: 139.7016})
	assert.Equal(t, "Shibuya", name)
}

func TestNearestN_OrderedByDistance(t *testing.T) {
	center := entities.Location{Latitude: 35.6896, Longitude: 139.7006}
	nearest := NearestN(center, 10)

	assert.Len(t, nearest, 10)
	assert.Equal(t, "Shinjuku", nearest[0].Name)

	prev := -1.0
	for _, h := range nearest {
		d := center.SqDegreesTo(h.Location)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestNearestN_CapsAtTableSize(t *testing.T) {
	nearest := NearestN(entities.Location{Latitude: 35.68, Longitude: 139.76}, Size()+50)
	assert.Len(t, nearest, Size())
}
