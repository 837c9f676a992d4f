package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetspot/backend/internal/adapters/providers/transit"
	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/geo"
)

var midpointFallback = entities.Location{Latitude: 35.6812, Longitude: 139.7671}

func midpointParticipants() []entities.Participant {
	return []entities.Participant{
		{DisplayName: "Aiko", Location: entities.Location{Latitude: 35.7295, Longitude: 139.7109}},
		{DisplayName: "Ben", Location: entities.Location{Latitude: 35.6284, Longitude: 139.7387}},
	}
}

func centroidOf(participants []entities.Participant) entities.Location {
	return meanLocation(participants)
}

func TestResolve_NoParticipants_FallbackRegion(t *testing.T) {
	svc := NewMidpointService(transit.NewStaticTransitProvider(), 4)

	regions := svc.Resolve(context.Background(), nil, midpointFallback)

	require.Len(t, regions, 1)
	assert.Equal(t, entities.RegionNameNearMe, regions[0].Name)
	assert.Equal(t, midpointFallback, regions[0].Location)
	assert.True(t, regions[0].IsSynthetic())
}

func TestResolve_ZeroFallbackCenterNeverEmitted(t *testing.T) {
	svc := NewMidpointService(transit.NewStaticTransitProvider(), 4)

	regions := svc.Resolve(context.Background(), nil, entities.Location{})

	require.Len(t, regions, 1)
	assert.False(t, regions[0].Location.IsZero())
	assert.Equal(t, geo.DefaultCenter(), regions[0].Location)
}

func TestResolve_UnlocatedParticipantsDropped(t *testing.T) {
	svc := NewMidpointService(transit.NewStaticTransitProvider(), 4)

	regions := svc.Resolve(context.Background(), []entities.Participant{
		{DisplayName: "nowhere"},
	}, midpointFallback)

	require.Len(t, regions, 1)
	assert.Equal(t, entities.RegionNameNearMe, regions[0].Name)
}

func TestResolve_OracleDown_ThreeRegionsByDistance(t *testing.T) {
	// Empty static table: every pair reports ok=false, so scores are pure
	// distance estimates and the ranking follows candidate-pool order.
	svc := NewMidpointService(transit.NewStaticTransitProvider(), 4)

	participants := midpointParticipants()
	pool := geo.NearestN(centroidOf(participants), 10)

	regions := svc.Resolve(context.Background(), participants, midpointFallback)

	require.Len(t, regions, 3)
	// With two participants on opposite sides the max-distance estimate is
	// not strictly pool order, but the result set stays within the pool.
	poolNames := make(map[string]bool)
	for _, h := range pool {
		poolNames[h.Name] = true
	}
	for _, r := range regions {
		assert.True(t, poolNames[r.Name], "region %s not in candidate pool", r.Name)
		assert.False(t, r.IsSynthetic())
	}
	// The top two are ordered by score.
	assert.LessOrEqual(t, regions[0].Score, regions[1].Score)
}

func TestResolve_VerifiedTimesBeatEstimates(t *testing.T) {
	oracle := transit.NewStaticTransitProvider()
	participants := midpointParticipants()
	pool := geo.NearestN(centroidOf(participants), 10)

	// Give one mid-pool candidate short verified rides for everyone.
	target := pool[5]
	oracle.SetTravelTime("Aiko", target.Name, 8)
	oracle.SetTravelTime("Ben", target.Name, 9)

	svc := NewMidpointService(oracle, 4)
	regions := svc.Resolve(context.Background(), participants, midpointFallback)

	require.Len(t, regions, 3)
	assert.Equal(t, target.Name, regions[0].Name)
}

func TestResolve_WorstParticipantDecides(t *testing.T) {
	oracle := transit.NewStaticTransitProvider()
	participants := midpointParticipants()
	pool := geo.NearestN(centroidOf(participants), 10)

	// Candidate A is fast for Aiko but slow for Ben; candidate B is
	// moderate for both. B's worst case is better, so B ranks higher.
	a, b := pool[3], pool[4]
	oracle.SetTravelTime("Aiko", a.Name, 10)
	oracle.SetTravelTime("Ben", a.Name, 60)
	oracle.SetTravelTime("Aiko", b.Name, 35)
	oracle.SetTravelTime("Ben", b.Name, 35)

	svc := NewMidpointService(oracle, 4)
	regions := svc.Resolve(context.Background(), participants, midpointFallback)

	require.Len(t, regions, 3)
	assert.Equal(t, b.Name, regions[0].Name)
	assert.Equal(t, a.Name, regions[1].Name)
}

func TestResolve_ThirdRegionIsNearestToCentroid(t *testing.T) {
	oracle := transit.NewStaticTransitProvider()
	participants := midpointParticipants()
	pool := geo.NearestN(centroidOf(participants), 10)

	// Push two far-pool candidates to the top with verified short rides.
	for _, h := range []geo.Hotspot{pool[7], pool[8]} {
		oracle.SetTravelTime("Aiko", h.Name, 5)
		oracle.SetTravelTime("Ben", h.Name, 5)
	}

	svc := NewMidpointService(oracle, 4)
	regions := svc.Resolve(context.Background(), participants, midpointFallback)

	require.Len(t, regions, 3)
	assert.Equal(t, pool[7].Name, regions[0].Name)
	assert.Equal(t, pool[8].Name, regions[1].Name)
	// The geometric nearest candidate was not among the winners, so it
	// takes the third slot.
	assert.Equal(t, pool[0].Name, regions[2].Name)
}

func TestResolve_ThirdSlotFallsBackWhenNearestAlreadyPlaced(t *testing.T) {
	oracle := transit.NewStaticTransitProvider()
	participants := midpointParticipants()
	pool := geo.NearestN(centroidOf(participants), 10)

	// The geometric nearest wins outright, so slot three goes to the
	// third-best scored candidate instead.
	oracle.SetTravelTime("Aiko", pool[0].Name, 5)
	oracle.SetTravelTime("Ben", pool[0].Name, 5)

	svc := NewMidpointService(oracle, 4)
	regions := svc.Resolve(context.Background(), participants, midpointFallback)

	require.Len(t, regions, 3)
	assert.Equal(t, pool[0].Name, regions[0].Name)
	assert.NotEqual(t, pool[0].Name, regions[2].Name)
	assert.NotEqual(t, regions[1].Name, regions[2].Name)
}

func TestResolve_SingleParticipant(t *testing.T) {
	svc := NewMidpointService(transit.NewStaticTransitProvider(), 4)

	solo := []entities.Participant{
		{DisplayName: "Aiko", Location: entities.Location{Latitude: 35.6896, Longitude: 139.7006}},
	}
	regions := svc.Resolve(context.Background(), solo, midpointFallback)

	// A lone participant gets full candidate selection around their own
	// location.
	require.Len(t, regions, 3)
	assert.Equal(t, "Shinjuku", regions[0].Name)
}
