package services

import (
	"context"
	"sort"
	"sync"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
	"github.com/meetspot/backend/internal/geo"
	"github.com/meetspot/backend/internal/infrastructure/observability"
)

const (
	// candidatePoolSize is how many gazetteer entries around the centroid
	// are evaluated as meeting-point candidates.
	candidatePoolSize = 10

	// maxRegions is how many candidate regions a request yields.
	maxRegions = 3

	// estimateBaseMinutes and estimatePerDegree build the fallback travel
	// estimate when the oracle has no answer. The distance penalty is
	// deliberately steep so candidates without verified transit data lose
	// to candidates with real numbers.
	estimateBaseMinutes = 30
	estimatePerDegree   = 1500

	// verifiedBonusMinutes is subtracted from a candidate's score per
	// participant with a real oracle hit.
	verifiedBonusMinutes = 10
)

type scoredCandidate struct {
	poolIdx int
	score   float64
}

// MidpointService selects up to three candidate meeting regions minimizing
// the worst-off participant's commute.
type MidpointService struct {
	oracle  providers.TransitProvider
	workers int
}

// NewMidpointService creates a new midpoint service. workers caps the
// number of concurrent oracle calls per request.
func NewMidpointService(oracle providers.TransitProvider, workers int) *MidpointService {
	if workers <= 0 {
		workers = 1
	}
	return &MidpointService{oracle: oracle, workers: workers}
}

// Resolve returns candidate regions ordered by preference. Participants
// with unresolved coordinates are dropped before any distance math; with no
// usable participants the fallback center is returned as a single synthetic
// region. The method never fails: oracle outages degrade to estimates.
func (s *MidpointService) Resolve(ctx context.Context, participants []entities.Participant, fallbackCenter entities.Location) []entities.CandidateRegion {
	located := make([]entities.Participant, 0, len(participants))
	for _, p := range participants {
		if p.Location.IsZero() {
			observability.LoggerFromContext(ctx).Warn().
				Str("participant", p.DisplayName).
				Msg("dropping participant with unresolved location")
			continue
		}
		located = append(located, p)
	}

	if len(located) == 0 {
		// (0,0) is the unresolved-coordinate sentinel and must never
		// become a region center.
		center := fallbackCenter
		if center.IsZero() {
			observability.LoggerFromContext(ctx).Warn().
				Msg("no usable coordinates in request, centering on default hotspot")
			center = geo.DefaultCenter()
		}
		return []entities.CandidateRegion{
			{Name: entities.RegionNameNearMe, Location: center},
		}
	}

	centroid := meanLocation(located)
	pool := geo.NearestN(centroid, candidatePoolSize)

	minutes, verified := s.queryOracle(ctx, located, pool)

	scored := make([]scoredCandidate, len(pool))
	for ci, candidate := range pool {
		worst := 0.0
		realHits := 0
		for pi, p := range located {
			effective := float64(minutes[ci][pi])
			if verified[ci][pi] {
				realHits++
			} else {
				effective = estimateBaseMinutes + p.Location.DegreesTo(candidate.Location)*estimatePerDegree
			}
			if effective > worst {
				worst = effective
			}
		}
		scored[ci] = scoredCandidate{
			poolIdx: ci,
			score:   worst - float64(verifiedBonusMinutes*realHits),
		}
	}

	// Stable: ties keep candidate-pool order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score < scored[j].score
	})

	regions := make([]entities.CandidateRegion, 0, maxRegions)
	for _, sc := range scored[:min(2, len(scored))] {
		regions = append(regions, entities.CandidateRegion{
			Name:     pool[sc.poolIdx].Name,
			Location: pool[sc.poolIdx].Location,
			Score:    sc.score,
		})
	}

	// Region #3 is the geometrically nearest entry to the centroid unless
	// it already placed, in which case the third-best score takes the slot.
	if len(scored) > 2 {
		nearest := pool[0]
		taken := regions[0].Name == nearest.Name || (len(regions) > 1 && regions[1].Name == nearest.Name)
		if !taken {
			regions = append(regions, entities.CandidateRegion{
				Name:     nearest.Name,
				Location: nearest.Location,
				Score:    scoreOf(scored, 0),
			})
		} else {
			third := scored[2]
			regions = append(regions, entities.CandidateRegion{
				Name:     pool[third.poolIdx].Name,
				Location: pool[third.poolIdx].Location,
				Score:    third.score,
			})
		}
	}

	return regions
}

// queryOracle fans (candidate, participant) pairs over a bounded worker
// pool. Each job writes only its own cell, so the matrices need no locking.
// A cancelled context abandons the remaining calls; those cells stay
// unverified and fall back to the distance estimate.
func (s *MidpointService) queryOracle(ctx context.Context, participants []entities.Participant, pool []geo.Hotspot) ([][]int, [][]bool) {
	minutes := make([][]int, len(pool))
	verified := make([][]bool, len(pool))
	for ci := range pool {
		minutes[ci] = make([]int, len(participants))
		verified[ci] = make([]bool, len(participants))
	}

	type job struct{ ci, pi int }
	jobs := make(chan job, len(pool)*len(participants))

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				p := participants[j.pi]
				c := pool[j.ci]
				m, ok := s.oracle.TravelTime(ctx,
					providers.Endpoint{Name: p.DisplayName, Location: p.Location},
					providers.Endpoint{Name: c.Name, Location: c.Location},
				)
				if ok {
					minutes[j.ci][j.pi] = m
					verified[j.ci][j.pi] = true
				}
			}
		}()
	}

	for ci := range pool {
		for pi := range participants {
			jobs <- job{ci: ci, pi: pi}
		}
	}
	close(jobs)
	wg.Wait()

	return minutes, verified
}

func meanLocation(participants []entities.Participant) entities.Location {
	var lat, lng float64
	for _, p := range participants {
		lat += p.Location.Latitude
		lng += p.Location.Longitude
	}
	n := float64(len(participants))
	return entities.Location{Latitude: lat / n, Longitude: lng / n}
}

// scoreOf finds the score assigned to a pool index.
func scoreOf(scored []scoredCandidate, poolIdx int) float64 {
	for _, sc := range scored {
		if sc.poolIdx == poolIdx {
			return sc.score
		}
	}
	return 0
}
