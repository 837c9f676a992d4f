package transit

import (
	"context"
	"strings"
	"sync"

	"github.com/meetspot/backend/internal/domain/providers"
)

// StaticTransitProvider serves travel times from a fixed table keyed by
// endpoint names. Used in tests and in deployments without a directions
// service; unknown pairs report ok=false so callers exercise their
// estimated-time fallback.
type StaticTransitProvider struct {
	mu    sync.RWMutex
	table map[string]int
}

// NewStaticTransitProvider creates an empty static provider.
func NewStaticTransitProvider() *StaticTransitProvider {
	return &StaticTransitProvider{table: make(map[string]int)}
}

// SetTravelTime registers the minutes for an (origin, destination) pair.
func (p *StaticTransitProvider) SetTravelTime(originName, destName string, minutes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.table[pairKey(originName, destName)] = minutes
}

// TravelTime returns the registered minutes for the pair, or ok=false.
func (p *StaticTransitProvider) TravelTime(ctx context.Context, origin, destination providers.Endpoint) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	minutes, ok := p.table[pairKey(origin.Name, destination.Name)]
	return minutes, ok
}

func pairKey(origin, dest string) string {
	return strings.ToLower(strings.TrimSpace(origin)) + "|" + strings.ToLower(strings.TrimSpace(dest))
}
