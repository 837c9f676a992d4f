package transit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meetspot/backend/internal/domain/providers"
	"github.com/meetspot/backend/internal/infrastructure/observability"
)

const (
	defaultHTTPTimeout = 8 * time.Second

	// Cache entries never expire: staleness is an accepted tradeoff for
	// latency and quota conservation.
	cacheNoExpiry = 0

	cacheKeyPrefix = "transit:v1:"
)

// HTTPTransitProvider queries an external directions service for transit
// travel times, read-through against the travel-time cache when both
// endpoints are named. Every failure collapses to ok=false; the provider
// never surfaces an error to the caller.
type HTTPTransitProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      providers.CacheProvider
}

// NewHTTPTransitProvider creates a new HTTP transit provider.
func NewHTTPTransitProvider(apiKey, baseURL string, cache providers.CacheProvider) *HTTPTransitProvider {
	return NewHTTPTransitProviderWithClient(apiKey, baseURL, cache, nil)
}

// NewHTTPTransitProviderWithClient allows overriding the HTTP client (used for tests).
func NewHTTPTransitProviderWithClient(apiKey, baseURL string, cache providers.CacheProvider, httpClient *http.Client) *HTTPTransitProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPTransitProvider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      cache,
	}
}

// TravelTime returns the transit minutes between the endpoints, or ok=false
// when no estimate could be obtained.
func (p *HTTPTransitProvider) TravelTime(ctx context.Context, origin, destination providers.Endpoint) (int, bool) {
	key := p.cacheKey(origin, destination)
	if key != "" && p.cache != nil {
		if cached, err := p.cache.Get(ctx, key); err == nil && len(cached) > 0 {
			if minutes, err := strconv.Atoi(string(cached)); err == nil && minutes > 0 {
				return minutes, true
			}
		}
	}

	minutes, err := p.fetchTravelTime(ctx, origin.Location.Latitude, origin.Location.Longitude,
		destination.Location.Latitude, destination.Location.Longitude)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("origin", origin.Name).
			Str("destination", destination.Name).
			Msg("transit lookup failed")
		return 0, false
	}

	if key != "" && p.cache != nil {
		if err := p.cache.Set(ctx, key, []byte(strconv.Itoa(minutes)), cacheNoExpiry); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("travel-time cache write failed")
		}
	}

	return minutes, true
}

func (p *HTTPTransitProvider) cacheKey(origin, destination providers.Endpoint) string {
	o := normalizeEndpointName(origin.Name)
	d := normalizeEndpointName(destination.Name)
	if o == "" || d == "" {
		return ""
	}
	return cacheKeyPrefix + o + "|" + d
}

func (p *HTTPTransitProvider) fetchTravelTime(ctx context.Context, oLat, oLng, dLat, dLng float64) (int, error) {
	if p.apiKey == "" {
		return 0, fmt.Errorf("directions api key is required")
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", oLat, oLng))
	params.Set("destination", fmt.Sprintf("%f,%f", dLat, dLng))
	params.Set("mode", "transit")
	params.Set("key", p.apiKey)

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build directions request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("directions request returned status %d", resp.StatusCode)
	}

	var payload directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return 0, fmt.Errorf("directions request failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return 0, fmt.Errorf("directions request failed: %s", payload.Status)
	}

	seconds := 0
	for _, route := range payload.Routes {
		for _, leg := range route.Legs {
			seconds += leg.Duration.Value
		}
		break // first route only
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("directions response contained no route duration")
	}

	minutes := (seconds + 59) / 60
	return minutes, nil
}

func normalizeEndpointName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type directionsResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Routes       []directionsRoute `json:"routes"`
}

type directionsRoute struct {
	Legs []directionsLeg `json:"legs"`
}

type directionsLeg struct {
	Duration directionsDuration `json:"duration"`
}

type directionsDuration struct {
	Value int `json:"value"` // seconds
}
