package placesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
)

const defaultHTTPTimeout = 8 * time.Second

// HTTPPlaceSearchProvider queries a Places-style text search API. Callers
// bound each query with their own context deadline; an error aborts only
// that query.
type HTTPPlaceSearchProvider struct {
	apiKey     string
	baseURL    string
	region     string
	httpClient *http.Client
}

// NewHTTPPlaceSearchProvider creates a new place-search provider.
func NewHTTPPlaceSearchProvider(apiKey, baseURL, region string) providers.PlaceSearchProvider {
	return NewHTTPPlaceSearchProviderWithClient(apiKey, baseURL, region, nil)
}

// NewHTTPPlaceSearchProviderWithClient allows overriding the HTTP client (used for tests).
func NewHTTPPlaceSearchProviderWithClient(apiKey, baseURL, region string, httpClient *http.Client) providers.PlaceSearchProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPPlaceSearchProvider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		region:     region,
		httpClient: httpClient,
	}
}

// Search runs one text search query and maps raw results to place hits.
func (p *HTTPPlaceSearchProvider) Search(ctx context.Context, query string, limit int) ([]*providers.PlaceHit, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("place search api key is required")
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	params := url.Values{}
	params.Set("query", query)
	if p.region != "" {
		params.Set("region", p.region)
	}
	params.Set("key", p.apiKey)

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build text search request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("text search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("text search returned status %d", resp.StatusCode)
	}

	var payload textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode text search response: %w", err)
	}

	if payload.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("text search failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("text search failed: %s", payload.Status)
	}

	hits := make([]*providers.PlaceHit, 0, len(payload.Results))
	for _, result := range payload.Results {
		hits = append(hits, &providers.PlaceHit{
			ExternalID: result.PlaceID,
			Name:       result.Name,
			Category:   mapCategory(result.Types),
			Address:    result.FormattedAddress,
			Location: entities.Location{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
			Rating: result.Rating,
		})
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	return hits, nil
}

// mapCategory folds the API's place types onto the venue taxonomy.
func mapCategory(types []string) entities.Category {
	for _, t := range types {
		switch t {
		case "restaurant", "meal_takeaway", "food":
			return entities.CategoryDining
		case "cafe", "bakery":
			return entities.CategoryCafe
		case "bar", "night_club":
			return entities.CategoryBar
		case "coworking_space", "library":
			return entities.CategoryWorkspace
		case "museum", "art_gallery", "movie_theater":
			return entities.CategoryCulture
		case "bowling_alley", "amusement_park", "gym", "park":
			return entities.CategoryActivity
		}
	}
	return entities.CategoryOther
}

type textSearchResponse struct {
	Status       string             `json:"status"`
	ErrorMessage string             `json:"error_message,omitempty"`
	Results      []textSearchResult `json:"results"`
}

type textSearchResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Types            []string `json:"types"`
	Rating           float64  `json:"rating"`
	Geometry         geometry `json:"geometry"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
