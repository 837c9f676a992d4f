package placesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetspot/backend/internal/domain/entities"
)

const sampleResponse = `{
	"status": "OK",
	"results": [
		{
			"place_id": "p1",
			"name": "Shibuya Coffee Stand",
			"formatted_address": "1-2-3 Dogenzaka, Shibuya",
			"types": ["cafe", "food"],
			"rating": 4.4,
			"geometry": {"location": {"lat": 35.6585, "lng": 139.7000}}
		},
		{
			"place_id": "p2",
			"name": "Crossing Bar",
			"types": ["bar"],
			"rating": 4.1,
			"geometry": {"location": {"lat": 35.6591, "lng": 139.7010}}
		},
		{
			"place_id": "p3",
			"name": "Unknown Spot",
			"types": ["locksmith"],
			"geometry": {"location": {"lat": 35.6570, "lng": 139.7020}}
		}
	]
}`

func TestSearch_MapsResultsToHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Shibuya cafe", r.URL.Query().Get("query"))
		assert.Equal(t, "jp", r.URL.Query().Get("region"))
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	provider := NewHTTPPlaceSearchProviderWithClient("test-key", server.URL, "jp", server.Client())

	hits, err := provider.Search(context.Background(), "Shibuya cafe", 0)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "p1", hits[0].ExternalID)
	assert.Equal(t, entities.CategoryCafe, hits[0].Category)
	assert.Equal(t, entities.CategoryBar, hits[1].Category)
	assert.Equal(t, entities.CategoryOther, hits[2].Category)
	assert.InDelta(t, 35.6585, hits[0].Location.Latitude, 1e-6)
	assert.Equal(t, 4.4, hits[0].Rating)
}

func TestSearch_RespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	provider := NewHTTPPlaceSearchProviderWithClient("test-key", server.URL, "jp", server.Client())

	hits, err := provider.Search(context.Background(), "Shibuya cafe", 2)

	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestSearch_ZeroResultsIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	}))
	defer server.Close()

	provider := NewHTTPPlaceSearchProviderWithClient("test-key", server.URL, "", server.Client())

	hits, err := provider.Search(context.Background(), "nothing here", 0)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_APIErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OVER_QUERY_LIMIT","error_message":"quota exhausted"}`))
	}))
	defer server.Close()

	provider := NewHTTPPlaceSearchProviderWithClient("test-key", server.URL, "", server.Client())

	_, err := provider.Search(context.Background(), "anything", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	provider := NewHTTPPlaceSearchProvider("test-key", "http://unused.invalid", "")

	_, err := provider.Search(context.Background(), "   ", 0)
	assert.Error(t, err)
}

func TestSearch_MissingAPIKeyRejected(t *testing.T) {
	provider := NewHTTPPlaceSearchProvider("", "http://unused.invalid", "")

	_, err := provider.Search(context.Background(), "Shibuya cafe", 0)
	assert.Error(t, err)
}
