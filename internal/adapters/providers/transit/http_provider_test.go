package transit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetspot/backend/internal/domain/providers"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func endpoints() (providers.Endpoint, providers.Endpoint) {
	origin := providers.Endpoint{Name: "Ikebukuro"}
	origin.Location.Latitude, origin.Location.Longitude = 35.7295, 139.7109
	dest := providers.Endpoint{Name: "Shibuya"}
	dest.Location.Latitude, dest.Location.Longitude = 35.6580, 139.7016
	return origin, dest
}

func TestTravelTime_SumsLegsAndRoundsUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "transit", r.URL.Query().Get("mode"))
		w.Write([]byte(`{"status":"OK","routes":[{"legs":[{"duration":{"value":600}},{"duration":{"value":61}}]}]}`))
	}))
	defer server.Close()

	provider := NewHTTPTransitProviderWithClient("test-key", server.URL, nil, server.Client())

	origin, dest := endpoints()
	minutes, ok := provider.TravelTime(context.Background(), origin, dest)

	require.True(t, ok)
	// 661 seconds rounds up to 12 minutes.
	assert.Equal(t, 12, minutes)
}

func TestTravelTime_APIErrorReportsNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	}))
	defer server.Close()

	provider := NewHTTPTransitProviderWithClient("test-key", server.URL, nil, server.Client())

	origin, dest := endpoints()
	_, ok := provider.TravelTime(context.Background(), origin, dest)
	assert.False(t, ok)
}

func TestTravelTime_ServerFailureReportsNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewHTTPTransitProviderWithClient("test-key", server.URL, nil, server.Client())

	origin, dest := endpoints()
	_, ok := provider.TravelTime(context.Background(), origin, dest)
	assert.False(t, ok)
}

func TestTravelTime_MissingAPIKeyReportsNotOK(t *testing.T) {
	provider := NewHTTPTransitProvider("", "http://unused.invalid", nil)

	origin, dest := endpoints()
	_, ok := provider.TravelTime(context.Background(), origin, dest)
	assert.False(t, ok)
}

func TestTravelTime_SecondLookupServedFromCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status":"OK","routes":[{"legs":[{"duration":{"value":900}}]}]}`))
	}))
	defer server.Close()

	cache := newMemoryCache()
	provider := NewHTTPTransitProviderWithClient("test-key", server.URL, cache, server.Client())

	origin, dest := endpoints()
	for i := 0; i < 3; i++ {
		minutes, ok := provider.TravelTime(context.Background(), origin, dest)
		require.True(t, ok)
		assert.Equal(t, 15, minutes)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.data, "transit:v1:ikebukuro|shibuya")
}

func TestTravelTime_UnnamedEndpointsBypassCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","routes":[{"legs":[{"duration":{"value":300}}]}]}`))
	}))
	defer server.Close()

	cache := newMemoryCache()
	provider := NewHTTPTransitProviderWithClient("test-key", server.URL, cache, server.Client())

	origin, dest := endpoints()
	origin.Name = ""
	minutes, ok := provider.TravelTime(context.Background(), origin, dest)

	require.True(t, ok)
	assert.Equal(t, 5, minutes)
	assert.Equal(t, 0, cache.sets)
}
