package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsProbe(t *testing.T, origins []string, method, origin string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reachedNext := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reachedNext = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/api/recommendations", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	CORSMiddleware(origins)(next).ServeHTTP(rec, req)
	return rec, reachedNext
}

func TestCORSMiddleware_WildcardOrigin(t *testing.T) {
	rec, reachedNext := corsProbe(t, []string{"*"}, http.MethodGet, "https://app.example.com")

	assert.True(t, reachedNext)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_ConfiguredOriginEchoed(t *testing.T) {
	origins := []string{"https://app.example.com", "https://admin.example.com"}
	rec, _ := corsProbe(t, origins, http.MethodGet, "https://admin.example.com")

	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORSMiddleware_UnlistedOriginGetsNoAllowHeader(t *testing.T) {
	rec, reachedNext := corsProbe(t, []string{"https://app.example.com"}, http.MethodGet, "https://evil.example.com")

	assert.True(t, reachedNext)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	rec, reachedNext := corsProbe(t, []string{"*"}, http.MethodOptions, "https://app.example.com")

	assert.False(t, reachedNext)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSMiddleware_EmptyListDefaultsToWildcard(t *testing.T) {
	rec, _ := corsProbe(t, nil, http.MethodGet, "https://app.example.com")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
