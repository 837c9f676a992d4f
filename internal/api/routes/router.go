package routes

import (
	"net/http"

	"github.com/meetspot/backend/internal/api/handlers"
	"github.com/meetspot/backend/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	reviewHandler         *handlers.ReviewHandler
	venueHandler          *handlers.VenueHandler
	allowedOrigins        []string
}

// NewRouter creates a new router
func NewRouter(
	recommendationHandler *handlers.RecommendationHandler,
	reviewHandler *handlers.ReviewHandler,
	venueHandler *handlers.VenueHandler,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		recommendationHandler: recommendationHandler,
		reviewHandler:         reviewHandler,
		venueHandler:          venueHandler,
		allowedOrigins:        allowedOrigins,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Recommendation endpoints
	r.mux.HandleFunc("POST /api/recommendations", r.recommendationHandler.Recommend)

	// Review endpoints
	r.mux.HandleFunc("POST /api/reviews", r.reviewHandler.SubmitReview)

	// Venue endpoints
	r.mux.HandleFunc("GET /api/venues/{id}", r.venueHandler.GetVenue)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS wraps everything so headers are set on every response.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
