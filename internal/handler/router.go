package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/eventease/internal/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router serving the catalog API.
func NewRouter(catalog Catalog, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	eventHandler := NewEventHandler(catalog, log)

	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(Logger(log))
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	r.Route("/events", eventHandler.Routes)

	return r
}
