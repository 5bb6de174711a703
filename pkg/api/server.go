// Package api exposes the tag directory catalog over HTTP.
//
// All routes under /api/v1 require an X-API-Key header. The /metrics
// endpoint is left open for Prometheus scraping.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mhoffman/tagdir/pkg/log"
)

// NewRouter builds the chi router for the given server.
func NewRouter(server *Server, metrics *Metrics, config ServerConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(config.APIKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		r.Post("/images", metrics.InstrumentHandler("POST", "/api/v1/images", server.handleCreateImage))
		r.Get("/images", metrics.InstrumentHandler("GET", "/api/v1/images", server.handleListImages))
		r.Get("/images/{id}", metrics.InstrumentHandler("GET", "/api/v1/images/{id}", server.handleExportImage))
		r.Delete("/images/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/images/{id}", server.handleDeleteImage))

		r.Get("/images/{id}/tags", metrics.InstrumentHandler("GET", "/api/v1/images/{id}/tags", server.handleListTags))
		r.Get("/images/{id}/tags/{tag}", metrics.InstrumentHandler("GET", "/api/v1/images/{id}/tags/{tag}", server.handleGetTag))
		r.Put("/images/{id}/tags/{tag}", metrics.InstrumentHandler("PUT", "/api/v1/images/{id}/tags/{tag}", server.handlePutTag))
		r.Delete("/images/{id}/tags/{tag}", metrics.InstrumentHandler("DELETE", "/api/v1/images/{id}/tags/{tag}", server.handleDeleteTag))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(cat Cataloger, config ServerConfig, logger *log.Logger) error {
	metrics := NewMetrics()
	server := NewServer(cat, config, metrics, logger)
	r := NewRouter(server, metrics, config)

	go server.startMetricsUpdater()

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	server.logger.Info("serving tag directory API on %s", addr)
	return http.ListenAndServe(addr, r)
}
