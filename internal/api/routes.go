package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// SetupRoutes configures all page, API and operational routes
func SetupRoutes(handler *Handler, logger zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware(logger), metricsMiddleware, recoverMiddleware(logger))

	// Pages
	r.HandleFunc("/", handler.Home).Methods("GET")
	r.HandleFunc("/about", handler.About).Methods("GET")
	r.HandleFunc("/view", handler.ViewData).Methods("GET")
	r.HandleFunc("/graph", handler.ViewGraph).Methods("GET")
	r.HandleFunc("/graph.svg", handler.GraphSVG).Methods("GET")

	// Operational
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// JSON API
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/prices", handler.GetPrices).Methods("GET")
	api.HandleFunc("/extremes", handler.GetExtremes).Methods("GET")
	api.HandleFunc("/chart", handler.GetChart).Methods("GET")

	return r
}
