package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/module/metrics"
)

const apiPrefix = "/api/v1"

// NewPublicRouter returns the router of the public API.
func NewPublicRouter(log zerolog.Logger, handlers *Handlers, collector *metrics.NodeCollector) *mux.Router {
	router := newRouter(log, collector, metrics.APIPublic)
	v1 := router.PathPrefix(apiPrefix).Subrouter()
	v1.HandleFunc("/healthcheck", handlers.HealthCheck).Methods(http.MethodGet).Name("healthcheck")
	v1.HandleFunc("/validators", handlers.Validators).Methods(http.MethodGet).Name("validators")
	return router
}

// NewPrivateRouter returns the router of the private API.
func NewPrivateRouter(log zerolog.Logger, handlers *Handlers, collector *metrics.NodeCollector) *mux.Router {
	router := newRouter(log, collector, metrics.APIPrivate)
	v1 := router.PathPrefix(apiPrefix).Subrouter()
	v1.HandleFunc("/info", handlers.Info).Methods(http.MethodGet).Name("info")
	router.Handle("/metrics", collector.Handler()).Methods(http.MethodGet).Name("metrics")
	return router
}

func newRouter(log zerolog.Logger, collector *metrics.NodeCollector, api string) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(log.With().Str("api", api).Logger()))
	router.Use(metricsMiddleware(collector, api))
	return router
}
