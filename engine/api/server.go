package api

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
)

// NewServer returns an HTTP server for handler on listenAddress. allowOrigin
// is a comma-separated list of origins allowed by CORS, "*" allows any
// origin and an empty list disables CORS headers.
func NewServer(listenAddress string, allowOrigin string, handler http.Handler) *http.Server {
	origins := bootstrap.ParseAllowOrigin(allowOrigin)
	if len(origins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedHeaders: []string{"*"},
			AllowedMethods: []string{
				http.MethodGet,
				http.MethodPost,
				http.MethodOptions,
				http.MethodHead},
		})
		handler = c.Handler(handler)
	}

	return &http.Server{
		Addr:         listenAddress,
		Handler:      handler,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
}
