package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/module/metrics"
)

// requestIDHeader carries the id a request is logged with.
const requestIDHeader = "X-Request-Id"

// loggingMiddleware logs the method, uri, duration and response code of each
// request under a random request id, which is also returned to the client.
func loggingMiddleware(logger zerolog.Logger) mux.MiddlewareFunc {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()
			w.Header().Set(requestIDHeader, requestID)
			respWriter := newResponseWriter(w)
			handler.ServeHTTP(respWriter, req)

			log := logger.Debug()
			if respWriter.statusCode >= http.StatusInternalServerError {
				log = logger.Error()
			}
			log.Str("request_id", requestID).
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Str("client_ip", req.RemoteAddr).
				Dur("duration", time.Since(start)).
				Int("response_code", respWriter.statusCode).
				Msg("api")
		})
	}
}

// metricsMiddleware counts requests per route template.
func metricsMiddleware(collector *metrics.NodeCollector, api string) mux.MiddlewareFunc {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			respWriter := newResponseWriter(w)
			handler.ServeHTTP(respWriter, req)

			route := req.URL.Path
			if current := mux.CurrentRoute(req); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}
			collector.APIRequest(api, route, req.Method, respWriter.statusCode, time.Since(start))
		})
	}
}

// responseWriter is a wrapper around http.ResponseWriter and helps capture the response code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
