package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/module/metrics"
)

// Engine serves the public and private API of a node. A side without an
// address is not served.
type Engine struct {
	log      zerolog.Logger
	handlers *Handlers
	servers  map[string]*http.Server
	addrs    map[string]net.Addr
}

func NewEngine(log zerolog.Logger, conf bootstrap.NodeAPIConfig, handlers *Handlers, collector *metrics.NodeCollector) *Engine {
	log = log.With().Str("engine", "api").Logger()
	e := &Engine{
		log:      log,
		handlers: handlers,
		servers:  make(map[string]*http.Server),
		addrs:    make(map[string]net.Addr),
	}
	if conf.PublicAPIAddress != "" {
		e.servers[metrics.APIPublic] = NewServer(conf.PublicAPIAddress, conf.PublicAllowOrigin,
			NewPublicRouter(log, handlers, collector))
	}
	if conf.PrivateAPIAddress != "" {
		e.servers[metrics.APIPrivate] = NewServer(conf.PrivateAPIAddress, conf.PrivateAllowOrigin,
			NewPrivateRouter(log, handlers, collector))
	}
	return e
}

// Start binds every configured server and serves it in the background.
// Binding errors are returned; servers started before the error are shut down.
func (e *Engine) Start() error {
	for api, server := range e.servers {
		listener, err := net.Listen("tcp", server.Addr)
		if err != nil {
			_ = e.Stop(context.Background())
			return fmt.Errorf("could not listen on %s API address %s: %w", api, server.Addr, err)
		}
		e.addrs[api] = listener.Addr()

		go func(api string, server *http.Server, listener net.Listener) {
			err := server.Serve(listener)
			// http.ErrServerClosed is returned when Close or Shutdown is called
			if errors.Is(err, http.ErrServerClosed) {
				e.log.Debug().Str("api", api).Msg("api server shutdown")
			} else if err != nil {
				e.log.Err(err).Str("api", api).Msg("api server failed")
			}
		}(api, server, listener)

		e.log.Info().Str("api", api).Str("address", listener.Addr().String()).Msg("api server started")
	}
	return nil
}

// Addr returns the bound address of the given API side, or nil if it is not served.
func (e *Engine) Addr(api string) net.Addr {
	return e.addrs[api]
}

// Stop marks the node as stopping and gracefully shuts down every server.
func (e *Engine) Stop(ctx context.Context) error {
	e.handlers.SetStopping()

	var result *multierror.Error
	for api, server := range e.servers {
		if _, ok := e.addrs[api]; !ok {
			continue
		}
		err := server.Shutdown(ctx)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("could not shut down %s API: %w", api, err))
		}
		delete(e.addrs, api)
	}
	return result.ErrorOrNil()
}
