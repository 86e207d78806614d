package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
	"github.com/onflow/flow-bootstrap/engine/api"
	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/module/metrics"
	bstorage "github.com/onflow/flow-bootstrap/storage/badger"
)

// shutdownTimeout bounds the graceful shutdown of the API servers.
const shutdownTimeout = 5 * time.Second

// Node is the runtime a finalized node config is handed to. It owns the
// node storage and serves the node API. It runs no consensus.
type Node struct {
	Logger    zerolog.Logger
	config    *command.NodeRunConfig
	collector *metrics.NodeCollector
	storage   *bstorage.Storage
	api       *api.Engine
	ready     chan struct{}
}

func NewNode(log zerolog.Logger, config *command.NodeRunConfig) *Node {
	return &Node{
		Logger:    log.With().Str("node", encodable.KeyHex(config.ConsensusKey.PublicKey())).Logger(),
		config:    config,
		collector: metrics.NewNodeCollector(),
		ready:     make(chan struct{}),
	}
}

// Ready returns a channel that is closed once Run has started the node.
func (node *Node) Ready() <-chan struct{} {
	return node.ready
}

// Start opens and locks the node storage, records the start and starts the
// API servers.
func (node *Node) Start() error {
	storage, err := bstorage.Open(node.Logger, node.config.DBPath)
	if err != nil {
		return err
	}
	node.storage = storage

	conf := node.config.NodeConfig
	nodeMeta := bstorage.NewNodeMeta(storage.DB)
	meta, err := nodeMeta.RecordStart(conf.ConsensusPublicKey.String(), uint32(conf.ValidatorIndex()))
	if err != nil {
		_ = node.closeStorage()
		return err
	}
	node.collector.NodeStarted(conf.ConsensusPublicKey.String(), conf.ExternalAddress,
		conf.ValidatorIndex(), len(conf.Validators), meta.Starts)

	handlers := api.NewHandlers(node.Logger, conf, nodeMeta, bstorage.NewConsensusCache(storage.DB))
	node.api = api.NewEngine(node.Logger, conf.API, handlers, node.collector)
	err = node.api.Start()
	if err != nil {
		_ = node.closeStorage()
		return err
	}

	node.Logger.Info().
		Int("validator_index", conf.ValidatorIndex()).
		Int("validators", len(conf.Validators)).
		Uint64("starts", meta.Starts).
		Msg("node startup complete")
	return nil
}

// Stop shuts down the API servers and closes the storage.
func (node *Node) Stop(ctx context.Context) error {
	if node.api != nil {
		err := node.api.Stop(ctx)
		if err != nil {
			node.Logger.Error().Err(err).Msg("could not stop api")
		}
	}
	return node.closeStorage()
}

// API returns the API engine of a started node.
func (node *Node) API() *api.Engine {
	return node.api
}

func (node *Node) closeStorage() error {
	if node.storage == nil {
		return nil
	}
	err := node.storage.Close()
	node.storage = nil
	if err != nil {
		return fmt.Errorf("could not close storage: %w", err)
	}
	return nil
}

// Run starts the node and blocks until ctx is canceled or a SIGINT or
// SIGTERM is received, then shuts the node down.
func (node *Node) Run(ctx context.Context) error {
	err := node.Start()
	if err != nil {
		return err
	}
	close(node.ready)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	node.Logger.Info().Msg("node shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = node.Stop(shutdownCtx)
	if err != nil {
		return err
	}
	node.Logger.Info().Msg("node shutdown complete")
	return nil
}
