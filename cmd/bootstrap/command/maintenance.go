package command

import (
	"context"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/admin"
	storagecommands "github.com/onflow/flow-bootstrap/admin/commands/storage"
	"github.com/onflow/flow-bootstrap/model/bootstrap"
	bstorage "github.com/onflow/flow-bootstrap/storage/badger"
	"github.com/onflow/flow-bootstrap/utils/io"
)

// Maintenance performs an administrative action on the storage of a node
// that is not running.
type Maintenance struct {
	NodeConfigPath string
	DBPath         string
	Action         admin.Action
}

func (Maintenance) Name() string { return "maintenance" }

func (c Maintenance) execute(ctx context.Context, log zerolog.Logger) (Result, error) {
	_, err := admin.ParseAction(c.Action.String())
	if err != nil {
		return nil, err
	}

	_, err = bootstrap.LoadNodeConfig(c.NodeConfigPath)
	if err != nil {
		return nil, err
	}

	exists, err := io.DirExists(c.DBPath)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: c.DBPath, Err: fs.ErrNotExist}
	}

	storage, err := bstorage.Open(log, c.DBPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error().Err(err).Msg("could not close storage")
		}
	}()

	runner := admin.NewRunner()
	runner.RegisterCommand(admin.ActionClearCache,
		storagecommands.NewClearCacheCommand(log, bstorage.NewConsensusCache(storage.DB)))

	output, err := runner.Run(ctx, &admin.CommandRequest{Action: c.Action})
	if err != nil {
		return nil, err
	}

	return MaintenanceResult{
		NodeConfigPath:  c.NodeConfigPath,
		DBPath:          c.DBPath,
		PerformedAction: c.Action.String(),
		Output:          output,
	}, nil
}
