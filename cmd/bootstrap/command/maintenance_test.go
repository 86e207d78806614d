package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/admin"
	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/model/node"
	bstorage "github.com/onflow/flow-bootstrap/storage/badger"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

func TestMaintenance_ClearCache(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		run := execute(t, RunDev{ArtifactsDir: dir}).(RunResult)

		s, err := bstorage.Open(unittest.Logger(), run.DBPath)
		require.NoError(t, err)
		cache := bstorage.NewConsensusCache(s.DB)
		for round := uint64(1); round <= 3; round++ {
			require.NoError(t, cache.Store(&node.ConsensusMessage{Round: round, ReceivedAt: time.Now()}))
		}

		// storage is locked while in use
		_, err = Execute(context.Background(), unittest.Logger(), Maintenance{
			NodeConfigPath: run.NodeConfigPath,
			DBPath:         run.DBPath,
			Action:         admin.ActionClearCache,
		})
		require.Error(t, err)
		require.NoError(t, s.Close())

		result := execute(t, Maintenance{
			NodeConfigPath: run.NodeConfigPath,
			DBPath:         run.DBPath,
			Action:         admin.ActionClearCache,
		}).(MaintenanceResult)
		assert.Equal(t, run.NodeConfigPath, result.NodeConfigPath)
		assert.Equal(t, run.DBPath, result.DBPath)
		assert.Equal(t, "clear-cache", result.PerformedAction)
		assert.Equal(t, map[string]interface{}{"removed": uint64(3)}, result.Output)

		s, err = bstorage.Open(unittest.Logger(), run.DBPath)
		require.NoError(t, err)
		defer s.Close()
		count, err := bstorage.NewConsensusCache(s.DB).Count()
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestMaintenance_Failures(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		run := execute(t, RunDev{ArtifactsDir: dir}).(RunResult)
		require.NoError(t, os.MkdirAll(run.DBPath, 0755))

		t.Run("missing storage", func(t *testing.T) {
			_, err := Execute(context.Background(), unittest.Logger(), Maintenance{
				NodeConfigPath: run.NodeConfigPath,
				DBPath:         filepath.Join(dir, "missing"),
				Action:         admin.ActionClearCache,
			})
			require.True(t, bootstrap.IsNotExist(err))
		})

		t.Run("missing node config", func(t *testing.T) {
			_, err := Execute(context.Background(), unittest.Logger(), Maintenance{
				NodeConfigPath: filepath.Join(dir, "missing.toml"),
				DBPath:         run.DBPath,
				Action:         admin.ActionClearCache,
			})
			require.True(t, bootstrap.IsNotExist(err))
		})

		t.Run("unknown action", func(t *testing.T) {
			_, err := Execute(context.Background(), unittest.Logger(), Maintenance{
				NodeConfigPath: run.NodeConfigPath,
				DBPath:         run.DBPath,
				Action:         admin.Action("compact"),
			})
			require.ErrorIs(t, err, admin.ErrUnknownAction)
		})
	})
}
