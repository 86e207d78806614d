package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/admin"
	"github.com/onflow/flow-bootstrap/model/node"
	bstorage "github.com/onflow/flow-bootstrap/storage/badger"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

func TestClearCacheCommand(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		s, err := bstorage.Open(unittest.Logger(), dir)
		require.NoError(t, err)
		defer s.Close()

		cache := bstorage.NewConsensusCache(s.DB)
		for round := uint64(1); round <= 5; round++ {
			require.NoError(t, cache.Store(&node.ConsensusMessage{Round: round, ReceivedAt: time.Now()}))
		}

		runner := admin.NewRunner()
		runner.RegisterCommand(admin.ActionClearCache, NewClearCacheCommand(unittest.Logger(), cache))

		t.Run("rejects parameters", func(t *testing.T) {
			_, err := runner.Run(context.Background(), &admin.CommandRequest{
				Action: admin.ActionClearCache,
				Data:   map[string]interface{}{"round": 1},
			})
			require.True(t, admin.IsInvalidRequestError(err))

			count, err := cache.Count()
			require.NoError(t, err)
			assert.Equal(t, uint64(5), count)
		})

		t.Run("clears cache", func(t *testing.T) {
			result, err := runner.Run(context.Background(), &admin.CommandRequest{Action: admin.ActionClearCache})
			require.NoError(t, err)
			assert.Equal(t, map[string]interface{}{"removed": uint64(5)}, result)

			count, err := cache.Count()
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	})
}
