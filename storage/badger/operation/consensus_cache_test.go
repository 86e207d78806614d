package operation

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/model/node"
	"github.com/onflow/flow-bootstrap/storage"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

func TestConsensusMessagesInsertRetrieve(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		receivedAt := time.Unix(1600000000, 0).UTC()
		msgs := []*node.ConsensusMessage{
			{Round: 2, Payload: []byte("b"), ReceivedAt: receivedAt},
			{Round: 1, Payload: []byte("a"), ReceivedAt: receivedAt},
		}
		for _, msg := range msgs {
			var seq uint64
			require.NoError(t, db.Update(func(tx *badger.Txn) error {
				if err := NextConsensusMessageSeq(&seq)(tx); err != nil {
					return err
				}
				return InsertConsensusMessage(seq, msg)(tx)
			}))
		}

		var count uint64
		require.NoError(t, db.View(CountConsensusMessages(&count)))
		assert.Equal(t, uint64(2), count)

		var actual []*node.ConsensusMessage
		require.NoError(t, db.View(RetrieveConsensusMessages(&actual)))
		require.Len(t, actual, 2)
		assert.Equal(t, uint64(1), actual[0].Round)
		assert.Equal(t, []byte("a"), actual[0].Payload)
		assert.True(t, receivedAt.Equal(actual[0].ReceivedAt))
		assert.Equal(t, uint64(2), actual[1].Round)
	})
}

func TestNextConsensusMessageSeq(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		var seq uint64
		require.NoError(t, db.Update(NextConsensusMessageSeq(&seq)))
		assert.Equal(t, uint64(1), seq)
		require.NoError(t, db.Update(NextConsensusMessageSeq(&seq)))
		assert.Equal(t, uint64(2), seq)
	})
}

func TestNodeMetaInsertRetrieve(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		var meta node.Meta
		err := db.View(RetrieveNodeMeta(&meta))
		require.ErrorIs(t, err, storage.ErrNotFound)

		expected := node.Meta{ConsensusKey: "abcd", Starts: 1, LastStartedAt: time.Unix(1600000000, 0).UTC()}
		require.NoError(t, db.Update(InsertNodeMeta(&expected)))
		require.ErrorIs(t, db.Update(InsertNodeMeta(&expected)), storage.ErrAlreadyExists)

		expected.Starts = 2
		require.NoError(t, db.Update(UpdateNodeMeta(&expected)))

		require.NoError(t, db.View(RetrieveNodeMeta(&meta)))
		assert.Equal(t, expected.ConsensusKey, meta.ConsensusKey)
		assert.Equal(t, uint64(2), meta.Starts)
	})
}
