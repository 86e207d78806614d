package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-bootstrap/model/node"
	"github.com/onflow/flow-bootstrap/storage"
	"github.com/onflow/flow-bootstrap/storage/badger/operation"
)

// ConsensusCache implements storage.ConsensusCache on top of badger.
type ConsensusCache struct {
	db *badger.DB
}

var _ storage.ConsensusCache = (*ConsensusCache)(nil)

func NewConsensusCache(db *badger.DB) *ConsensusCache {
	return &ConsensusCache{db: db}
}

func (c *ConsensusCache) Store(msg *node.ConsensusMessage) error {
	err := c.db.Update(func(tx *badger.Txn) error {
		var seq uint64
		err := operation.NextConsensusMessageSeq(&seq)(tx)
		if err != nil {
			return err
		}
		return operation.InsertConsensusMessage(seq, msg)(tx)
	})
	if err != nil {
		return fmt.Errorf("could not store consensus message: %w", err)
	}
	return nil
}

func (c *ConsensusCache) Messages() ([]*node.ConsensusMessage, error) {
	var msgs []*node.ConsensusMessage
	err := c.db.View(operation.RetrieveConsensusMessages(&msgs))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve consensus messages: %w", err)
	}
	return msgs, nil
}

func (c *ConsensusCache) Count() (uint64, error) {
	var count uint64
	err := c.db.View(operation.CountConsensusMessages(&count))
	if err != nil {
		return 0, fmt.Errorf("could not count consensus messages: %w", err)
	}
	return count, nil
}

// Clear drops the whole consensus message keyspace. The sequence counter is
// kept so that new messages never reuse a key.
func (c *ConsensusCache) Clear() (uint64, error) {
	count, err := c.Count()
	if err != nil {
		return 0, err
	}

	err = c.db.DropPrefix(operation.ConsensusMessagePrefix())
	if err != nil {
		return 0, fmt.Errorf("could not drop consensus messages: %w", err)
	}
	return count, nil
}
