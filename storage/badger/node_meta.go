package badger

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-bootstrap/model/node"
	"github.com/onflow/flow-bootstrap/storage"
	"github.com/onflow/flow-bootstrap/storage/badger/operation"
)

// NodeMeta implements storage.NodeMeta on top of badger.
type NodeMeta struct {
	db  *badger.DB
	now func() time.Time
}

var _ storage.NodeMeta = (*NodeMeta)(nil)

func NewNodeMeta(db *badger.DB) *NodeMeta {
	return &NodeMeta{
		db:  db,
		now: time.Now,
	}
}

func (m *NodeMeta) Retrieve() (*node.Meta, error) {
	var meta node.Meta
	err := m.db.View(operation.RetrieveNodeMeta(&meta))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve node meta: %w", err)
	}
	return &meta, nil
}

func (m *NodeMeta) RecordStart(consensusKey string, validatorID uint32) (*node.Meta, error) {
	var meta node.Meta
	err := m.db.Update(func(tx *badger.Txn) error {
		err := operation.RetrieveNodeMeta(&meta)(tx)
		if errors.Is(err, storage.ErrNotFound) {
			meta = node.Meta{
				ConsensusKey:  consensusKey,
				ValidatorID:   validatorID,
				Starts:        1,
				LastStartedAt: m.now().UTC(),
			}
			return operation.InsertNodeMeta(&meta)(tx)
		}
		if err != nil {
			return err
		}

		if meta.ConsensusKey != consensusKey {
			return fmt.Errorf("%w: bound to consensus key %s", storage.ErrForeignStorage, meta.ConsensusKey)
		}

		meta.ValidatorID = validatorID
		meta.Starts++
		meta.LastStartedAt = m.now().UTC()
		return operation.UpdateNodeMeta(&meta)(tx)
	})
	if err != nil {
		return nil, fmt.Errorf("could not record node start: %w", err)
	}
	return &meta, nil
}
