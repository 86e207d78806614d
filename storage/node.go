package storage

import (
	"github.com/onflow/flow-bootstrap/model/node"
)

// NodeMeta provides access to the metadata of the node owning the storage.
type NodeMeta interface {
	// Retrieve returns the stored metadata.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if the node was never started on this storage
	Retrieve() (*node.Meta, error)

	// RecordStart registers a node start. The first start binds the storage
	// to consensusKey.
	// Expected errors during normal operations:
	//   - storage.ErrForeignStorage if the storage is bound to another key
	RecordStart(consensusKey string, validatorID uint32) (*node.Meta, error)
}

// ConsensusCache is the persisted cache of consensus messages.
type ConsensusCache interface {
	// Store appends a message to the cache.
	Store(msg *node.ConsensusMessage) error

	// Messages returns every cached message ordered by round.
	Messages() ([]*node.ConsensusMessage, error)

	// Count returns the number of cached messages.
	Count() (uint64, error)

	// Clear removes every cached message and returns how many were removed.
	Clear() (uint64, error)
}
