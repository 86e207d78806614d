// Package node defines the records a node keeps in its persistent storage.
package node

import "time"

// Meta identifies the node a storage directory belongs to and tracks how
// often the node was started on it.
type Meta struct {
	// ConsensusKey is the hex-encoded consensus public key of the owning node.
	ConsensusKey  string
	ValidatorID   uint32
	Starts        uint64
	LastStartedAt time.Time
}

// ConsensusMessage is a consensus message cached on disk so that it can be
// replayed after a restart. The cache can be dropped with the clear-cache
// maintenance action without affecting the rest of the storage.
type ConsensusMessage struct {
	Round      uint64
	Payload    []byte
	ReceivedAt time.Time
}
