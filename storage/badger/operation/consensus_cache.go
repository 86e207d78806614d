package operation

import (
	"errors"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-bootstrap/model/node"
	"github.com/onflow/flow-bootstrap/storage"
)

// ConsensusMessagePrefix is the key prefix of every cached consensus message.
// Dropping it clears the cache.
func ConsensusMessagePrefix() []byte {
	return makePrefix(codeConsensusMessage)
}

// InsertConsensusMessage stores msg under the given sequence number.
func InsertConsensusMessage(seq uint64, msg *node.ConsensusMessage) func(*badger.Txn) error {
	return insert(makePrefix(codeConsensusMessage, msg.Round, seq), msg)
}

// RetrieveConsensusMessages collects every cached message ordered by round
// and sequence number.
func RetrieveConsensusMessages(msgs *[]*node.ConsensusMessage) func(*badger.Txn) error {
	*msgs = nil
	create := func() interface{} {
		return &node.ConsensusMessage{}
	}
	handle := func(entity interface{}) error {
		*msgs = append(*msgs, entity.(*node.ConsensusMessage))
		return nil
	}
	return traverse(ConsensusMessagePrefix(), create, handle)
}

// CountConsensusMessages counts the cached messages.
func CountConsensusMessages(count *uint64) func(*badger.Txn) error {
	return countPrefix(ConsensusMessagePrefix(), count)
}

// NextConsensusMessageSeq increments and returns the message sequence number.
func NextConsensusMessageSeq(seq *uint64) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		var current uint64
		err := retrieve(makePrefix(codeConsensusMessageSeq), &current)(tx)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		current++
		err = upsert(makePrefix(codeConsensusMessageSeq), current)(tx)
		if err != nil {
			return err
		}
		*seq = current
		return nil
	}
}
