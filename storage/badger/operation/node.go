package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-bootstrap/model/node"
)

func InsertNodeMeta(meta *node.Meta) func(*badger.Txn) error {
	return insert(makePrefix(codeNodeMeta), meta)
}

func UpdateNodeMeta(meta *node.Meta) func(*badger.Txn) error {
	return upsert(makePrefix(codeNodeMeta), meta)
}

func RetrieveNodeMeta(meta *node.Meta) func(*badger.Txn) error {
	return retrieve(makePrefix(codeNodeMeta), meta)
}
