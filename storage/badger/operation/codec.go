package operation

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
)

// encodeEntity encodes the given entity using msgpack.
func encodeEntity(entity interface{}) ([]byte, error) {
	val, err := msgpack.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("could not encode entity: %w", err)
	}
	return val, nil
}

// decodeValue decodes the given value into the given entity using msgpack.
func decodeValue(val []byte, entity interface{}) error {
	err := msgpack.Unmarshal(val, entity)
	if err != nil {
		return fmt.Errorf("could not decode entity: %w", err)
	}
	return nil
}
