package operation

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/onflow/flow-bootstrap/storage"
)

// insert will encode the given entity and will insert the resulting binary
// data in the badger DB under the provided key. It will error if the key
// already exists.
func insert(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {

		// check if the key already exists in the db
		_, err := tx.Get(key)
		if err == nil {
			return storage.ErrAlreadyExists
		}

		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not check key: %w", err)
		}

		// serialize the entity data
		val, err := encodeEntity(entity)
		if err != nil {
			return err
		}

		// persist the entity data into the DB
		err = tx.Set(key, val)
		if err != nil {
			return fmt.Errorf("could not store data: %w", err)
		}

		return nil
	}
}

// upsert will encode the given entity and store it under the given key,
// replacing any existing value.
func upsert(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		val, err := encodeEntity(entity)
		if err != nil {
			return err
		}

		err = tx.Set(key, val)
		if err != nil {
			return fmt.Errorf("could not upsert data: %w", err)
		}

		return nil
	}
}

// retrieve will retrieve the binary data under the given key from the badger DB
// and decode it into the given entity. The provided entity needs to be a
// pointer to an initialized entity of the correct type.
func retrieve(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {

		// retrieve the item from the key-value store
		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not load data: %w", err)
		}

		// get the value from the item
		err = item.Value(func(val []byte) error {
			return decodeValue(val, entity)
		})
		if err != nil {
			return err
		}

		return nil
	}
}

// countPrefix counts the keys starting with prefix without loading their values.
func countPrefix(prefix []byte, count *uint64) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		options.Prefix = prefix

		it := tx.NewIterator(options)
		defer it.Close()

		*count = 0
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			*count++
		}
		return nil
	}
}

// traverse iterates over all keys with the given prefix in ascending order and
// decodes each value into a fresh entity obtained from create before calling handle.
func traverse(prefix []byte, create func() interface{}, handle func(entity interface{}) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix

		it := tx.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			entity := create()
			err := it.Item().Value(func(val []byte) error {
				return decodeValue(val, entity)
			})
			if err != nil {
				return fmt.Errorf("could not decode entity at key %x: %w", it.Item().Key(), err)
			}
			err = handle(entity)
			if err != nil {
				return err
			}
		}
		return nil
	}
}
