package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/utils/io"
)

// Storage is an open node storage directory. It holds the directory lock
// for as long as it is open.
type Storage struct {
	DB   *badger.DB
	lock *io.DirLock
	dir  string
}

// Open locks dir and opens the badger database inside it, creating both
// if needed. It fails if another process holds the lock.
func Open(log zerolog.Logger, dir string) (*Storage, error) {
	lock := io.NewDirLock(dir)
	err := lock.Lock()
	if err != nil {
		return nil, fmt.Errorf("could not lock storage: %w", err)
	}

	opts := badger.
		DefaultOptions(dir).
		WithKeepL0InMemory(true).
		WithLogger(NewLogger(log))

	db, err := badger.Open(opts)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("could not open storage %s: %w", dir, err)
	}

	return &Storage{
		DB:   db,
		lock: lock,
		dir:  dir,
	}, nil
}

// Dir returns the storage directory.
func (s *Storage) Dir() string {
	return s.dir
}

// Close closes the database and releases the directory lock.
func (s *Storage) Close() error {
	err := s.DB.Close()
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("could not close storage %s: %w", s.dir, err)
	}
	return s.lock.Unlock()
}
