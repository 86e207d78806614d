package bootstrap

import (
	"errors"
	"io/fs"

	"github.com/onflow/flow-bootstrap/utils/io"
)

// readDocument reads the TOML document at path into target. Failing to read
// the file is returned as is, failing to decode it is returned as a ParseError.
func readDocument(path string, target interface{}) error {
	data, err := io.ReadFile(path)
	if err != nil {
		return err
	}
	err = io.DecodeTOML(data, target)
	if err != nil {
		return NewParseError(path, err)
	}
	return nil
}

// IsNotExist returns true if err was caused by a missing file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
