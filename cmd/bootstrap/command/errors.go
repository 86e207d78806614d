package command

import (
	"errors"
	"fmt"
)

// ErrNotArtifactsDir is wrapped by a CleanupError when the directory to
// clean up holds none of the files a development run generates.
var ErrNotArtifactsDir = errors.New("directory holds no generated artifacts, refusing to remove it")

// CleanupError indicates that an existing artifacts directory could not be
// removed before a development run.
type CleanupError struct {
	Path string
	Err  error
}

func NewCleanupError(path string, err error) CleanupError {
	return CleanupError{Path: path, Err: err}
}

func (err CleanupError) Error() string {
	return fmt.Sprintf("could not remove artifacts directory %s: %v", err.Path, err.Err)
}

func (err CleanupError) Unwrap() error {
	return err.Err
}

func IsCleanupError(err error) bool {
	var target CleanupError
	return errors.As(err, &target)
}
