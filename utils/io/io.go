package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile reads the file from path. The returned error keeps the underlying
// *fs.PathError so callers can tell I/O failures apart from decoding failures.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, creating the parent directory if needed.
// An existing file at path is replaced.
func WriteFile(path string, data []byte) error {
	return writeFile(path, data, 0644)
}

// WriteSecretFile behaves like WriteFile but restricts the file to the owner.
func WriteSecretFile(path string, data []byte) error {
	return writeFile(path, data, 0600)
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return fmt.Errorf("could not create output dir for %s: %w", path, err)
	}

	err = os.WriteFile(path, data, perm)
	if err != nil {
		return fmt.Errorf("could not write file %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if a file (not a directory) exists at path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if a directory exists at path.
// Any stat error other than "does not exist" is returned to the caller.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}
