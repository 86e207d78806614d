package io_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/utils/io"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

type document struct {
	Name  string `toml:"name"`
	Count uint   `toml:"count"`
}

func TestWriteReadTOML(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "nested", "doc.toml")
		in := document{Name: "node", Count: 3}

		require.NoError(t, io.WriteTOML(path, in))
		assert.True(t, io.FileExists(path))

		var out document
		require.NoError(t, io.ReadTOML(path, &out))
		assert.Equal(t, in, out)
	})
}

func TestReadTOML_UnknownField(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "doc.toml")
		require.NoError(t, os.WriteFile(path, []byte("name = \"a\"\ncolor = \"red\"\n"), 0644))

		var out document
		err := io.ReadTOML(path, &out)
		require.Error(t, err)
		assert.False(t, errors.Is(err, fs.ErrNotExist))
	})
}

func TestReadFile_Missing(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		_, err := io.ReadFile(filepath.Join(dir, "missing.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		var pathErr *fs.PathError
		assert.True(t, errors.As(err, &pathErr))
	})
}

func TestWriteSecretFile_Permissions(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "secret")
		require.NoError(t, io.WriteSecretFile(path, []byte("s3cr3t")))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestDirExists(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		exists, err := io.DirExists(dir)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = io.DirExists(filepath.Join(dir, "nope"))
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestDirLock(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		first := io.NewDirLock(dir)
		require.NoError(t, first.Lock())
		assert.True(t, io.FileExists(first.Path()))

		// flock locks are per file descriptor, so a second handle in the
		// same process observes the first one as held
		second := io.NewDirLock(dir)
		require.Error(t, second.Lock())

		require.NoError(t, first.Unlock())
		require.NoError(t, second.Lock())
		require.NoError(t, second.Unlock())
	})
}
