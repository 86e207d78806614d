package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/module/keys"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

func TestRunDev_Twice(t *testing.T) {
	unittest.RunWithTempDir(t, func(root string) {
		dir := filepath.Join(root, "artifacts")

		var firstKey string
		for i := 0; i < 2; i++ {
			if i == 1 {
				// leftovers of the first run are removed
				require.NoError(t, os.MkdirAll(filepath.Join(dir, bootstrap.DirnameDB), 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "stale"), []byte("x"), 0644))
			}

			result := execute(t, RunDev{ArtifactsDir: dir})
			run, ok := result.(RunResult)
			require.True(t, ok)

			conf := run.NodeConfig
			require.Len(t, conf.Validators, 1)
			assert.Equal(t, DevPeerAddress, conf.ListenAddress)
			assert.Equal(t, DevPeerAddress, conf.ExternalAddress)
			assert.Equal(t, DevPublicAPIAddress, conf.API.PublicAPIAddress)
			assert.Equal(t, DevPrivateAPIAddress, conf.API.PrivateAPIAddress)
			assert.Equal(t, DevPublicAllowOrigin, conf.API.PublicAllowOrigin)
			assert.Equal(t, DevPrivateAllowOrigin, conf.API.PrivateAllowOrigin)
			assert.Empty(t, conf.ConnectList)
			assert.Equal(t, filepath.Join(dir, bootstrap.FilenameNodeConfig), run.NodeConfigPath)

			for _, name := range []string{bootstrap.FilenameConsensusKey, bootstrap.FilenameServiceKey} {
				encrypted, err := keys.IsKeyFileEncrypted(filepath.Join(dir, name))
				require.NoError(t, err)
				assert.False(t, encrypted)
			}
			assert.NoFileExists(t, filepath.Join(dir, "stale"))

			if i == 0 {
				firstKey = conf.ConsensusPublicKey.String()
			} else {
				assert.NotEqual(t, firstKey, conf.ConsensusPublicKey.String())
			}
		}
	})
}

func TestRunDev_CleanupError(t *testing.T) {
	unittest.RunWithTempDir(t, func(root string) {
		file := filepath.Join(root, "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		// a path below a regular file can be neither inspected nor removed
		dir := filepath.Join(file, "artifacts")
		_, err := Execute(context.Background(), unittest.Logger(), RunDev{ArtifactsDir: dir})
		require.Error(t, err)
		assert.True(t, IsCleanupError(err))
		assert.Contains(t, err.Error(), dir)
	})
}

func TestRunDev_Canceled(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Execute(ctx, unittest.Logger(), RunDev{ArtifactsDir: filepath.Join(dir, "artifacts")})
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, filepath.Join(dir, "artifacts", bootstrap.FilenameTemplate))
	})
}

func TestRunDev_ForeignDirectory(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		notes := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(notes, []byte("x"), 0644))

		_, err := Execute(context.Background(), unittest.Logger(), RunDev{ArtifactsDir: dir})
		require.Error(t, err)
		assert.True(t, IsCleanupError(err))
		assert.ErrorIs(t, err, ErrNotArtifactsDir)
		assert.FileExists(t, notes)
		assert.NoFileExists(t, filepath.Join(dir, bootstrap.FilenameTemplate))
	})
}

func TestRunDev_EmptyDirectory(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		result := execute(t, RunDev{ArtifactsDir: dir})
		_, ok := result.(RunResult)
		require.True(t, ok)
		assert.FileExists(t, filepath.Join(dir, bootstrap.FilenameNodeConfig))
	})
}
