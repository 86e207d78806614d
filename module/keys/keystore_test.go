package keys_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/module/keys"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

func literal(pass string) keys.PassphraseFunc {
	return func() (string, error) { return pass, nil }
}

func mustNotAsk(t *testing.T) keys.PassphraseFunc {
	return func() (string, error) {
		t.Fatal("passphrase must not be requested for an unprotected key")
		return "", nil
	}
}

func TestGenerateMaterial(t *testing.T) {
	first, err := keys.GenerateMaterial()
	require.NoError(t, err)
	second, err := keys.GenerateMaterial()
	require.NoError(t, err)

	assert.Equal(t, encodable.ConsensusKeyAlgorithm, first.Consensus.Algorithm())
	assert.Equal(t, encodable.ServiceKeyAlgorithm, first.Service.Algorithm())
	assert.False(t, first.Consensus.Equals(second.Consensus))
	assert.False(t, first.Service.Equals(second.Service))
}

func TestKeyFile_Unprotected(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		key, err := keys.GenerateKey(encodable.ConsensusKeyAlgorithm)
		require.NoError(t, err)
		path := filepath.Join(dir, bootstrap.FilenameConsensusKey)

		require.NoError(t, keys.WriteKeyFile(path, key, false, ""))

		encrypted, err := keys.IsKeyFileEncrypted(path)
		require.NoError(t, err)
		assert.False(t, encrypted)

		read, err := keys.ReadKeyFile(path, encodable.ConsensusKeyAlgorithm, mustNotAsk(t))
		require.NoError(t, err)
		assert.True(t, read.Equals(key))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}

func TestKeyFile_Protected(t *testing.T) {
	defer keys.SetScryptWorkFactor(10)()

	unittest.RunWithTempDir(t, func(dir string) {
		key, err := keys.GenerateKey(encodable.ServiceKeyAlgorithm)
		require.NoError(t, err)
		path := filepath.Join(dir, bootstrap.FilenameServiceKey)

		require.NoError(t, keys.WriteKeyFile(path, key, true, "correct horse"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), encodable.PrivateKeyHex(key)))
		assert.Contains(t, string(data), "BEGIN AGE ENCRYPTED FILE")

		encrypted, err := keys.IsKeyFileEncrypted(path)
		require.NoError(t, err)
		assert.True(t, encrypted)

		read, err := keys.ReadKeyFile(path, encodable.ServiceKeyAlgorithm, literal("correct horse"))
		require.NoError(t, err)
		assert.True(t, read.Equals(key))

		t.Run("wrong passphrase", func(t *testing.T) {
			_, err := keys.ReadKeyFile(path, encodable.ServiceKeyAlgorithm, literal("battery staple"))
			assert.Error(t, err)
		})

		t.Run("passphrase source failure", func(t *testing.T) {
			failure := errors.New("no tty")
			_, err := keys.ReadKeyFile(path, encodable.ServiceKeyAlgorithm, func() (string, error) { return "", failure })
			assert.ErrorIs(t, err, failure)
		})
	})
}

func TestKeyFile_EmptyPassphraseRejected(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		key, err := keys.GenerateKey(encodable.ConsensusKeyAlgorithm)
		require.NoError(t, err)
		err = keys.WriteKeyFile(filepath.Join(dir, "k.toml"), key, true, "")
		assert.Error(t, err)
	})
}

func TestReadKeyFile_WrongAlgorithm(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		key, err := keys.GenerateKey(encodable.ConsensusKeyAlgorithm)
		require.NoError(t, err)
		path := filepath.Join(dir, "k.toml")
		require.NoError(t, keys.WriteKeyFile(path, key, false, ""))

		_, err = keys.ReadKeyFile(path, encodable.ServiceKeyAlgorithm, mustNotAsk(t))
		require.Error(t, err)
		assert.True(t, bootstrap.IsInvalidConfigError(err))
	})
}

func TestReadKeyFile_Corrupt(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "k.toml")
		require.NoError(t, os.WriteFile(path, []byte("algorithm = \n"), 0600))

		_, err := keys.ReadKeyFile(path, encodable.ConsensusKeyAlgorithm, mustNotAsk(t))
		require.Error(t, err)
		assert.True(t, bootstrap.IsParseError(err))
	})
}

func TestReadKeyFile_Missing(t *testing.T) {
	_, err := keys.ReadKeyFile(filepath.Join(t.TempDir(), "absent.toml"), encodable.ConsensusKeyAlgorithm, mustNotAsk(t))
	require.Error(t, err)
	assert.True(t, bootstrap.IsNotExist(err))
}
