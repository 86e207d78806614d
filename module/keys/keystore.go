package keys

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/onflow/flow-go/crypto"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/model/encodable"
	fileio "github.com/onflow/flow-bootstrap/utils/io"
)

// seedBytes is the length of the random seed each key is generated from.
const seedBytes = 48

// scryptWorkFactor is the log2 scrypt cost used to protect key files.
var scryptWorkFactor = 18

// KeyFile is the on-disk representation of a private key.
type KeyFile struct {
	Algorithm  string `toml:"algorithm"`
	PublicKey  string `toml:"public_key"`
	Encrypted  bool   `toml:"encrypted"`
	PrivateKey string `toml:"private_key"`
}

// Material is the key material of one node.
type Material struct {
	Consensus crypto.PrivateKey
	Service   crypto.PrivateKey
}

// GenerateMaterial generates a fresh consensus and service keypair from
// independent random seeds.
func GenerateMaterial() (*Material, error) {
	consensus, err := GenerateKey(encodable.ConsensusKeyAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("could not generate consensus key: %w", err)
	}
	service, err := GenerateKey(encodable.ServiceKeyAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("could not generate service key: %w", err)
	}
	return &Material{Consensus: consensus, Service: service}, nil
}

// GenerateKey generates a private key of the given algorithm from a seed
// read from crypto/rand.
func GenerateKey(algo crypto.SigningAlgorithm) (crypto.PrivateKey, error) {
	seed := make([]byte, seedBytes)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("could not read random seed: %w", err)
	}
	key, err := crypto.GeneratePrivateKey(algo, seed)
	if err != nil {
		return nil, fmt.Errorf("could not generate %s key: %w", algo, err)
	}
	return key, nil
}

// WriteKeyFile writes key to path. When protect is set, the private key is
// encrypted with passphrase, which must not be empty.
func WriteKeyFile(path string, key crypto.PrivateKey, protect bool, passphrase string) error {
	file := KeyFile{
		Algorithm: key.Algorithm().String(),
		PublicKey: encodable.KeyHex(key.PublicKey()),
	}

	if protect {
		sealed, err := seal(encodable.PrivateKeyHex(key), passphrase)
		if err != nil {
			return fmt.Errorf("could not protect key %s: %w", path, err)
		}
		file.Encrypted = true
		file.PrivateKey = sealed
	} else {
		file.PrivateKey = encodable.PrivateKeyHex(key)
	}

	return fileio.WriteSecretTOML(path, file)
}

// PassphraseFunc returns the passphrase of a protected key. It is only
// called for encrypted key files.
type PassphraseFunc func() (string, error)

// ReadKeyFile reads the private key of the given algorithm from path. The
// stored public key must match the private key.
func ReadKeyFile(path string, algo crypto.SigningAlgorithm, passphrase PassphraseFunc) (crypto.PrivateKey, error) {
	data, err := fileio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file KeyFile
	err = fileio.DecodeTOML(data, &file)
	if err != nil {
		return nil, bootstrap.NewParseError(path, err)
	}
	if file.Algorithm != algo.String() {
		return nil, bootstrap.NewInvalidConfigErrorf("key file %s holds a %s key, expected %s", path, file.Algorithm, algo)
	}

	encoded := file.PrivateKey
	if file.Encrypted {
		pass, err := passphrase()
		if err != nil {
			return nil, fmt.Errorf("could not obtain passphrase for key %s: %w", path, err)
		}
		encoded, err = open(file.PrivateKey, pass)
		if err != nil {
			return nil, fmt.Errorf("could not decrypt key %s: %w", path, err)
		}
	}

	key, err := encodable.DecodePrivateKeyHex(algo, encoded)
	if err != nil {
		return nil, bootstrap.NewParseError(path, err)
	}
	if encodable.KeyHex(key.PublicKey()) != strings.ToLower(strings.TrimPrefix(file.PublicKey, "0x")) {
		return nil, bootstrap.NewInvalidConfigErrorf("key file %s: private key does not match public key %s", path, file.PublicKey)
	}
	return key, nil
}

// IsKeyFileEncrypted reports whether the key file at path is passphrase protected.
func IsKeyFileEncrypted(path string) (bool, error) {
	var file KeyFile
	data, err := fileio.ReadFile(path)
	if err != nil {
		return false, err
	}
	err = fileio.DecodeTOML(data, &file)
	if err != nil {
		return false, bootstrap.NewParseError(path, err)
	}
	return file.Encrypted, nil
}

func seal(plaintext string, passphrase string) (string, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return "", fmt.Errorf("invalid passphrase: %w", err)
	}
	recipient.SetWorkFactor(scryptWorkFactor)

	var buf bytes.Buffer
	armored := armor.NewWriter(&buf)
	writer, err := age.Encrypt(armored, recipient)
	if err != nil {
		return "", fmt.Errorf("could not start encryption: %w", err)
	}
	if _, err := io.WriteString(writer, plaintext); err != nil {
		return "", fmt.Errorf("could not encrypt: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("could not finish encryption: %w", err)
	}
	if err := armored.Close(); err != nil {
		return "", fmt.Errorf("could not finish armor: %w", err)
	}
	return buf.String(), nil
}

func open(ciphertext string, passphrase string) (string, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return "", fmt.Errorf("invalid passphrase: %w", err)
	}
	reader, err := age.Decrypt(armor.NewReader(strings.NewReader(ciphertext)), identity)
	if err != nil {
		return "", err
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
