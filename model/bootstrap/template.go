package bootstrap

import (
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/onflow/flow-bootstrap/utils/io"
)

// Template is the network-wide part of the configuration shared by all
// nodes of a deployment. It is generated once and distributed to every
// participant before any node generates its keys.
type Template struct {
	ValidatorsCount uint            `toml:"validators_count" validate:"gte=1"`
	GeneratedAt     time.Time       `toml:"generated_at"`
	Hash            string          `toml:"hash" validate:"required,hexadecimal,len=64"`
	Consensus       ConsensusConfig `toml:"consensus"`
}

// templateParams is the hashed content of a template. The generation time
// is left out so that regenerating a template with the same parameters
// yields the same hash.
type templateParams struct {
	ValidatorsCount uint            `toml:"validators_count"`
	Consensus       ConsensusConfig `toml:"consensus"`
}

// NewTemplate returns a hashed template for the given validators count and
// consensus parameters.
func NewTemplate(validatorsCount uint, consensus ConsensusConfig, generatedAt time.Time) (*Template, error) {
	if validatorsCount < 1 {
		return nil, NewInvalidConfigErrorf("validators count must be at least 1, got %d", validatorsCount)
	}
	hash, err := TemplateHash(validatorsCount, consensus)
	if err != nil {
		return nil, err
	}
	return &Template{
		ValidatorsCount: validatorsCount,
		GeneratedAt:     generatedAt.UTC().Truncate(time.Second),
		Hash:            hash,
		Consensus:       consensus,
	}, nil
}

// TemplateHash returns the hex-encoded SHA3-256 hash of the canonical TOML
// encoding of the template parameters.
func TemplateHash(validatorsCount uint, consensus ConsensusConfig) (string, error) {
	data, err := io.EncodeTOML(templateParams{
		ValidatorsCount: validatorsCount,
		Consensus:       consensus,
	})
	if err != nil {
		return "", fmt.Errorf("could not encode template parameters: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Validate checks the template parameters and that Hash matches them.
func (t *Template) Validate(path string) error {
	return validateStruct(path, t, func() error {
		hash, err := TemplateHash(t.ValidatorsCount, t.Consensus)
		if err != nil {
			return err
		}
		if hash != t.Hash {
			return fmt.Errorf("template hash %s does not match its content (expected %s)", t.Hash, hash)
		}
		return nil
	})
}

// LoadTemplate reads and validates the template at path.
func LoadTemplate(path string) (*Template, error) {
	var template Template
	err := readDocument(path, &template)
	if err != nil {
		return nil, err
	}
	err = template.Validate(path)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// WriteTemplate writes the template to path, replacing any existing file.
func WriteTemplate(path string, template *Template) error {
	return io.WriteTOML(path, template)
}
