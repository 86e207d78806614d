package bootstrap

import (
	"fmt"
	"path/filepath"

	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/utils/io"
)

// NodeInfoPub is the public part of a node's generated configuration. It is
// safe to share and is exchanged out-of-band between all participants, each
// of whom merges the full set into their own node config.
type NodeInfoPub struct {
	// Address is the address peers use to connect to the node.
	Address      string                    `toml:"address" validate:"required,socket_addr"`
	ConsensusKey encodable.ConsensusPubKey `toml:"consensus_key" validate:"-"`
	ServiceKey   encodable.ServicePubKey   `toml:"service_key" validate:"-"`
	// TemplateHash identifies the template the node config was generated from.
	TemplateHash    string          `toml:"template_hash" validate:"required,hexadecimal,len=64"`
	ValidatorsCount uint            `toml:"validators_count" validate:"gte=1"`
	Consensus       ConsensusConfig `toml:"consensus"`
}

// Validate checks the document rules, that both keys are present and that
// the template parameters carried along hash to TemplateHash.
func (info *NodeInfoPub) Validate(path string) error {
	return validateStruct(path, info,
		func() error {
			if info.ConsensusKey.PublicKey == nil {
				return fmt.Errorf("consensus_key is required")
			}
			return nil
		},
		func() error {
			if info.ServiceKey.PublicKey == nil {
				return fmt.Errorf("service_key is required")
			}
			return nil
		},
		func() error {
			hash, err := TemplateHash(info.ValidatorsCount, info.Consensus)
			if err != nil {
				return err
			}
			if hash != info.TemplateHash {
				return fmt.Errorf("template parameters do not match template_hash %s", info.TemplateHash)
			}
			return nil
		},
	)
}

// LoadNodeInfoPub reads and validates the public node config at path.
func LoadNodeInfoPub(path string) (*NodeInfoPub, error) {
	var info NodeInfoPub
	err := readDocument(path, &info)
	if err != nil {
		return nil, err
	}
	err = info.Validate(path)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// WriteNodeInfoPub writes the public node config to path.
func WriteNodeInfoPub(path string, info *NodeInfoPub) error {
	return io.WriteTOML(path, info)
}

// NodeInfoPriv is the secret part of a node's generated configuration. It
// never leaves the node. Key paths are relative to the directory of the
// document unless absolute.
type NodeInfoPriv struct {
	ListenAddress      string                    `toml:"listen_address" validate:"required,socket_addr"`
	ExternalAddress    string                    `toml:"external_address" validate:"required,socket_addr"`
	ConsensusPublicKey encodable.ConsensusPubKey `toml:"consensus_public_key" validate:"-"`
	ConsensusSecretKey string                    `toml:"consensus_secret_key" validate:"required"`
	ServicePublicKey   encodable.ServicePubKey   `toml:"service_public_key" validate:"-"`
	ServiceSecretKey   string                    `toml:"service_secret_key" validate:"required"`
}

func (info *NodeInfoPriv) Validate(path string) error {
	return validateStruct(path, info,
		func() error {
			if info.ConsensusPublicKey.PublicKey == nil {
				return fmt.Errorf("consensus_public_key is required")
			}
			return nil
		},
		func() error {
			if info.ServicePublicKey.PublicKey == nil {
				return fmt.Errorf("service_public_key is required")
			}
			return nil
		},
	)
}

// LoadNodeInfoPriv reads and validates the private node config at path.
func LoadNodeInfoPriv(path string) (*NodeInfoPriv, error) {
	var info NodeInfoPriv
	err := readDocument(path, &info)
	if err != nil {
		return nil, err
	}
	err = info.Validate(path)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// WriteNodeInfoPriv writes the private node config to path with owner-only permissions.
func WriteNodeInfoPriv(path string, info *NodeInfoPriv) error {
	return io.WriteSecretTOML(path, info)
}

// ResolvePath returns path interpreted relative to the directory of the
// document at docPath. Absolute paths are returned unchanged.
func ResolvePath(docPath, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(docPath), path)
}

// RelativePath returns target expressed relative to the directory of the
// document at docPath, falling back to the absolute path of target.
func RelativePath(docPath, target string) (string, error) {
	absDoc, err := filepath.Abs(filepath.Dir(docPath))
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", docPath, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", target, err)
	}
	rel, err := filepath.Rel(absDoc, absTarget)
	if err != nil {
		return absTarget, nil
	}
	return rel, nil
}
