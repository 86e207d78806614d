package command

import (
	"context"
	"fmt"

	"github.com/onflow/flow-go/crypto"
	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/module/keys"
)

// Run loads a finalized node config and unlocks its keys, preparing
// everything the node needs to start.
type Run struct {
	NodeConfigPath string
	DBPath         string
	// PublicAPIAddress and PrivateAPIAddress override the addresses of the
	// node config when set.
	PublicAPIAddress  string
	PrivateAPIAddress string
	// ConsensusKeyPass and ServiceKeyPass default to the passphrase
	// environment variables when they are set and to a prompt otherwise.
	// They are only consulted for protected keys.
	ConsensusKeyPass keys.PasswordSource
	ServiceKeyPass   keys.PasswordSource
}

// NodeRunConfig is the fully loaded configuration the node runtime is
// started with.
type NodeRunConfig struct {
	NodeConfig     *bootstrap.NodeConfig `json:"-"`
	NodeConfigPath string                `json:"node_config_path"`
	DBPath         string                `json:"db_path"`
	ConsensusKey   crypto.PrivateKey     `json:"-"`
	ServiceKey     crypto.PrivateKey     `json:"-"`
}

// ValidatorIndex returns the index of the node in the validator list.
func (c *NodeRunConfig) ValidatorIndex() int {
	return c.NodeConfig.ValidatorIndex()
}

func (Run) Name() string { return "run" }

func (c Run) execute(_ context.Context, log zerolog.Logger) (Result, error) {
	conf, err := bootstrap.LoadNodeConfig(c.NodeConfigPath)
	if err != nil {
		return nil, err
	}

	if c.PublicAPIAddress != "" {
		err = bootstrap.ValidateAddress("public API address", c.PublicAPIAddress)
		if err != nil {
			return nil, err
		}
		conf.API.PublicAPIAddress = c.PublicAPIAddress
	}
	if c.PrivateAPIAddress != "" {
		err = bootstrap.ValidateAddress("private API address", c.PrivateAPIAddress)
		if err != nil {
			return nil, err
		}
		conf.API.PrivateAPIAddress = c.PrivateAPIAddress
	}

	consensusKey, err := loadNodeKey(
		bootstrap.ResolvePath(c.NodeConfigPath, conf.ConsensusSecretKey),
		encodable.ConsensusKeyAlgorithm,
		conf.ConsensusPublicKey.PublicKey,
		"consensus",
		passwordSourceOrDefault(c.ConsensusKeyPass, keys.EnvConsensusPassword),
	)
	if err != nil {
		return nil, err
	}
	serviceKey, err := loadNodeKey(
		bootstrap.ResolvePath(c.NodeConfigPath, conf.ServiceSecretKey),
		encodable.ServiceKeyAlgorithm,
		conf.ServicePublicKey.PublicKey,
		"service",
		passwordSourceOrDefault(c.ServiceKeyPass, keys.EnvServicePassword),
	)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("node_config", c.NodeConfigPath).
		Str("db", c.DBPath).
		Int("validator_index", conf.ValidatorIndex()).
		Msg("node config loaded")

	return RunResult{NodeRunConfig: &NodeRunConfig{
		NodeConfig:     conf,
		NodeConfigPath: c.NodeConfigPath,
		DBPath:         c.DBPath,
		ConsensusKey:   consensusKey,
		ServiceKey:     serviceKey,
	}}, nil
}

func passwordSourceOrDefault(src keys.PasswordSource, envName string) keys.PasswordSource {
	if src != nil {
		return src
	}
	return keys.DefaultPasswordSource(envName)
}

// loadNodeKey reads the key file at path and checks it holds the private
// key of expected.
func loadNodeKey(path string, algo crypto.SigningAlgorithm, expected crypto.PublicKey, keyName string, src keys.PasswordSource) (crypto.PrivateKey, error) {
	key, err := keys.ReadKeyFile(path, algo, func() (string, error) {
		return keys.ResolvePassword(src, keyName, keys.PasswordModeExisting)
	})
	if err != nil {
		return nil, fmt.Errorf("could not load %s key: %w", keyName, err)
	}
	if !key.PublicKey().Equals(expected) {
		return nil, bootstrap.NewInvalidConfigErrorf("%s key %s does not match the public key %s of the node config",
			keyName, path, encodable.KeyHex(expected))
	}
	return key, nil
}
