package command

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/module/keys"
)

// GenerateConfig generates the key material of one node and writes its
// public and private configs.
type GenerateConfig struct {
	TemplatePath string
	OutputDir    string
	// PeerAddress is the address other nodes use to connect to this node.
	PeerAddress string
	// ListenAddress defaults to PeerAddress.
	ListenAddress string
	// NoPassword stores both keys unprotected. The password sources are
	// ignored in that case.
	NoPassword bool
	// ConsensusKeyPass and ServiceKeyPass default to an interactive prompt.
	ConsensusKeyPass keys.PasswordSource
	ServiceKeyPass   keys.PasswordSource
}

func (GenerateConfig) Name() string { return "generate-config" }

func (c GenerateConfig) execute(_ context.Context, log zerolog.Logger) (Result, error) {
	template, err := bootstrap.LoadTemplate(c.TemplatePath)
	if err != nil {
		return nil, err
	}

	err = bootstrap.ValidateAddress("peer address", c.PeerAddress)
	if err != nil {
		return nil, err
	}
	listenAddress := c.ListenAddress
	if listenAddress == "" {
		listenAddress = c.PeerAddress
	}
	err = bootstrap.ValidateAddress("listen address", listenAddress)
	if err != nil {
		return nil, err
	}

	consensusPass, err := c.passphrase(c.ConsensusKeyPass, "consensus")
	if err != nil {
		return nil, err
	}
	servicePass, err := c.passphrase(c.ServiceKeyPass, "service")
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(c.OutputDir, 0755)
	if err != nil {
		return nil, err
	}

	material, err := keys.GenerateMaterial()
	if err != nil {
		return nil, err
	}

	consensusKeyPath := filepath.Join(c.OutputDir, bootstrap.FilenameConsensusKey)
	err = keys.WriteKeyFile(consensusKeyPath, material.Consensus, !c.NoPassword, consensusPass)
	if err != nil {
		return nil, err
	}
	serviceKeyPath := filepath.Join(c.OutputDir, bootstrap.FilenameServiceKey)
	err = keys.WriteKeyFile(serviceKeyPath, material.Service, !c.NoPassword, servicePass)
	if err != nil {
		return nil, err
	}
	log.Info().
		Bool("protected", !c.NoPassword).
		Str("consensus_key", encodable.KeyHex(material.Consensus.PublicKey())).
		Str("service_key", encodable.KeyHex(material.Service.PublicKey())).
		Msg("generated node keys")

	consensusPub := encodable.ConsensusPubKey{PublicKey: material.Consensus.PublicKey()}
	servicePub := encodable.ServicePubKey{PublicKey: material.Service.PublicKey()}

	pub := &bootstrap.NodeInfoPub{
		Address:         c.PeerAddress,
		ConsensusKey:    consensusPub,
		ServiceKey:      servicePub,
		TemplateHash:    template.Hash,
		ValidatorsCount: template.ValidatorsCount,
		Consensus:       template.Consensus,
	}
	pubPath := filepath.Join(c.OutputDir, bootstrap.FilenamePublicConfig)
	err = bootstrap.WriteNodeInfoPub(pubPath, pub)
	if err != nil {
		return nil, err
	}

	// key files live next to the private config
	priv := &bootstrap.NodeInfoPriv{
		ListenAddress:      listenAddress,
		ExternalAddress:    c.PeerAddress,
		ConsensusPublicKey: consensusPub,
		ConsensusSecretKey: bootstrap.FilenameConsensusKey,
		ServicePublicKey:   servicePub,
		ServiceSecretKey:   bootstrap.FilenameServiceKey,
	}
	privPath := filepath.Join(c.OutputDir, bootstrap.FilenamePrivateConfig)
	err = bootstrap.WriteNodeInfoPriv(privPath, priv)
	if err != nil {
		return nil, err
	}

	log.Info().Str("public", pubPath).Str("private", privPath).Msg("wrote node configs")

	return GenerateConfigResult{
		PublicConfigPath:  pubPath,
		PrivateConfigPath: privPath,
	}, nil
}

func (c GenerateConfig) passphrase(src keys.PasswordSource, keyName string) (string, error) {
	if c.NoPassword {
		return "", nil
	}
	if src == nil {
		src = keys.PromptPassword{}
	}
	pass, err := keys.ResolvePassword(src, keyName, keys.PasswordModeNew)
	if err != nil {
		return "", err
	}
	if pass == "" {
		return "", bootstrap.NewInvalidConfigErrorf("empty passphrase for the %s key, use the no-password option to store keys unprotected", keyName)
	}
	return pass, nil
}
