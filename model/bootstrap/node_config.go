package bootstrap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/onflow/flow-bootstrap/model/encodable"
	"github.com/onflow/flow-bootstrap/utils/io"
)

// Validator is one entry of the canonically ordered validator list. Its
// position in NodeConfig.Validators is the validator's index.
type Validator struct {
	ConsensusKey encodable.ConsensusPubKey `toml:"consensus_key" validate:"-"`
	ServiceKey   encodable.ServicePubKey   `toml:"service_key" validate:"-"`
}

// ConnectInfo describes a peer the node connects to on start.
type ConnectInfo struct {
	Address   string                    `toml:"address" validate:"required,socket_addr"`
	PublicKey encodable.ConsensusPubKey `toml:"public_key" validate:"-"`
}

// NodeAPIConfig configures the HTTP API of a node. An empty address means
// that side of the API is not exposed.
type NodeAPIConfig struct {
	PublicAPIAddress   string `toml:"public_api_address,omitempty" validate:"omitempty,socket_addr"`
	PrivateAPIAddress  string `toml:"private_api_address,omitempty" validate:"omitempty,socket_addr"`
	PublicAllowOrigin  string `toml:"public_allow_origin,omitempty"`
	PrivateAllowOrigin string `toml:"private_allow_origin,omitempty"`
}

// NodeConfig is the finalized configuration the node is started with.
// Key paths are relative to the directory of the document unless absolute.
type NodeConfig struct {
	ListenAddress      string                    `toml:"listen_address" validate:"required,socket_addr"`
	ExternalAddress    string                    `toml:"external_address" validate:"required,socket_addr"`
	ConsensusPublicKey encodable.ConsensusPubKey `toml:"consensus_public_key" validate:"-"`
	ConsensusSecretKey string                    `toml:"consensus_secret_key" validate:"required"`
	ServicePublicKey   encodable.ServicePubKey   `toml:"service_public_key" validate:"-"`
	ServiceSecretKey   string                    `toml:"service_secret_key" validate:"required"`
	Consensus          ConsensusConfig           `toml:"consensus"`
	API                NodeAPIConfig             `toml:"api"`
	Validators         []Validator               `toml:"validators" validate:"min=1"`
	ConnectList        []ConnectInfo             `toml:"connect_list" validate:"dive"`
}

// Validate checks the document rules and that the node is one of the validators.
func (conf *NodeConfig) Validate(path string) error {
	return validateStruct(path, conf,
		func() error {
			if conf.ConsensusPublicKey.PublicKey == nil {
				return fmt.Errorf("consensus_public_key is required")
			}
			if conf.ValidatorIndex() < 0 {
				return fmt.Errorf("consensus_public_key %s is not among the validators", conf.ConsensusPublicKey)
			}
			return nil
		},
		func() error {
			if conf.ServicePublicKey.PublicKey == nil {
				return fmt.Errorf("service_public_key is required")
			}
			return nil
		},
		func() error {
			seen := make(map[string]struct{}, len(conf.Validators))
			for i, v := range conf.Validators {
				if v.ConsensusKey.PublicKey == nil || v.ServiceKey.PublicKey == nil {
					return fmt.Errorf("validator %d is missing a key", i)
				}
				key := v.ConsensusKey.String()
				if _, ok := seen[key]; ok {
					return fmt.Errorf("validator %d has duplicate consensus key %s", i, key)
				}
				seen[key] = struct{}{}
			}
			if !IsValidatorListCanonical(conf.Validators) {
				return fmt.Errorf("validators are not in canonical order")
			}
			return nil
		},
	)
}

// ValidatorIndex returns the index of the node in the validator list, or -1.
func (conf *NodeConfig) ValidatorIndex() int {
	for i, v := range conf.Validators {
		if v.ConsensusKey.Equals(conf.ConsensusPublicKey) {
			return i
		}
	}
	return -1
}

// LoadNodeConfig reads and validates the node config at path.
func LoadNodeConfig(path string) (*NodeConfig, error) {
	var conf NodeConfig
	err := readDocument(path, &conf)
	if err != nil {
		return nil, err
	}
	err = conf.Validate(path)
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

// WriteNodeConfig writes the node config to path.
func WriteNodeConfig(path string, conf *NodeConfig) error {
	return io.WriteTOML(path, conf)
}

// ParseAllowOrigin splits a comma-separated allow-origin string. An empty
// string yields no origins, "*" allows any origin.
func ParseAllowOrigin(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// CanonicalValidatorOrder reports whether validator a sorts before b. The
// order is the lexicographic order of the hex-encoded consensus public keys.
func CanonicalValidatorOrder(a, b Validator) bool {
	return a.ConsensusKey.String() < b.ConsensusKey.String()
}

// IsValidatorListCanonical returns true if validators are strictly ordered
// by CanonicalValidatorOrder, which also rules out duplicates.
func IsValidatorListCanonical(validators []Validator) bool {
	for i := 1; i < len(validators); i++ {
		if !CanonicalValidatorOrder(validators[i-1], validators[i]) {
			return false
		}
	}
	return true
}

// SortNodeInfos returns a copy of infos in canonical validator order. The
// input slice is not modified.
func SortNodeInfos(infos []NodeInfoPub) []NodeInfoPub {
	sorted := make([]NodeInfoPub, len(infos))
	copy(sorted, infos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ConsensusKey.String() < sorted[j].ConsensusKey.String()
	})
	return sorted
}
