package bootstrap

// ConsensusConfig holds the network-wide consensus parameters shared by every
// node of a deployment. Timeouts are in milliseconds.
type ConsensusConfig struct {
	// RoundTimeout is the interval between consensus rounds.
	RoundTimeout uint64 `toml:"round_timeout" validate:"gt=0"`
	// StatusTimeout is the period of broadcasting the node's status to peers.
	StatusTimeout uint64 `toml:"status_timeout" validate:"gt=0"`
	// PeersTimeout is the period of exchanging peer lists.
	PeersTimeout uint64 `toml:"peers_timeout" validate:"gt=0"`
	// TxsBlockLimit is the maximum number of transactions per block.
	TxsBlockLimit uint32 `toml:"txs_block_limit" validate:"gt=0"`
	// MaxMessageLen is the maximum length of a consensus message in bytes.
	MaxMessageLen uint32 `toml:"max_message_len" validate:"gt=0"`
	// MinProposeTimeout and MaxProposeTimeout bound the adaptive propose timeout.
	MinProposeTimeout uint64 `toml:"min_propose_timeout" validate:"gt=0,ltefield=MaxProposeTimeout,ltfield=RoundTimeout"`
	MaxProposeTimeout uint64 `toml:"max_propose_timeout" validate:"gt=0,ltfield=RoundTimeout"`
	// ProposeTimeoutThreshold is the pool size above which the minimal propose timeout is used.
	ProposeTimeoutThreshold uint32 `toml:"propose_timeout_threshold" validate:"gt=0"`
}

// DefaultConsensusConfig returns the consensus parameters used when a template
// is generated without explicit parameters.
func DefaultConsensusConfig() ConsensusConfig {
	return ConsensusConfig{
		RoundTimeout:            3000,
		StatusTimeout:           5000,
		PeersTimeout:            10000,
		TxsBlockLimit:           1000,
		MaxMessageLen:           1024 * 1024,
		MinProposeTimeout:       10,
		MaxProposeTimeout:       200,
		ProposeTimeoutThreshold: 500,
	}
}

// LoadConsensusConfig reads consensus parameters from the TOML document at path.
// Fields missing from the document keep their default values.
func LoadConsensusConfig(path string) (ConsensusConfig, error) {
	conf := DefaultConsensusConfig()
	err := readDocument(path, &conf)
	if err != nil {
		return ConsensusConfig{}, err
	}
	err = validateStruct(path, conf)
	if err != nil {
		return ConsensusConfig{}, err
	}
	return conf, nil
}
