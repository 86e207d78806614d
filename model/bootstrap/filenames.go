package bootstrap

// Canonical file names of bootstrapping artifacts.
const (
	// FilenameTemplate is the default name of the shared template.
	FilenameTemplate = "template.toml"
	// FilenamePublicConfig is the public half of a node's generated config.
	FilenamePublicConfig = "pub.toml"
	// FilenamePrivateConfig is the secret half of a node's generated config.
	FilenamePrivateConfig = "sec.toml"
	// FilenameConsensusKey holds the node's consensus private key.
	FilenameConsensusKey = "consensus.key.toml"
	// FilenameServiceKey holds the node's service private key.
	FilenameServiceKey = "service.key.toml"
	// FilenameNodeConfig is the default name of the finalized node config.
	FilenameNodeConfig = "node.toml"
	// DirnameDB is the default name of the node storage directory.
	DirnameDB = "db"
)
