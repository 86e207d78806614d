package metrics

const (
	namespaceNode = "node"
	subsystemAPI  = "api"
)

const (
	LabelAPI          = "api"
	LabelRoute        = "route"
	LabelMethod       = "method"
	LabelCode         = "code"
	LabelConsensusKey = "consensuskey"
	LabelAddress      = "address"
)

// API sides.
const (
	APIPublic  = "public"
	APIPrivate = "private"
)
