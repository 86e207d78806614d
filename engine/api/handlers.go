package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/storage"
)

// Health statuses reported by the healthcheck endpoint.
const (
	HealthOK       = "ok"
	HealthStopping = "stopping"
)

// HealthCheck is the body of the healthcheck endpoint.
type HealthCheck struct {
	Status string `json:"status"`
}

// ValidatorInfo is one entry of the validators endpoint.
type ValidatorInfo struct {
	Index        int    `json:"index"`
	ConsensusKey string `json:"consensus_key"`
	ServiceKey   string `json:"service_key"`
}

// PeerInfo is a peer of the node's connect list.
type PeerInfo struct {
	Address      string `json:"address"`
	ConsensusKey string `json:"consensus_key"`
}

// NodeInfo is the body of the private info endpoint.
type NodeInfo struct {
	ConsensusKey    string     `json:"consensus_key"`
	ServiceKey      string     `json:"service_key"`
	ValidatorIndex  int        `json:"validator_index"`
	ListenAddress   string     `json:"listen_address"`
	ExternalAddress string     `json:"external_address"`
	Peers           []PeerInfo `json:"peers"`
	Starts          uint64     `json:"starts"`
	LastStartedAt   time.Time  `json:"last_started_at"`
	CachedMessages  uint64     `json:"cached_messages"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Handlers serves the API endpoints of one node.
type Handlers struct {
	log   zerolog.Logger
	conf  *bootstrap.NodeConfig
	meta  storage.NodeMeta
	cache storage.ConsensusCache
	// stopping is set once the node begins to shut down
	stopping *atomic.Bool
}

func NewHandlers(log zerolog.Logger, conf *bootstrap.NodeConfig, meta storage.NodeMeta, cache storage.ConsensusCache) *Handlers {
	return &Handlers{
		log:      log,
		conf:     conf,
		meta:     meta,
		cache:    cache,
		stopping: atomic.NewBool(false),
	}
}

// SetStopping makes the healthcheck report that the node is shutting down.
func (h *Handlers) SetStopping() {
	h.stopping.Store(true)
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	if h.stopping.Load() {
		h.writeJSON(w, http.StatusServiceUnavailable, HealthCheck{Status: HealthStopping})
		return
	}
	h.writeJSON(w, http.StatusOK, HealthCheck{Status: HealthOK})
}

func (h *Handlers) Validators(w http.ResponseWriter, _ *http.Request) {
	validators := make([]ValidatorInfo, 0, len(h.conf.Validators))
	for i, v := range h.conf.Validators {
		validators = append(validators, ValidatorInfo{
			Index:        i,
			ConsensusKey: v.ConsensusKey.String(),
			ServiceKey:   v.ServiceKey.String(),
		})
	}
	h.writeJSON(w, http.StatusOK, validators)
}

func (h *Handlers) Info(w http.ResponseWriter, _ *http.Request) {
	meta, err := h.meta.Retrieve()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	cached, err := h.cache.Count()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	peers := make([]PeerInfo, 0, len(h.conf.ConnectList))
	for _, peer := range h.conf.ConnectList {
		peers = append(peers, PeerInfo{Address: peer.Address, ConsensusKey: peer.PublicKey.String()})
	}

	h.writeJSON(w, http.StatusOK, NodeInfo{
		ConsensusKey:    h.conf.ConsensusPublicKey.String(),
		ServiceKey:      h.conf.ServicePublicKey.String(),
		ValidatorIndex:  h.conf.ValidatorIndex(),
		ListenAddress:   h.conf.ListenAddress,
		ExternalAddress: h.conf.ExternalAddress,
		Peers:           peers,
		Starts:          meta.Starts,
		LastStartedAt:   meta.LastStartedAt,
		CachedMessages:  cached,
	})
}

func (h *Handlers) writeError(w http.ResponseWriter, code int, err error) {
	h.log.Error().Err(err).Msg("api request failed")
	h.writeJSON(w, code, errorResponse{Message: err.Error()})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to write api response")
	}
}
