package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NodeCollector holds the metrics of a running node. Each collector owns
// its registry, so several nodes may live in one process.
type NodeCollector struct {
	registry        *prometheus.Registry
	info            *prometheus.GaugeVec
	validatorIndex  prometheus.Gauge
	validatorsCount prometheus.Gauge
	starts          prometheus.Gauge
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewNodeCollector() *NodeCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r := NewRegisterer(registry)

	return &NodeCollector{
		registry: registry,
		info: r.RegisterNewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespaceNode,
			Name:      "info",
			Help:      "reports the identity of the node, always 1",
		}, []string{LabelConsensusKey, LabelAddress}),
		validatorIndex: r.RegisterNewGauge(prometheus.GaugeOpts{
			Namespace: namespaceNode,
			Name:      "validator_index",
			Help:      "index of the node in the validator list",
		}),
		validatorsCount: r.RegisterNewGauge(prometheus.GaugeOpts{
			Namespace: namespaceNode,
			Name:      "validators_count",
			Help:      "number of validators of the deployment",
		}),
		starts: r.RegisterNewGauge(prometheus.GaugeOpts{
			Namespace: namespaceNode,
			Name:      "starts_total",
			Help:      "number of times the node was started on its storage",
		}),
		requests: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceNode,
			Subsystem: subsystemAPI,
			Name:      "requests_total",
			Help:      "number of handled API requests",
		}, []string{LabelAPI, LabelRoute, LabelMethod, LabelCode}),
		requestDuration: r.RegisterNewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceNode,
			Subsystem: subsystemAPI,
			Name:      "request_duration_seconds",
			Help:      "latency of handled API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelAPI, LabelRoute}),
	}
}

// NodeStarted records the identity of the node and its start count.
func (c *NodeCollector) NodeStarted(consensusKey string, address string, validatorIndex int, validatorsCount int, starts uint64) {
	c.info.With(prometheus.Labels{LabelConsensusKey: consensusKey, LabelAddress: address}).Set(1)
	c.validatorIndex.Set(float64(validatorIndex))
	c.validatorsCount.Set(float64(validatorsCount))
	c.starts.Set(float64(starts))
}

// APIRequest records a handled request.
func (c *NodeCollector) APIRequest(api string, route string, method string, code int, duration time.Duration) {
	c.requests.With(prometheus.Labels{
		LabelAPI:    api,
		LabelRoute:  route,
		LabelMethod: method,
		LabelCode:   strconv.Itoa(code),
	}).Inc()
	c.requestDuration.With(prometheus.Labels{LabelAPI: api, LabelRoute: route}).Observe(duration.Seconds())
}

// Handler serves the metrics of the collector in the prometheus exposition format.
func (c *NodeCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (c *NodeCollector) Gatherer() prometheus.Gatherer {
	return c.registry
}
