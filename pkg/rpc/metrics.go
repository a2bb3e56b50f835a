package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics recorded by a Client.
type Metrics struct {
	// Calls counts finished calls by method and outcome ("ok" or an error kind).
	Calls *prometheus.CounterVec
	// CallDuration observes call latency by method.
	CallDuration *prometheus.HistogramVec
	// AuthChallenges counts calls that needed a digest handshake.
	AuthChallenges *prometheus.CounterVec
}

// NewMetrics initializes and registers metrics on the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers metrics with a custom registry.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monero_rpc_calls_total",
				Help: "The total number of RPC calls by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		CallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "monero_rpc_call_duration_seconds",
				Help:    "Duration of RPC calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		AuthChallenges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monero_rpc_auth_challenges_total",
				Help: "The total number of digest authentication challenges answered",
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) observe(method, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(method, outcome).Inc()
	m.CallDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) observeChallenge(method string) {
	if m == nil {
		return
	}
	m.AuthChallenges.WithLabelValues(method).Inc()
}
