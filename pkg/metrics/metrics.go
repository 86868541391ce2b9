package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Probe results
const (
	ProbeReady   = "ready"
	ProbeTimeout = "timeout"
	ProbeError   = "error"
)

// Login and signing results
const (
	ResultSuccess     = "success"
	ResultCached      = "cached"
	ResultError       = "error"
	ResultUnsupported = "unsupported"
)

// Signing kinds
const (
	KindTransaction = "transaction"
	KindArbitrary   = "arbitrary"
)

// Metrics holds the Prometheus collectors for one or more authenticators
// A nil *Metrics is valid and records nothing
type Metrics struct {
	ProbeTotal    *prometheus.CounterVec
	ProbeDuration prometheus.Histogram
	LoginTotal    *prometheus.CounterVec
	SignTotal     *prometheus.CounterVec

	registerer prometheus.Registerer
}

// New creates the collectors and registers them with reg
// A nil reg falls back to prometheus.DefaultRegisterer
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ProbeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lynx_probe_total",
			Help: "Wallet readiness probes by result",
		}, []string{"result"}),
		ProbeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lynx_probe_duration_seconds",
			Help:    "Time until the wallet readiness probe resolved",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 4, 5},
		}),
		LoginTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lynx_login_total",
			Help: "Login requests by result",
		}, []string{"result"}),
		SignTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lynx_sign_total",
			Help: "Signing requests by kind and result",
		}, []string{"kind", "result"}),
		registerer: reg,
	}

	registered := make([]prometheus.Collector, 0, len(m.collectors()))
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			for _, done := range registered {
				reg.Unregister(done)
			}
			return nil, err
		}
		registered = append(registered, c)
	}

	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ProbeTotal,
		m.ProbeDuration,
		m.LoginTotal,
		m.SignTotal,
	}
}

// Unregister removes all collectors from the registerer
func (m *Metrics) Unregister() {
	if m == nil {
		return
	}
	for _, c := range m.collectors() {
		m.registerer.Unregister(c)
	}
}

// ObserveProbe records a resolved readiness probe
func (m *Metrics) ObserveProbe(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProbeTotal.WithLabelValues(result).Inc()
	m.ProbeDuration.Observe(elapsed.Seconds())
}

// ObserveLogin records a login outcome
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginTotal.WithLabelValues(result).Inc()
}

// ObserveSign records a signing outcome
func (m *Metrics) ObserveSign(kind, result string) {
	if m == nil {
		return
	}
	m.SignTotal.WithLabelValues(kind, result).Inc()
}
