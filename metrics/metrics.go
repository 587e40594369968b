package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "currency_rates"

// Metrics counts rate lookups. A nil *Metrics records nothing.
type Metrics struct {
	CacheLookupsTotal   *prometheus.CounterVec
	FetchAttemptsTotal  *prometheus.CounterVec
	StaleFallbacksTotal prometheus.Counter
	FailuresTotal       prometheus.Counter
}

func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Total number of fresh cache lookups by result",
			},
			[]string{"result"},
		),

		FetchAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fetch_attempts_total",
				Help:      "Total number of provider fetch attempts by outcome",
			},
			[]string{"outcome"},
		),

		StaleFallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stale_fallbacks_total",
				Help:      "Total number of requests answered with an expired cached rate",
			},
		),

		FailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of requests that resolved with an error",
			},
		),
	}
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}

	m.CacheLookupsTotal.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}

	m.CacheLookupsTotal.WithLabelValues("miss").Inc()
}

func (m *Metrics) FetchSucceeded() {
	if m == nil {
		return
	}

	m.FetchAttemptsTotal.WithLabelValues("success").Inc()
}

// FetchFailed records a failed attempt labeled with the error kind.
func (m *Metrics) FetchFailed(kind string) {
	if m == nil {
		return
	}

	m.FetchAttemptsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) StaleFallback() {
	if m == nil {
		return
	}

	m.StaleFallbacksTotal.Inc()
}

func (m *Metrics) Failure() {
	if m == nil {
		return
	}

	m.FailuresTotal.Inc()
}
