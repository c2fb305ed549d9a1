package transport

import (
	"errors"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "rag_session"

type metrics struct {
	refreshes     *prometheus.CounterVec
	replays       prometheus.Counter
	invalidations *prometheus.CounterVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	ret := &metrics{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_total",
			Help:      "Refresh calls by outcome.",
		}, []string{"outcome"}),
		replays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "replay_total",
			Help:      "Requests replayed after a 401.",
		}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "invalidation_total",
			Help:      "Session invalidations by reason.",
		}, []string{"reason"}),
	}
	if registerer == nil {
		return ret
	}
	ret.refreshes = register(registerer, ret.refreshes)
	ret.replays = register(registerer, ret.replays)
	ret.invalidations = register(registerer, ret.invalidations)
	return ret
}

// register reuses an already registered collector so several clients can share a registry.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		var registered prometheus.AlreadyRegisteredError
		if errors.As(err, &registered) {
			if existing, ok := registered.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return collector
}
