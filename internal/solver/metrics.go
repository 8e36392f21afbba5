package solver

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the solver's Prometheus collectors. They are registered
// into a private registry per Solver rather than the global default
// registry, since a process may run more than one Solver concurrently
// (spec.md section 5's cooperative-cancellation note implies the solver
// is meant to be embeddable); the CLI only renders them when --verbose
// is passed, never over an HTTP endpoint.
type metrics struct {
	registry     *prometheus.Registry
	conflicts    prometheus.Counter
	decisions    prometheus.Counter
	propagations prometheus.Counter
	decisionLevel prometheus.Gauge
	conflictRateEMA prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	m := &metrics{
		registry: reg,
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cdcl_conflicts_total",
			Help: "Number of conflicts encountered during search.",
		}),
		decisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cdcl_decisions_total",
			Help: "Number of branching decisions made during search.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cdcl_propagations_total",
			Help: "Number of literals assigned by unit propagation.",
		}),
		decisionLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cdcl_decision_level",
			Help: "Current decision level.",
		}),
		conflictRateEMA: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cdcl_conflict_rate_ema",
			Help: "Exponential moving average of conflicts per decision.",
		}),
	}
	reg.MustRegister(m.conflicts, m.decisions, m.propagations, m.decisionLevel, m.conflictRateEMA)
	return m
}

// ema is an exponential moving average, used to smooth the
// conflict-rate gauge the way the teacher's sat/avg.go smooths its own
// search statistics.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) *ema {
	return &ema{decay: decay}
}

func (e *ema) Add(x float64) {
	if !e.init {
		e.value = x
		e.init = true
		return
	}
	e.value = e.decay*e.value + (1-e.decay)*x
}

func (e *ema) Val() float64 { return e.value }
