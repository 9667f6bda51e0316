package listener

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aia-uclouvain/maxicp-sub001/pkg/search"
)

const (
	OutcomeLabel = "outcome"
	Completed    = "completed"
	Stopped      = "stopped"
)

// Metrics exports the progress of the searches it listens to. One Metrics
// may be shared by consecutive runs; its counters accumulate.
type Metrics struct {
	nodes     prometheus.Counter
	failures  prometheus.Counter
	solutions prometheus.Counter
	depth     prometheus.Gauge
	runs      *prometheus.CounterVec
}

var _ search.Listener = &Metrics{}

// NewMetrics creates the search metrics under namespace and registers
// them on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		nodes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_nodes_total",
				Help:      "Number of alternatives applied by the search",
			},
		),
		failures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_failures_total",
				Help:      "Number of failed search nodes",
			},
		),
		solutions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_solutions_total",
				Help:      "Number of solutions found by the search",
			},
		),
		depth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "search_depth",
				Help:      "Current state level of the search",
			},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_runs_total",
				Help:      "Number of searches run, by outcome",
			},
			[]string{OutcomeLabel},
		),
	}
	for _, c := range []prometheus.Collector{m.nodes, m.failures, m.solutions, m.depth, m.runs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Branch(_, _ int) {}

func (m *Metrics) Fail(_ int) {
	m.failures.Inc()
}

func (m *Metrics) Solution(_ int) {
	m.solutions.Inc()
}

// SaveState is called once before each alternative.
func (m *Metrics) SaveState(level int) {
	m.nodes.Inc()
	m.depth.Set(float64(level))
}

func (m *Metrics) RestoreState(level int) {
	m.depth.Set(float64(level))
}

func (m *Metrics) Done(stats search.Statistics) {
	outcome := Stopped
	if stats.Completed {
		outcome = Completed
	}
	m.runs.WithLabelValues(outcome).Inc()
}
