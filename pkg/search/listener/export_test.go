package listener

import "github.com/prometheus/client_golang/prometheus"

func (m *Metrics) Counters() (nodes, failures, solutions prometheus.Counter) {
	return m.nodes, m.failures, m.solutions
}

func (m *Metrics) Depth() prometheus.Gauge {
	return m.depth
}

func (m *Metrics) Runs(outcome string) prometheus.Counter {
	return m.runs.WithLabelValues(outcome)
}
