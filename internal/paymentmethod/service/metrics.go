package service

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	decisions *prometheus.CounterVec
	tokens    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paygate",
			Name:      "eligibility_decisions_total",
			Help:      "Checkout eligibility decisions by method and failing gate.",
		}, []string{"method", "gate"}),
		tokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paygate",
			Name:      "payment_tokens_created_total",
			Help:      "Stored payment tokens created by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.decisions, m.tokens)
	return m
}

func (m *Metrics) observeDecision(method, gate string) {
	if gate == "" {
		gate = "none"
	}
	m.decisions.WithLabelValues(method, gate).Inc()
}

func (m *Metrics) observeToken(kind string) {
	m.tokens.WithLabelValues(kind).Inc()
}
