package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	operationsTotal *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "corebank",
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Financial operations processed, by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	if reg != nil {
		reg.MustRegister(m.operationsTotal)
	}

	return m
}

func (m *Metrics) ObserveOperation(operation string, err error) {
	if m == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.operationsTotal.WithLabelValues(operation, outcome).Inc()
}
