package stock

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados possíveis de uma decisão do motor.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

// decisionsTotal conta decisões do motor de estoque por operação e resultado.
// Exposto em /metrics junto com os coletores padrão do client_golang.
var decisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "recicla",
		Subsystem: "stock",
		Name:      "decisions_total",
		Help:      "Decisões do motor de estoque por operação e resultado.",
	},
	[]string{"operation", "outcome"},
)

func observeDecision(operation string, err error) {
	outcome := outcomeAccepted
	if err != nil {
		outcome = outcomeRejected
	}
	decisionsTotal.WithLabelValues(operation, outcome).Inc()
}
