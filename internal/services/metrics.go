package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contactpro_operations_total",
			Help: "Total number of contact operations by result",
		},
		[]string{"op", "result"},
	)

	contactsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "contactpro_contacts",
			Help: "Number of contacts in the collection",
		},
	)
)

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(op, result).Inc()
}
