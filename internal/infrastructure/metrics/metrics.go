package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoansSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loans_submitted_total",
			Help: "Total number of loan applications submitted, by initial status",
		},
		[]string{"status"},
	)

	OffersAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "offers_accepted_total",
			Help: "Total number of offers accepted",
		},
	)

	ValuationQuotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valuation_quotes_total",
			Help: "Total number of valuation quotes served, by source",
		},
		[]string{"source"},
	)
)
