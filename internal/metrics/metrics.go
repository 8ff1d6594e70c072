package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Simulations counts simulation runs by amortization system and outcome
	Simulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amortiza_simulations_total",
			Help: "Number of simulations run",
		},
		[]string{"system", "status"},
	)

	// SimulationDuration observes how long a simulation run takes
	SimulationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "amortiza_simulation_duration_seconds",
			Help:    "Duration of a simulation run",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"system"},
	)

	// MonthsSaved observes the term reduction produced by extra payments
	MonthsSaved = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "amortiza_months_saved",
			Help:    "Months saved by extra payments per simulation",
			Buckets: []float64{0, 1, 6, 12, 24, 60, 120, 240, 480},
		},
		[]string{"system"},
	)

	// HTTPRequests counts API requests
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amortiza_http_requests_total",
			Help: "HTTP requests served by the API",
		},
		[]string{"route", "method", "status"},
	)

	// HistoryErrors counts failures talking to the history store
	HistoryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amortiza_history_errors_total",
			Help: "History store failures",
		},
		[]string{"backend", "operation"},
	)
)
