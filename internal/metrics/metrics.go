package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherterm_page_fetches_total",
			Help: "Total forecast page fetches",
		},
		[]string{"forecast_type", "status"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherterm_page_fetch_duration_seconds",
			Help:    "Forecast page fetch latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"forecast_type"},
	)

	ParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherterm_parse_failures_total",
			Help: "Total extractions that failed on unexpected markup",
		},
		[]string{"recipe"},
	)

	ForecastsProduced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherterm_forecasts_produced_total",
			Help: "Total forecasts successfully extracted",
		},
		[]string{"forecast_type"},
	)
)

// Fetch status label values.
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// WriteTextfile writes every registered metric to path in the text
// exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
