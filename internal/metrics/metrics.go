package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_search_duration_seconds",
			Help:    "Duration of each connector fan-out in seconds.",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60},
		},
	)
	FetchDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "pipeline_connector_fetch_duration_seconds",
			Help:       "Duration of a single connector fetch.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"connector"},
	)
	DiscoveredJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_jobs_discovered_total",
			Help: "Total number of postings newly added to the working set.",
		},
	)
	AlertMatchesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_alert_matches_total",
			Help: "Total number of postings matched against user alerts.",
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(DiscoveredJobsCounter)
	prometheus.MustRegister(AlertMatchesCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, nil))
	}()
}
