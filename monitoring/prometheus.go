package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SearchDuration    *prometheus.HistogramVec
	SearchErrors      *prometheus.CounterVec
	SearchRequests    *prometheus.CounterVec
	PagesFetched      *prometheus.CounterVec
	TorrentsScraped   *prometheus.CounterVec
	UnrecognizedPages *prometheus.CounterVec
	FailureSnapshots  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indexer_duration_seconds",
			Help:    "Duration of indexer searches",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"indexer"}),
		SearchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_errors_total",
			Help: "Number of indexer errors by kind",
		}, []string{"indexer", "kind"}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_requests_total",
			Help: "Number of indexer requests",
		}, []string{"indexer"}),
		PagesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_pages_total",
			Help: "Number of result pages fetched, by classification",
		}, []string{"indexer", "state"}),
		TorrentsScraped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_torrents_scraped_total",
			Help: "Number of torrents extracted from result pages",
		}, []string{"indexer"}),
		UnrecognizedPages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_unrecognized_pages_total",
			Help: "Number of pages with neither a results table nor a no-results notice",
		}, []string{"indexer"}),
		FailureSnapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indexer_failure_snapshots_total",
			Help: "Number of page snapshots saved after a scraping failure",
		}, []string{"indexer", "result"}),
	}
}

func (m *Metrics) Register() {
	prometheus.MustRegister(m.SearchDuration)
	prometheus.MustRegister(m.SearchErrors)
	prometheus.MustRegister(m.SearchRequests)
	prometheus.MustRegister(m.PagesFetched)
	prometheus.MustRegister(m.TorrentsScraped)
	prometheus.MustRegister(m.UnrecognizedPages)
	prometheus.MustRegister(m.FailureSnapshots)
}
