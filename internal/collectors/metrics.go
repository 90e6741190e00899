package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// collectionRuns counts per-source collection outcomes.
	collectionRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collector_runs_total",
		Help: "Total number of collection runs by source and status",
	}, []string{"source", "status"})

	// collectionDuration tracks how long each source takes to collect and
	// reconcile.
	collectionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collector_run_duration_seconds",
		Help:    "Time taken per source collection",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"source"})

	// productsCollected counts candidate products produced per source.
	productsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collector_products_total",
		Help: "Total number of products collected by source",
	}, []string{"source"})

	// priceChanges counts detected price changes per source.
	priceChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collector_price_changes_total",
		Help: "Total number of price changes detected by source",
	}, []string{"source"})
)

func recordRun(source, status string, elapsed time.Duration) {
	collectionRuns.WithLabelValues(source, status).Inc()
	collectionDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

func recordProducts(source string, products, changes int) {
	productsCollected.WithLabelValues(source).Add(float64(products))
	priceChanges.WithLabelValues(source).Add(float64(changes))
}
