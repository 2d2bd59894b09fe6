package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/testout/testout/types"
)

const MetricsNamespace = "testout"

var (
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	itemsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "items_total",
		Help:      "Number of collected items per outcome",
	}, []string{
		"run_id",
		"outcome",
	})

	exportDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of one exporter's generation",
	}, []string{
		"run_id",
		"generator",
	})
)

// RecordError increments the error counter for the named error.
func RecordError(name string) {
	errorsTotal.WithLabelValues(name).Inc()
}

// RecordRun records the per-outcome item counts of a session. Items
// without a result (collect-only mode) are counted under "collected".
func RecordRun(runID string, counts map[types.Outcome]int, withoutResult int) {
	for outcome, count := range counts {
		itemsTotal.WithLabelValues(runID, string(outcome)).Set(float64(count))
	}
	if withoutResult > 0 {
		itemsTotal.WithLabelValues(runID, "collected").Set(float64(withoutResult))
	}
}

// RecordExport records how long one generator took.
func RecordExport(runID, generator string, duration time.Duration) {
	exportDuration.WithLabelValues(runID, generator).Set(duration.Seconds())
}
