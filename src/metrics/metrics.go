package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SentiVec/src/library/log"
)

var (
	RowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentivec_rows_processed_total",
		Help: "Rows successfully vectorized, by source file.",
	}, []string{"source"})

	RowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentivec_rows_skipped_total",
		Help: "Rows skipped during vectorization, by reason.",
	}, []string{"reason"})

	RowsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentivec_rows_stored_total",
		Help: "Vectorized rows written to the feature store.",
	})

	VectorizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentivec_vectorize_duration_seconds",
		Help:    "Wall time of whole-file vectorization runs.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	LexiconSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentivec_lexicon_size",
		Help: "Token count of the active lexicon.",
	})
)

// Serve exposes /metrics on addr. Errors are logged, not fatal; metrics are
// an optional surface of a batch tool.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warning("metrics listener on %s stopped: %v", addr, err)
		}
	}()
	log.Info("metrics exposed on %s/metrics", addr)
}
