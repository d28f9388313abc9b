package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rios0rios0/devops2blob/internal/domain/repositories"
)

const namespace = "devops2blob"

// RecorderRepository records transfer metrics into a Prometheus registry.
type RecorderRepository struct {
	filesUploaded prometheus.Counter
	bytesUploaded prometheus.Counter
	runs          *prometheus.CounterVec
	runDuration   prometheus.Histogram
}

var _ repositories.RecorderRepository = (*RecorderRepository)(nil)

// NewRecorderRepository registers the transfer metrics with registerer.
func NewRecorderRepository(registerer prometheus.Registerer) *RecorderRepository {
	factory := promauto.With(registerer)
	return &RecorderRepository{
		filesUploaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_uploaded_total",
			Help:      "Files uploaded to the storage container",
		}),
		bytesUploaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_uploaded_total",
			Help:      "Bytes uploaded to the storage container",
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Transfer runs by outcome",
		}, []string{"outcome"}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a transfer run",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
}

func (it *RecorderRepository) FileUploaded(_ string, size int) {
	it.filesUploaded.Inc()
	it.bytesUploaded.Add(float64(size))
}

func (it *RecorderRepository) RunFinished(outcome string, elapsed time.Duration) {
	it.runs.WithLabelValues(outcome).Inc()
	it.runDuration.Observe(elapsed.Seconds())
}
