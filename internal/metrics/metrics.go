// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the pipeline.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow Backend interface focused on counters and timing.
//   - The global backend defaults to a no-op implementation, so metric calls
//     are always safe even when nothing is configured.
//   - It mirrors the storage abstraction pattern: the rest of the codebase
//     depends only on this interface while concrete metric systems
//     (Prometheus Pushgateway, Datadog) live in subpackages.
package metrics

import "time"

// Metric names shared between the recorder helpers and backends.
const (
	MetricStepTotal    = "oecdhw_step_total"
	MetricStepDuration = "oecdhw_step_duration_seconds"
	MetricRecordsTotal = "oecdhw_records_total"
	MetricBatchesTotal = "oecdhw_batches_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency plus success/failure for one pipeline stage.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(MetricStepTotal, 1, lbls)
	backend.ObserveHistogram(MetricStepDuration, d.Seconds(), lbls)
}

// RecordRow increments a record-level counter for the given job and kind.
//
// Typical kinds mirror the run summary fields, e.g. "hours_rows",
// "wages_rows", "skipped", "duplicates", "inserted".
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(MetricRecordsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordBatches increments a batch-level counter for the given job.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(MetricBatchesTotal, float64(delta), Labels{
		"job": job,
	})
}
