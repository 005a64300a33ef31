package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"junksweep/internal/reclaim"
	"junksweep/internal/volume"
)

// Reclaim subsystem metrics
var (
	// BytesFoundTotal tracks total junk bytes found across all runs
	BytesFoundTotal prometheus.Counter

	// BytesRemovedTotal tracks total bytes verified removed
	BytesRemovedTotal prometheus.Counter

	// BytesNotRemovedTotal tracks bytes that survived a delete attempt
	BytesNotRemovedTotal prometheus.Counter

	// RunsTotal counts completed reclaim runs
	RunsTotal prometheus.Counter

	// ErrorsTotal tracks total errors encountered by the daemon
	ErrorsTotal prometheus.Counter

	// RunDuration tracks how long reclaim runs take
	RunDuration prometheus.Histogram

	// RunLastTimestamp records Unix timestamp of the last run
	RunLastTimestamp prometheus.Gauge

	// VolumeFreeBytes tracks free space per inspected volume
	VolumeFreeBytes *prometheus.GaugeVec

	// VolumeTotalBytes tracks total capacity per inspected volume
	VolumeTotalBytes *prometheus.GaugeVec
)

func initReclaimMetrics() {
	BytesFoundTotal = NewBytesCounter(
		"junksweep_bytes_found_total",
		"Total junk bytes found by JunkSweep.",
	)
	BytesRemovedTotal = NewBytesCounter(
		"junksweep_bytes_removed_total",
		"Total bytes verified removed by JunkSweep.",
	)
	BytesNotRemovedTotal = NewBytesCounter(
		"junksweep_bytes_not_removed_total",
		"Total bytes that survived a delete attempt.",
	)
	RunsTotal = NewCounter(
		"junksweep_runs_total",
		"Total number of completed reclaim runs.",
	)
	ErrorsTotal = NewCounter(
		"junksweep_errors_total",
		"Total number of errors encountered by JunkSweep.",
	)
	RunDuration = NewDurationHistogram(
		"junksweep_run_duration_seconds",
		"Duration of reclaim runs in seconds.",
	)
	RunLastTimestamp = NewGauge(
		"junksweep_run_last_timestamp",
		"Timestamp of the last reclaim run (Unix epoch seconds).",
	)
	VolumeFreeBytes = NewGaugeVec(
		"junksweep_volume_free_bytes",
		"Free space remaining on the inspected volume.",
		[]string{"volume"},
	)
	VolumeTotalBytes = NewGaugeVec(
		"junksweep_volume_total_bytes",
		"Total capacity of the inspected volume.",
		[]string{"volume"},
	)
}

func registerReclaimMetrics() {
	prometheus.MustRegister(BytesFoundTotal)
	prometheus.MustRegister(BytesRemovedTotal)
	prometheus.MustRegister(BytesNotRemovedTotal)
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(ErrorsTotal)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(RunLastTimestamp)
	prometheus.MustRegister(VolumeFreeBytes)
	prometheus.MustRegister(VolumeTotalBytes)
}

// RecordRun folds one run's totals and duration into the counters.
func RecordRun(totals reclaim.Accumulator, elapsed time.Duration) {
	BytesFoundTotal.Add(float64(totals.Found))
	BytesRemovedTotal.Add(float64(totals.Removed))
	BytesNotRemovedTotal.Add(float64(totals.NotRemoved))
	RunsTotal.Inc()
	RunDuration.Observe(elapsed.Seconds())
	RunLastTimestamp.Set(float64(time.Now().Unix()))
}

// UpdateVolume publishes the latest capacity snapshot for a volume.
func UpdateVolume(info volume.Info) {
	VolumeFreeBytes.WithLabelValues(info.Volume).Set(float64(info.FreeBytes))
	VolumeTotalBytes.WithLabelValues(info.Volume).Set(float64(info.TotalBytes))
}
