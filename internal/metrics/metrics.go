// Package metrics exposes Prometheus instrumentation for trace readers and
// writers.
//
// A nil *Metrics is valid and records nothing, so callers can instrument
// unconditionally.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "segy"

// Metrics holds the trace I/O collectors.
type Metrics struct {
	tracesRead    *prometheus.CounterVec
	tracesWritten *prometheus.CounterVec
	bytesRead     prometheus.Counter
	bytesWritten  prometheus.Counter

	refillDuration prometheus.Histogram
	flushDuration  prometheus.Histogram

	peeksTotal    prometheus.Counter
	residualBytes prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg creates
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		tracesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "traces_read_total",
				Help:      "Total number of traces decoded",
			},
			[]string{"dialect"},
		),
		tracesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "traces_written_total",
				Help:      "Total number of traces encoded",
			},
			[]string{"dialect"},
		),
		bytesRead: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "read_bytes_total",
				Help:      "Total number of trace bytes read in bulk refills",
			},
		),
		bytesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "written_bytes_total",
				Help:      "Total number of trace bytes written in bulk flushes",
			},
		),
		refillDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refill_duration_seconds",
				Help:      "Duration of read buffer refills in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		flushDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "flush_duration_seconds",
				Help:      "Duration of write buffer flushes in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		peeksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "peeks_total",
				Help:      "Total number of single-field header peeks",
			},
		),
		residualBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "residual_bytes",
				Help:      "Trailing bytes of the last opened file that do not form a full trace",
			},
		),
	}
}

var (
	sharedMu sync.Mutex
	shared   = map[prometheus.Registerer]*Metrics{}
)

// For returns the collectors registered with reg, creating and registering
// them on first use. Readers and writers sharing a registry share collectors.
func For(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return New(nil)
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if m, ok := shared[reg]; ok {
		return m
	}
	m := New(reg)
	shared[reg] = m

	return m
}

// RecordRefill records one bulk read.
func (m *Metrics) RecordRefill(bytes int, duration time.Duration) {
	if m == nil {
		return
	}
	m.bytesRead.Add(float64(bytes))
	m.refillDuration.Observe(duration.Seconds())
}

// RecordFlush records one bulk write.
func (m *Metrics) RecordFlush(bytes int, duration time.Duration) {
	if m == nil {
		return
	}
	m.bytesWritten.Add(float64(bytes))
	m.flushDuration.Observe(duration.Seconds())
}

// RecordTraceRead counts one decoded trace.
func (m *Metrics) RecordTraceRead(dialect string) {
	if m == nil {
		return
	}
	m.tracesRead.WithLabelValues(dialect).Inc()
}

// RecordTraceWritten counts one encoded trace.
func (m *Metrics) RecordTraceWritten(dialect string) {
	if m == nil {
		return
	}
	m.tracesWritten.WithLabelValues(dialect).Inc()
}

// RecordPeek counts one header peek.
func (m *Metrics) RecordPeek() {
	if m == nil {
		return
	}
	m.peeksTotal.Inc()
}

// SetResidualBytes records the trailing byte count of a file.
func (m *Metrics) SetResidualBytes(n int64) {
	if m == nil {
		return
	}
	m.residualBytes.Set(float64(n))
}
