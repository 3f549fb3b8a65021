package gpltools

import (
	"sync/atomic"
	"time"
)

// Metrics counts conversions performed by a Converter.
// Thread-safe for concurrent use.
type Metrics struct {
	conversions    atomic.Int64
	failures       atomic.Int64
	palettesParsed atomic.Int64
	colorsRendered atomic.Int64
	swatchesWrote  atomic.Int64

	lastDurationNs atomic.Int64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Conversions    int64
	Failures       int64
	PalettesParsed int64
	ColorsRendered int64
	SwatchesWrote  int64
	LastDuration   time.Duration
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Conversions:    m.conversions.Load(),
		Failures:       m.failures.Load(),
		PalettesParsed: m.palettesParsed.Load(),
		ColorsRendered: m.colorsRendered.Load(),
		SwatchesWrote:  m.swatchesWrote.Load(),
		LastDuration:   time.Duration(m.lastDurationNs.Load()),
	}
}

func (m *Metrics) recordConversion(d time.Duration, err error) {
	m.conversions.Add(1)
	if err != nil {
		m.failures.Add(1)
	}
	m.lastDurationNs.Store(int64(d))
}
