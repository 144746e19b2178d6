package tpdanalysis

import (
	"sync/atomic"
	"time"
)

// Metrics tracks view evaluation performance using lock-free atomic
// operations. All methods are safe for concurrent use by the runner's
// workers.
type Metrics struct {
	// Row counts
	rowsTotal      atomic.Uint64
	rowsSkipped    atomic.Uint64
	cellsEvaluated atomic.Uint64
	cellsFailed    atomic.Uint64

	// Expression compilation
	expressionsCompiled atomic.Uint64

	// Per-row evaluation timing (stored as nanoseconds)
	evalTimeTotal atomic.Uint64
	evalTimeMin   atomic.Uint64
	evalTimeMax   atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.evalTimeMin.Store(^uint64(0))
	return m
}

// RecordRow records one evaluated bundle entry.
func (m *Metrics) RecordRow(duration time.Duration) {
	m.rowsTotal.Add(1)

	ns := uint64(duration.Nanoseconds())
	m.evalTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.evalTimeMin.Load()
		if ns >= old {
			break
		}
		if m.evalTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.evalTimeMax.Load()
		if ns <= old {
			break
		}
		if m.evalTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSkip records an entry skipped by the resource type filter.
func (m *Metrics) RecordSkip() {
	m.rowsSkipped.Add(1)
}

// RecordCell records one evaluated column cell.
func (m *Metrics) RecordCell(failed bool) {
	m.cellsEvaluated.Add(1)
	if failed {
		m.cellsFailed.Add(1)
	}
}

// RecordCompile records one compiled column expression.
func (m *Metrics) RecordCompile() {
	m.expressionsCompiled.Add(1)
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	RowsTotal           uint64
	RowsSkipped         uint64
	CellsEvaluated      uint64
	CellsFailed         uint64
	ExpressionsCompiled uint64
	EvalTimeTotal       time.Duration
	EvalTimeMin         time.Duration
	EvalTimeMax         time.Duration
	EvalTimeAvg         time.Duration
}

// Snapshot returns a consistent-enough copy for reporting.
func (m *Metrics) Snapshot() Snapshot {
	s := Snapshot{
		RowsTotal:           m.rowsTotal.Load(),
		RowsSkipped:         m.rowsSkipped.Load(),
		CellsEvaluated:      m.cellsEvaluated.Load(),
		CellsFailed:         m.cellsFailed.Load(),
		ExpressionsCompiled: m.expressionsCompiled.Load(),
		EvalTimeTotal:       time.Duration(m.evalTimeTotal.Load()),
		EvalTimeMax:         time.Duration(m.evalTimeMax.Load()),
	}

	if min := m.evalTimeMin.Load(); min != ^uint64(0) {
		s.EvalTimeMin = time.Duration(min)
	}
	if s.RowsTotal > 0 {
		s.EvalTimeAvg = s.EvalTimeTotal / time.Duration(s.RowsTotal)
	}
	return s
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	m.rowsTotal.Store(0)
	m.rowsSkipped.Store(0)
	m.cellsEvaluated.Store(0)
	m.cellsFailed.Store(0)
	m.expressionsCompiled.Store(0)
	m.evalTimeTotal.Store(0)
	m.evalTimeMin.Store(^uint64(0))
	m.evalTimeMax.Store(0)
}
