package tpdanalysis

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Basic(t *testing.T) {
	m := NewMetrics()

	s := m.Snapshot()
	assert.Zero(t, s.RowsTotal)
	assert.Zero(t, s.EvalTimeMin)
	assert.Zero(t, s.EvalTimeMax)

	m.RecordRow(10 * time.Millisecond)
	m.RecordRow(30 * time.Millisecond)
	m.RecordSkip()
	m.RecordCompile()
	m.RecordCell(false)
	m.RecordCell(true)

	s = m.Snapshot()
	assert.Equal(t, uint64(2), s.RowsTotal)
	assert.Equal(t, uint64(1), s.RowsSkipped)
	assert.Equal(t, uint64(2), s.CellsEvaluated)
	assert.Equal(t, uint64(1), s.CellsFailed)
	assert.Equal(t, uint64(1), s.ExpressionsCompiled)
	assert.Equal(t, 40*time.Millisecond, s.EvalTimeTotal)
	assert.Equal(t, 10*time.Millisecond, s.EvalTimeMin)
	assert.Equal(t, 30*time.Millisecond, s.EvalTimeMax)
	assert.Equal(t, 20*time.Millisecond, s.EvalTimeAvg)
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.RecordRow(time.Millisecond)
	m.RecordSkip()
	m.Reset()

	s := m.Snapshot()
	assert.Zero(t, s.RowsTotal)
	assert.Zero(t, s.RowsSkipped)
	assert.Zero(t, s.EvalTimeTotal)
	assert.Zero(t, s.EvalTimeMin)
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordRow(time.Duration(j+1) * time.Microsecond)
				m.RecordCell(false)
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, uint64(1000), s.RowsTotal)
	assert.Equal(t, uint64(1000), s.CellsEvaluated)
	assert.Equal(t, time.Microsecond, s.EvalTimeMin)
	assert.Equal(t, 100*time.Microsecond, s.EvalTimeMax)
}
