package view

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"

	tpd "github.com/gofhir/tpd"
)

// Row is one tabular output row: column name to cell value. Absent
// elements project to the empty string.
type Row map[string]string

// Runner evaluates ViewDefinitions against collection Bundles.
type Runner struct {
	workers int
	log     *zap.Logger
	metrics *tpd.Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkerCount sets the number of workers evaluating bundle entries.
// Defaults to runtime.NumCPU().
func WithWorkerCount(n int) RunnerOption {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithLogger sets the runner's logger.
func WithLogger(log *zap.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(m *tpd.Metrics) RunnerOption {
	return func(r *Runner) {
		r.metrics = m
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		workers: runtime.NumCPU(),
		log:     zap.NewNop(),
		metrics: tpd.NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = 1
	}
	return r
}

// Metrics returns the runner's metrics collector.
func (r *Runner) Metrics() *tpd.Metrics {
	return r.metrics
}

// Run evaluates a ViewDefinition against a collection Bundle and returns
// one row per entry whose resource matches the definition's resource
// type. Rows preserve bundle entry order regardless of worker count.
func (r *Runner) Run(ctx context.Context, def *Definition, bundle []byte) ([]Row, error) {
	if rt, err := jsonparser.GetString(bundle, "resourceType"); err != nil || rt != "Bundle" {
		return nil, fmt.Errorf("view %q: input is not a Bundle", def.Name)
	}

	cols, compiled, err := compile(def)
	if err != nil {
		return nil, err
	}
	for i := 0; i < compiled; i++ {
		r.metrics.RecordCompile()
	}

	// Collect matching resources first; evaluation is the expensive part.
	var resources [][]byte
	var iterErr error
	_, err = jsonparser.ArrayEach(bundle, func(entry []byte, _ jsonparser.ValueType, _ int, _ error) {
		if iterErr != nil {
			return
		}
		resource, _, _, err := jsonparser.Get(entry, "resource")
		if err != nil {
			iterErr = fmt.Errorf("view %q: bundle entry without resource: %w", def.Name, err)
			return
		}
		rt, err := jsonparser.GetString(resource, "resourceType")
		if err != nil {
			iterErr = fmt.Errorf("view %q: resource without resourceType: %w", def.Name, err)
			return
		}
		if rt != def.Resource {
			r.metrics.RecordSkip()
			return
		}
		// jsonparser returns a view into the bundle buffer; safe here
		// because the bundle outlives the run.
		resources = append(resources, resource)
	}, "entry")
	if iterErr != nil {
		return nil, iterErr
	}
	if err != nil {
		// A bundle with no entry element is an empty projection.
		if err == jsonparser.KeyPathNotFoundError {
			r.log.Debug("bundle has no entries", zap.String("view", def.Name))
			return nil, nil
		}
		return nil, fmt.Errorf("view %q: iterate bundle entries: %w", def.Name, err)
	}

	rows := make([]Row, len(resources))
	errs := make([]error, len(resources))

	workers := r.workers
	if workers > len(resources) {
		workers = len(resources)
	}
	if workers <= 1 {
		for i, resource := range resources {
			rows[i], errs[i] = r.evalRow(ctx, cols, resource)
		}
	} else {
		slots := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for i, resource := range resources {
			wg.Add(1)
			go func(idx int, res []byte) {
				defer wg.Done()

				slots <- struct{}{}
				defer func() { <-slots }()

				rows[idx], errs[idx] = r.evalRow(ctx, cols, res)
			}(i, resource)
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", def.Name, err)
		}
	}

	r.log.Info("view evaluated",
		zap.String("view", def.Name),
		zap.String("resource", def.Resource),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// evalRow evaluates all columns against one resource.
func (r *Runner) evalRow(ctx context.Context, cols []compiledColumn, resource []byte) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	row := make(Row, len(cols))
	for _, col := range cols {
		cell, err := evalCell(col, resource)
		r.metrics.RecordCell(err != nil)
		if err != nil {
			return nil, err
		}
		row[col.name] = cell
	}
	r.metrics.RecordRow(time.Since(start))
	return row, nil
}
