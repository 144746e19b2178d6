package analysis

import (
	"context"

	"go.uber.org/zap"

	tpd "github.com/gofhir/tpd"
)

// Analyzer computes TPD statistics over encounter and lab observation
// tables. It is configured once and safe to reuse across runs.
type Analyzer struct {
	opts       *tpd.Options
	log        *zap.Logger
	cultureSet map[string]struct{}
}

// New creates an Analyzer. A nil logger disables logging.
func New(log *zap.Logger, opts ...tpd.Option) *Analyzer {
	options := tpd.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if log == nil {
		log = zap.NewNop()
	}

	cultureSet := make(map[string]struct{}, len(options.CultureCodes))
	for _, code := range options.CultureCodes {
		cultureSet[code] = struct{}{}
	}

	return &Analyzer{
		opts:       options,
		log:        log,
		cultureSet: cultureSet,
	}
}

// Options returns the analyzer's configuration.
func (a *Analyzer) Options() *tpd.Options {
	return a.opts
}

// Analyze runs the full pipeline over the input tables. Empty inputs
// yield a zeroed result, never an error.
func (a *Analyzer) Analyze(ctx context.Context, encounters []tpd.EncounterRow, observations []tpd.LabObservationRow) (*tpd.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Work on a copy; derived columns must not leak into caller tables.
	encs := make([]tpd.EncounterRow, len(encounters))
	copy(encs, encounters)
	for i := range encs {
		encs[i].DischargeDate = dischargeDate(encs[i].EndTime)
		encs[i].PendingLabCount = 0
	}

	filtered := a.filterIndex(encs)
	joined := a.join(filtered, observations)
	for i := range joined {
		a.classify(&joined[i])
	}

	result := &tpd.Result{
		Encounters:   encs,
		Observations: joined,
	}
	a.aggregate(result, len(filtered))

	a.log.Info("analysis complete",
		zap.Int("encounters", result.Summary.TotalEncounters),
		zap.Int("observations", result.Summary.TotalObservations),
		zap.Int("pending", result.Summary.TotalPending),
		zap.Float64("pending_rate", result.Summary.PendingRate),
		zap.String("policy", a.opts.Policy.String()))
	return result, nil
}

// filterIndex indexes the encounters passing the class filter by id.
func (a *Analyzer) filterIndex(encs []tpd.EncounterRow) map[string]*tpd.EncounterRow {
	index := make(map[string]*tpd.EncounterRow, len(encs))
	for i := range encs {
		if a.opts.ClassFilter != "" && encs[i].Class != a.opts.ClassFilter {
			continue
		}
		index[encs[i].EncounterID] = &encs[i]
	}
	return index
}
