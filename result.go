package tpdanalysis

// Category labels for the Cultures/Other split under PolicyDelay. Under
// PolicyStatus the distribution category is the observation status value.
const (
	CategoryCultures = "Cultures"
	CategoryOther    = "Other"
)

// Summary holds the scalar statistics of one analysis run.
// All values degrade to zero on empty input.
type Summary struct {
	// TotalEncounters is the size of the full encounter table.
	TotalEncounters int

	// TotalObservations is the size of the full observation table,
	// including rows that did not match an encounter.
	TotalObservations int

	// FilteredEncounters is the number of encounters passing the class
	// filter; this is the pending-rate denominator. Equal to
	// TotalEncounters when no filter is set.
	FilteredEncounters int

	// MatchedObservations is the number of observations joined to a
	// filtered encounter.
	MatchedObservations int

	// CultureObservations and OtherObservations split the matched
	// observations by culture code membership.
	CultureObservations int
	OtherObservations   int

	// TotalPending is the number of observations classified pending.
	TotalPending int

	// EncountersWithPending is the number of encounters with at least
	// one pending observation.
	EncountersWithPending int

	// PendingRate is EncountersWithPending / FilteredEncounters * 100,
	// or 0 when the denominator is 0. Always within [0, 100].
	PendingRate float64

	// AvgPending and MaxPending describe the pending count among
	// encounters with at least one pending observation.
	AvgPending float64
	MaxPending int
}

// BucketCount is the number of pending observations in one
// (bucket, category) cell of the distribution.
type BucketCount struct {
	Bucket   Bucket
	Category string
	Count    int
}

// Result is the full outcome of an analysis run.
type Result struct {
	// Encounters is the complete encounter table with derived columns
	// filled in (missing pending counts are zero).
	Encounters []EncounterRow

	// Observations is the complete observation table with derived
	// columns; unmatched rows have Matched false and NaN delay.
	Observations []JoinedObservation

	// Summary holds the scalar statistics.
	Summary Summary

	// Distribution holds pending counts per (bucket, category), in
	// fixed bucket display order, categories in stable order within a
	// bucket. Cells with zero pending observations are omitted.
	Distribution []BucketCount

	// Categories lists the distribution categories in display order.
	Categories []string
}

// BucketTotal returns the total pending count in a bucket across all
// categories.
func (r *Result) BucketTotal(b Bucket) int {
	total := 0
	for _, bc := range r.Distribution {
		if bc.Bucket == b {
			total += bc.Count
		}
	}
	return total
}

// CategoryCount returns the pending count for one (bucket, category)
// cell, zero when the cell is absent.
func (r *Result) CategoryCount(b Bucket, category string) int {
	for _, bc := range r.Distribution {
		if bc.Bucket == b && bc.Category == category {
			return bc.Count
		}
	}
	return 0
}

// PendingEncounters returns the encounters with at least one pending
// observation.
func (r *Result) PendingEncounters() []EncounterRow {
	var out []EncounterRow
	for _, e := range r.Encounters {
		if e.PendingLabCount > 0 {
			out = append(out, e)
		}
	}
	return out
}
