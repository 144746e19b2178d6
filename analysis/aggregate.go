package analysis

import (
	"sort"

	tpd "github.com/gofhir/tpd"
)

// aggregate fills the per-encounter pending counts, the summary scalars
// and the bucket distribution. Every statistic degrades to zero on empty
// input.
func (a *Analyzer) aggregate(result *tpd.Result, filteredCount int) {
	summary := tpd.Summary{
		TotalEncounters:    len(result.Encounters),
		TotalObservations:  len(result.Observations),
		FilteredEncounters: filteredCount,
	}

	// Group pending observations by encounter; left-join the counts
	// back onto the full encounter set with zero fill (done already by
	// the analyzer resetting PendingLabCount).
	pendingPerEncounter := make(map[string]int)
	for i := range result.Observations {
		o := &result.Observations[i]
		if !o.Matched {
			continue
		}
		summary.MatchedObservations++
		if o.Culture {
			summary.CultureObservations++
		} else {
			summary.OtherObservations++
		}
		if o.Pending {
			summary.TotalPending++
			pendingPerEncounter[o.EncounterID]++
		}
	}

	pendingSum := 0
	for i := range result.Encounters {
		enc := &result.Encounters[i]
		enc.PendingLabCount = pendingPerEncounter[enc.EncounterID]
		if enc.PendingLabCount > 0 {
			summary.EncountersWithPending++
			pendingSum += enc.PendingLabCount
			if enc.PendingLabCount > summary.MaxPending {
				summary.MaxPending = enc.PendingLabCount
			}
		}
	}

	if summary.FilteredEncounters > 0 {
		summary.PendingRate = float64(summary.EncountersWithPending) / float64(summary.FilteredEncounters) * 100
	}
	if summary.EncountersWithPending > 0 {
		summary.AvgPending = float64(pendingSum) / float64(summary.EncountersWithPending)
	}

	result.Summary = summary
	result.Distribution, result.Categories = a.distribution(result.Observations)
}

// distribution counts pending observations per (bucket, category) cell,
// emitted in fixed bucket display order.
func (a *Analyzer) distribution(observations []tpd.JoinedObservation) ([]tpd.BucketCount, []string) {
	counts := make(map[tpd.Bucket]map[string]int)
	seen := make(map[string]bool)
	for i := range observations {
		o := &observations[i]
		if !o.Pending {
			continue
		}
		bucket := tpd.BucketFor(o.DelayDays)
		cat := a.category(o)
		if counts[bucket] == nil {
			counts[bucket] = make(map[string]int)
		}
		counts[bucket][cat]++
		seen[cat] = true
	}

	categories := a.categoryOrder(seen)

	var dist []tpd.BucketCount
	for _, bucket := range tpd.Buckets() {
		cells := counts[bucket]
		if len(cells) == 0 {
			continue
		}
		for _, cat := range categories {
			if n := cells[cat]; n > 0 {
				dist = append(dist, tpd.BucketCount{Bucket: bucket, Category: cat, Count: n})
			}
		}
	}
	return dist, categories
}

// categoryOrder returns the display order of the observed categories:
// Cultures before Other under PolicyDelay, status values alphabetically
// under PolicyStatus.
func (a *Analyzer) categoryOrder(seen map[string]bool) []string {
	if a.opts.Policy != tpd.PolicyStatus {
		return []string{tpd.CategoryCultures, tpd.CategoryOther}
	}
	categories := make([]string, 0, len(seen))
	for cat := range seen {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return categories
}
