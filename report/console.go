package report

import (
	"fmt"
	"io"

	tpd "github.com/gofhir/tpd"
)

// WriteSummary writes the scalar statistics section of the console
// report.
func WriteSummary(w io.Writer, result *tpd.Result) {
	s := result.Summary

	fmt.Fprintf(w, "   Total encounters: %d\n", s.TotalEncounters)
	fmt.Fprintf(w, "   Total lab observations: %d\n", s.TotalObservations)
	fmt.Fprintf(w, "   TPD encounters: %d\n", s.FilteredEncounters)
	fmt.Fprintf(w, "   Labs from TPD encounters: %d\n", s.MatchedObservations)
	fmt.Fprintf(w, "   - Cultures: %d\n", s.CultureObservations)
	fmt.Fprintf(w, "   - Other: %d\n", s.OtherObservations)
	fmt.Fprintf(w, "   Encounters with pending labs: %d\n", s.EncountersWithPending)
	fmt.Fprintf(w, "   Pending lab rate: %.1f%%\n", s.PendingRate)

	if s.EncountersWithPending > 0 {
		fmt.Fprintf(w, "\n   Average pending labs per TPD encounter: %.2f\n", s.AvgPending)
		fmt.Fprintf(w, "   Maximum pending labs (single encounter): %d\n", s.MaxPending)
	}
}

// WriteDistribution writes the per-bucket distribution table. Buckets
// appear in fixed display order with a percentage of total pending and
// the per-category split.
func WriteDistribution(w io.Writer, result *tpd.Result) {
	total := result.Summary.TotalPending
	if total == 0 {
		fmt.Fprintln(w, "   No pending labs found")
		return
	}

	fmt.Fprintln(w, "   Distribution by bucket:")
	for _, bucket := range tpd.Buckets() {
		bucketTotal := result.BucketTotal(bucket)
		pct := float64(bucketTotal) / float64(total) * 100

		line := fmt.Sprintf("   %-5s: %4d (%5.1f%%)", bucket, bucketTotal, pct)
		for i, cat := range result.Categories {
			n := result.CategoryCount(bucket, cat)
			if i == 0 {
				line += " - "
			} else {
				line += ", "
			}
			line += fmt.Sprintf("%s: %4d", cat, n)
		}
		fmt.Fprintln(w, line)
	}
}
