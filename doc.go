// Package tpdanalysis computes Tests Pending at Discharge (TPD) statistics
// from SQL-on-FHIR tabular projections of Encounter and lab Observation
// resources.
//
// The package does not parse FHIR resources or evaluate FHIRPath itself.
// Column extraction is delegated to github.com/gofhir/fhirpath through the
// view package; this package and its subpackages handle only the analytic
// pipeline: join, classify, aggregate, bucket, report.
//
// # Quick Start
//
//	import (
//	    tpd "github.com/gofhir/tpd"
//	    "github.com/gofhir/tpd/analysis"
//	)
//
//	analyzer := analysis.New(logger,
//	    tpd.WithPolicy(tpd.PolicyDelay),
//	    tpd.WithClassFilter("IMP"),
//	)
//
//	result, err := analyzer.Analyze(ctx, encounters, observations)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("pending rate: %.1f%%\n", result.Summary.PendingRate)
//
// # Pipeline
//
// The analysis is a single sequential pass over in-memory tables:
//
//   - Join: observations are matched to encounters on encounter id after
//     stripping the "Encounter/" reference prefix. Unmatched observations
//     are excluded from delay statistics but stay in the export tables.
//   - Delay: issued time minus the reference timestamp (encounter start or
//     end, configurable) in fractional days. Unparseable timestamps yield
//     NaN and are never classified pending.
//   - Classification: one of two explicit policies, PolicyDelay (pending
//     iff delay > 0) or PolicyStatus (pending iff status is not "final").
//   - Aggregation: per-encounter pending counts, summary rates, and a
//     seven-bin day-bucket distribution split by Cultures/Other.
//
// # Subpackages
//
//   - view: ViewDefinition runner delegating to gofhir/fhirpath
//   - loader: NDJSON, Bundle, ViewDefinition and pre-run row loading
//   - analysis: the analyzer
//   - report: console report, CSV export, HTML chart
//   - config: YAML run configuration for the CLI
package tpdanalysis
