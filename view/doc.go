// Package view runs SQL-on-FHIR ViewDefinitions against FHIR Bundles to
// produce tabular rows.
//
// The package is a thin projection layer: all path evaluation is delegated
// to github.com/gofhir/fhirpath. A Definition is parsed from a
// ViewDefinition JSON document, each column's FHIRPath expression is
// compiled once, and the Runner evaluates the compiled columns against
// every matching bundle entry.
//
//	def, err := view.Parse(viewJSON)
//	runner := view.NewRunner(view.WithLogger(logger))
//	rows, err := runner.Run(ctx, def, bundleJSON)
//
// Only flat and nested select column lists are supported; forEach and
// unionAll projections are rejected at parse time.
package view
