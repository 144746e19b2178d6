// Package report renders analysis results: a human-readable console
// summary, CSV exports of the two output tables, and a standalone HTML
// stacked-bar chart of the pending-lab day distribution.
//
// Chart rendering is delegated to go-echarts; CSV serialization to
// gocsv. This package only binds already-aggregated data to those
// collaborators.
package report
