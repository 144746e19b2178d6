// Package analysis implements the pending-lab computation pipeline: the
// temporal join of lab observations onto encounters, delay computation,
// pending classification, per-encounter aggregation, and the day-bucket
// distribution.
//
// The Analyzer makes a single sequential pass over in-memory tables and
// holds no state between runs.
package analysis
