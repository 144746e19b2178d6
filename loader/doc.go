// Package loader reads the pipeline's input files: NDJSON resource
// files, collection Bundle documents, ViewDefinition documents, and
// pre-run tabular row files.
//
// It performs no FHIR parsing beyond peeking at resourceType; resources
// stay as raw JSON until the view runner projects them.
package loader
