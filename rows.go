package tpdanalysis

import "math"

// EncounterRow is one row of the Encounter view projection, enriched by
// the analysis with a discharge date and a pending lab count.
// Timestamps stay in their source ISO-8601 string form; parsing happens
// only where a delay is computed.
type EncounterRow struct {
	EncounterID     string `json:"encounter_id" csv:"encounter_id"`
	Class           string `json:"encounter_class" csv:"encounter_class"`
	Type            string `json:"encounter_type" csv:"encounter_type"`
	StartTime       string `json:"start_time" csv:"start_time"`
	EndTime         string `json:"end_time" csv:"end_time"`
	DischargeDate   string `json:"discharge_date" csv:"discharge_date"`
	PendingLabCount int    `json:"pending_lab_count" csv:"pending_lab_count"`
}

// LabObservationRow is one row of the lab Observation view projection.
// EncounterID may carry an "Encounter/" reference prefix; the analyzer
// normalizes it before joining.
type LabObservationRow struct {
	ObservationID string `json:"observation_id" csv:"observation_id"`
	EncounterID   string `json:"encounter_id" csv:"encounter_id"`
	LabCode       string `json:"lab_code" csv:"lab_code"`
	IssuedTime    string `json:"issued_time" csv:"issued_time"`
	Status        string `json:"status" csv:"status"`
}

// JoinedObservation is a lab observation after the encounter join, with
// the derived classification columns. Matched is false when no encounter
// row exists for the observation's normalized encounter id; such rows are
// excluded from delay statistics but kept for export.
type JoinedObservation struct {
	ObservationID string  `csv:"observation_id"`
	EncounterID   string  `csv:"encounter_id"`
	LabCode       string  `csv:"lab_code"`
	IssuedTime    string  `csv:"issued_time"`
	Status        string  `csv:"status"`
	Matched       bool    `csv:"matched"`
	DelayDays     float64 `csv:"delay_days"`
	Pending       bool    `csv:"is_pending"`
	Culture       bool    `csv:"is_culture"`
	BucketLabel   string  `csv:"bucket"`
}

// HasDelay reports whether the delay could be computed, i.e. both the
// issued and reference timestamps parsed.
func (o *JoinedObservation) HasDelay() bool {
	return o.Matched && !math.IsNaN(o.DelayDays)
}
