package view

import (
	tpd "github.com/gofhir/tpd"
)

// Column names produced by the demo's EncounterView and
// LabObservationView definitions.
const (
	ColEncounterID    = "encounter_id"
	ColEncounterClass = "encounter_class"
	ColEncounterType  = "encounter_type"
	ColStartTime      = "start_time"
	ColEndTime        = "end_time"

	ColObservationID = "observation_id"
	ColLabCode       = "lab_code"
	ColIssuedTime    = "issued_time"
	ColStatus        = "status"
)

// DecodeEncounters maps view rows onto typed encounter rows. Missing
// columns decode to empty strings.
func DecodeEncounters(rows []Row) []tpd.EncounterRow {
	out := make([]tpd.EncounterRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, tpd.EncounterRow{
			EncounterID: row[ColEncounterID],
			Class:       row[ColEncounterClass],
			Type:        row[ColEncounterType],
			StartTime:   row[ColStartTime],
			EndTime:     row[ColEndTime],
		})
	}
	return out
}

// DecodeLabObservations maps view rows onto typed lab observation rows.
func DecodeLabObservations(rows []Row) []tpd.LabObservationRow {
	out := make([]tpd.LabObservationRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, tpd.LabObservationRow{
			ObservationID: row[ColObservationID],
			EncounterID:   row[ColEncounterID],
			LabCode:       row[ColLabCode],
			IssuedTime:    row[ColIssuedTime],
			Status:        row[ColStatus],
		})
	}
	return out
}
