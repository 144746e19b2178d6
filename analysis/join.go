package analysis

import (
	"math"
	"strings"
	"time"

	tpd "github.com/gofhir/tpd"
)

// encounterRefPrefix is the resource-type prefix observations may carry
// on their encounter foreign key.
const encounterRefPrefix = "Encounter/"

// join matches observations to filtered encounters and computes the
// delay column. Observations without a matching encounter stay in the
// output with Matched false and NaN delay; inner join semantics fall
// out of Matched gating everywhere downstream.
func (a *Analyzer) join(index map[string]*tpd.EncounterRow, observations []tpd.LabObservationRow) []tpd.JoinedObservation {
	joined := make([]tpd.JoinedObservation, 0, len(observations))
	for _, obs := range observations {
		row := tpd.JoinedObservation{
			ObservationID: obs.ObservationID,
			EncounterID:   normalizeEncounterID(obs.EncounterID),
			LabCode:       obs.LabCode,
			IssuedTime:    obs.IssuedTime,
			Status:        obs.Status,
			DelayDays:     math.NaN(),
		}

		if enc, ok := index[row.EncounterID]; ok {
			row.Matched = true
			row.DelayDays = delayDays(obs.IssuedTime, a.referenceTime(enc))
		}
		joined = append(joined, row)
	}
	return joined
}

// referenceTime picks the encounter timestamp delays are measured from.
func (a *Analyzer) referenceTime(enc *tpd.EncounterRow) string {
	if a.opts.Reference == tpd.ReferenceEnd {
		return enc.EndTime
	}
	return enc.StartTime
}

// normalizeEncounterID strips the reference prefix from an observation's
// encounter foreign key.
func normalizeEncounterID(id string) string {
	return strings.TrimPrefix(id, encounterRefPrefix)
}

// parseTimestamp parses an ISO-8601 timestamp, timezone aware.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// delayDays computes issued minus reference in fractional days.
// Either timestamp failing to parse yields NaN, which downstream
// classification treats as falsy.
func delayDays(issued, reference string) float64 {
	it, ok := parseTimestamp(issued)
	if !ok {
		return math.NaN()
	}
	rt, ok := parseTimestamp(reference)
	if !ok {
		return math.NaN()
	}
	return it.Sub(rt).Seconds() / 86400.0
}

// dischargeDate derives the date component of the encounter end time.
func dischargeDate(endTime string) string {
	t, ok := parseTimestamp(endTime)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}
