package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tpd "github.com/gofhir/tpd"
)

func resultFixture() *tpd.Result {
	return &tpd.Result{
		Encounters: []tpd.EncounterRow{
			{EncounterID: "E1", Class: "IMP", Type: "inpatient encounter", StartTime: "2025-03-01T00:00:00Z", EndTime: "2025-03-03T00:00:00Z", DischargeDate: "2025-03-03", PendingLabCount: 2},
			{EncounterID: "E2", Class: "AMB", StartTime: "2025-03-02T00:00:00Z", EndTime: "2025-03-02T04:00:00Z", DischargeDate: "2025-03-02"},
		},
		Observations: []tpd.JoinedObservation{
			{ObservationID: "O1", EncounterID: "E1", LabCode: "600-7", IssuedTime: "2025-03-01T12:00:00Z", Status: "final", Matched: true, DelayDays: 0.5, Pending: true, Culture: true, BucketLabel: "0-1"},
			{ObservationID: "O2", EncounterID: "E1", LabCode: "2345-7", IssuedTime: "2025-03-02T12:00:00Z", Status: "preliminary", Matched: true, DelayDays: 1.5, Pending: true, BucketLabel: "1-2"},
			{ObservationID: "O3", EncounterID: "NOPE", LabCode: "2345-7", IssuedTime: "2025-03-02T12:00:00Z", Status: "final", DelayDays: math.NaN()},
		},
		Summary: tpd.Summary{
			TotalEncounters:       2,
			TotalObservations:     3,
			FilteredEncounters:    1,
			MatchedObservations:   2,
			CultureObservations:   1,
			OtherObservations:     1,
			TotalPending:          2,
			EncountersWithPending: 1,
			PendingRate:           100,
			AvgPending:            2,
			MaxPending:            2,
		},
		Distribution: []tpd.BucketCount{
			{Bucket: tpd.Bucket0to1, Category: tpd.CategoryCultures, Count: 1},
			{Bucket: tpd.Bucket1to2, Category: tpd.CategoryOther, Count: 1},
		},
		Categories: []string{tpd.CategoryCultures, tpd.CategoryOther},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, resultFixture())

	out := buf.String()
	assert.Contains(t, out, "Total encounters: 2")
	assert.Contains(t, out, "Total lab observations: 3")
	assert.Contains(t, out, "TPD encounters: 1")
	assert.Contains(t, out, "- Cultures: 1")
	assert.Contains(t, out, "- Other: 1")
	assert.Contains(t, out, "Encounters with pending labs: 1")
	assert.Contains(t, out, "Pending lab rate: 100.0%")
	assert.Contains(t, out, "Average pending labs per TPD encounter: 2.00")
	assert.Contains(t, out, "Maximum pending labs (single encounter): 2")
}

func TestWriteSummary_NoPending(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, &tpd.Result{})

	out := buf.String()
	assert.Contains(t, out, "Pending lab rate: 0.0%")
	assert.NotContains(t, out, "Average pending labs")
}

func TestWriteDistribution(t *testing.T) {
	var buf bytes.Buffer
	WriteDistribution(&buf, resultFixture())

	out := buf.String()
	assert.Contains(t, out, "Distribution by bucket:")
	assert.Contains(t, out, "Cultures:    1")
	assert.Contains(t, out, "50.0%")

	// All seven buckets appear, in order.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	for i, label := range tpd.BucketLabels() {
		assert.Contains(t, lines[i+1], label)
	}
}

func TestWriteDistribution_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteDistribution(&buf, &tpd.Result{})
	assert.Contains(t, buf.String(), "No pending labs found")
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	result := resultFixture()

	require.NoError(t, WriteCSV(dir, result))

	encs, err := ReadEncountersCSV(filepath.Join(dir, EncountersCSV))
	require.NoError(t, err)
	require.Len(t, encs, len(result.Encounters))
	assert.Equal(t, result.Encounters[0], encs[0])
	assert.Equal(t, result.Encounters[1], encs[1])

	obs, err := ReadObservationsCSV(filepath.Join(dir, ObservationsCSV))
	require.NoError(t, err)
	require.Len(t, obs, len(result.Observations))
	assert.Equal(t, result.Observations[0], obs[0])
	assert.True(t, math.IsNaN(obs[2].DelayDays))
}

func TestCSVHeaderOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(dir, resultFixture()))

	data, err := os.ReadFile(filepath.Join(dir, EncountersCSV))
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t, "encounter_id,encounter_class,encounter_type,start_time,end_time,discharge_date,pending_lab_count", strings.TrimSpace(header))

	data, err = os.ReadFile(filepath.Join(dir, ObservationsCSV))
	require.NoError(t, err)
	header = strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t, "observation_id,encounter_id,lab_code,issued_time,status,matched,delay_days,is_pending,is_culture,bucket", strings.TrimSpace(header))
}

func TestWriteChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), ChartHTML)
	require.NoError(t, WriteChart(path, resultFixture()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "Results after Discharge")
	assert.Contains(t, html, "Cultures")
	assert.Contains(t, html, "Other")
	for _, label := range tpd.BucketLabels() {
		assert.Contains(t, html, label)
	}
	assert.Contains(t, html, "#1f4e79")
	assert.Contains(t, html, "#5b9bd5")
}
