package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	tpd "github.com/gofhir/tpd"
)

// Fixed output file names, written to the output directory.
const (
	EncountersCSV   = "analysis_encounters.csv"
	ObservationsCSV = "analysis_lab_observations.csv"
	ChartHTML       = "tests_pending_by_day.html"
)

// WriteCSV exports both output tables to dir with their fixed names.
func WriteCSV(dir string, result *tpd.Result) error {
	if err := WriteEncountersCSV(filepath.Join(dir, EncountersCSV), result.Encounters); err != nil {
		return err
	}
	return WriteObservationsCSV(filepath.Join(dir, ObservationsCSV), result.Observations)
}

// WriteEncountersCSV writes the enriched encounter table. Column order
// follows the EncounterRow csv tags and is stable across runs.
func WriteEncountersCSV(path string, rows []tpd.EncounterRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteObservationsCSV writes the joined observation table including the
// derived classification columns.
func WriteObservationsCSV(path string, rows []tpd.JoinedObservation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadEncountersCSV reloads an exported encounter table.
func ReadEncountersCSV(path string) ([]tpd.EncounterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []tpd.EncounterRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// ReadObservationsCSV reloads an exported observation table.
func ReadObservationsCSV(path string) ([]tpd.JoinedObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []tpd.JoinedObservation
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
