package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/gofhir/tpd/view"
)

// ReadViewDefinition reads and parses a ViewDefinition document.
func ReadViewDefinition(path string) (*view.Definition, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ViewDefinition: %w", err)
	}
	def, err := view.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// ReadRows reads a pre-run tabular projection: a JSON array of flat
// objects, as produced by running a ViewDefinition elsewhere. Scalar
// cell values are stringified; null becomes the empty string.
func ReadRows(path string) ([]view.Row, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%s: not a JSON row array: %w", path, err)
	}

	rows := make([]view.Row, 0, len(raw))
	for i, obj := range raw {
		row := make(view.Row, len(obj))
		for name, value := range obj {
			cell, err := cellString(value)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %q: %w", path, i, name, err)
			}
			row[name] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellString stringifies one pre-run cell value.
func cellString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cell is not a scalar (%T)", value)
	}
}
