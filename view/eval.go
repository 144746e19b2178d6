package view

import (
	"fmt"

	"github.com/gofhir/fhirpath"
	"github.com/gofhir/fhirpath/types"
)

// compiledColumn pairs a column with its compiled FHIRPath expression.
type compiledColumn struct {
	name string
	expr *fhirpath.Expression
}

// compile compiles all column expressions up front so workers can share
// them without locking. Duplicate paths share one compiled expression.
func compile(def *Definition) ([]compiledColumn, int, error) {
	cache := make(map[string]*fhirpath.Expression, len(def.Columns))
	cols := make([]compiledColumn, 0, len(def.Columns))
	compiled := 0

	for _, col := range def.Columns {
		expr, ok := cache[col.Path]
		if !ok {
			var err error
			expr, err = fhirpath.Compile(col.Path)
			if err != nil {
				return nil, compiled, fmt.Errorf("compile column %q path %q: %w", col.Name, col.Path, err)
			}
			cache[col.Path] = expr
			compiled++
		}
		cols = append(cols, compiledColumn{name: col.Name, expr: expr})
	}
	return cols, compiled, nil
}

// evalCell evaluates one column against a resource. An empty collection
// yields the empty string; a multi-valued result keeps only the first
// item, which is all the tabular projection can carry.
func evalCell(col compiledColumn, resource []byte) (string, error) {
	result, err := col.expr.Evaluate(resource)
	if err != nil {
		return "", fmt.Errorf("evaluate column %q: %w", col.name, err)
	}
	if len(result) == 0 {
		return "", nil
	}
	return scalarString(result[0]), nil
}

// scalarString renders one FHIRPath result item as a cell value.
func scalarString(item any) string {
	switch v := item.(type) {
	case types.Boolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
