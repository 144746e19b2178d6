package view

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Definition is a parsed SQL-on-FHIR ViewDefinition: a name, the resource
// type it projects, and a flattened column list.
type Definition struct {
	Name     string
	Resource string
	Columns  []Column
}

// Column is one output column of a view.
type Column struct {
	Name string
	Path string
}

// viewDefinition mirrors the ViewDefinition JSON structure, limited to
// the elements this runner supports.
type viewDefinition struct {
	ResourceType string       `json:"resourceType"`
	Name         string       `json:"name"`
	Resource     string       `json:"resource"`
	Select       []viewSelect `json:"select"`
}

type viewSelect struct {
	Column   []viewColumn      `json:"column"`
	Select   []viewSelect      `json:"select"`
	ForEach  string            `json:"forEach"`
	UnionAll []json.RawMessage `json:"unionAll"`
}

type viewColumn struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Parse parses a ViewDefinition JSON document into a Definition. The
// select tree is flattened into a single column list; forEach and
// unionAll selects are not supported and cause an error.
func Parse(doc []byte) (*Definition, error) {
	var vd viewDefinition
	if err := json.Unmarshal(doc, &vd); err != nil {
		return nil, fmt.Errorf("parse ViewDefinition: %w", err)
	}
	if vd.ResourceType != "ViewDefinition" {
		return nil, fmt.Errorf("expected resourceType ViewDefinition, got %q", vd.ResourceType)
	}
	if vd.Resource == "" {
		return nil, fmt.Errorf("ViewDefinition %q has no resource element", vd.Name)
	}

	def := &Definition{
		Name:     vd.Name,
		Resource: vd.Resource,
	}
	if err := collectColumns(vd.Select, def); err != nil {
		return nil, fmt.Errorf("ViewDefinition %q: %w", vd.Name, err)
	}
	if len(def.Columns) == 0 {
		return nil, fmt.Errorf("ViewDefinition %q selects no columns", vd.Name)
	}
	return def, nil
}

// collectColumns flattens nested selects into def.Columns.
func collectColumns(selects []viewSelect, def *Definition) error {
	for _, sel := range selects {
		if sel.ForEach != "" {
			return fmt.Errorf("forEach selects are not supported")
		}
		if len(sel.UnionAll) > 0 {
			return fmt.Errorf("unionAll selects are not supported")
		}
		for _, col := range sel.Column {
			if col.Name == "" || col.Path == "" {
				return fmt.Errorf("column with empty name or path")
			}
			def.Columns = append(def.Columns, Column{
				Name: col.Name,
				Path: rewritePath(col.Path),
			})
		}
		if err := collectColumns(sel.Select, def); err != nil {
			return err
		}
	}
	return nil
}

// rewritePath maps the SQL-on-FHIR key functions, which the FHIRPath
// engine does not know, onto plain element paths. getResourceKey()
// becomes the resource id; x.getReferenceKey(...) becomes x.reference,
// leaving any type prefix for the analyzer to normalize.
func rewritePath(path string) string {
	if path == "getResourceKey()" {
		return "id"
	}
	if i := strings.Index(path, ".getReferenceKey("); i >= 0 {
		return path[:i] + ".reference"
	}
	return path
}
