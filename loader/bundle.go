package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
)

// bundle mirrors the collection Bundle wrapper the view runner consumes.
type bundle struct {
	ResourceType string        `json:"resourceType"`
	Type         string        `json:"type"`
	Entry        []bundleEntry `json:"entry"`
}

type bundleEntry struct {
	Resource json.RawMessage `json:"resource"`
}

// Bundle wraps raw resources in a collection Bundle document.
func Bundle(resources [][]byte) ([]byte, error) {
	b := bundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Entry:        make([]bundleEntry, 0, len(resources)),
	}
	for _, r := range resources {
		b.Entry = append(b.Entry, bundleEntry{Resource: json.RawMessage(r)})
	}

	doc, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	return doc, nil
}

// ReadBundle reads a pre-built Bundle document from a file.
func ReadBundle(path string) ([]byte, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	rt, err := jsonparser.GetString(doc, "resourceType")
	if err != nil {
		return nil, fmt.Errorf("%s: not a FHIR document: %w", path, err)
	}
	if rt != "Bundle" {
		return nil, fmt.Errorf("%s: expected a Bundle, got %s", path, rt)
	}
	return doc, nil
}
