package loader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"
)

// maxLineSize bounds a single NDJSON line. Synthea resources run to a
// few hundred KB; 16 MB leaves ample headroom.
const maxLineSize = 16 << 20

// ReadNDJSON reads newline-delimited JSON resources from a file. Blank
// lines are skipped. Every non-blank line must carry a resourceType.
func ReadNDJSON(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ndjson: %w", err)
	}
	defer f.Close()

	var resources [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if _, err := jsonparser.GetString(line, "resourceType"); err != nil {
			return nil, fmt.Errorf("%s:%d: line is not a FHIR resource: %w", path, lineNo, err)
		}
		resource := make([]byte, len(line))
		copy(resource, line)
		resources = append(resources, resource)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ndjson %s: %w", path, err)
	}

	zap.L().Debug("ndjson loaded", zap.String("path", path), zap.Int("resources", len(resources)))
	return resources, nil
}
