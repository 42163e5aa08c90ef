package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Limits on source documents, mitigating resource exhaustion through
// oversized files or exponential alias expansion.
const (
	maxDocumentSize  = 100 * 1024 // 100 KB per file
	maxDocumentNodes = 1000       // max nodes in the parsed tree
	maxFolderSize    = 10 * 1024 * 1024
)

// readDocument reads a source file, enforcing the per-file size limit
// before the contents are loaded.
func readDocument(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	if info.Size() > maxDocumentSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), maxDocumentSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// decodeDocument unmarshals YAML into out after checking node complexity.
func decodeDocument[T any](data []byte, out *T) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if n := countNodes(raw); n > maxDocumentNodes {
		return fmt.Errorf("document too complex: %d nodes (max %d)", n, maxDocumentNodes)
	}
	return yaml.Unmarshal(data, out)
}

// countNodes recursively counts map keys, list items, and scalars. The count
// runs after parsing so expanded aliases are counted at full size.
func countNodes(v any) int {
	switch val := v.(type) {
	case map[string]any:
		n := len(val)
		for _, item := range val {
			n += countNodes(item)
		}
		return n
	case []any:
		n := len(val)
		for _, item := range val {
			n += countNodes(item)
		}
		return n
	default:
		return 1
	}
}
