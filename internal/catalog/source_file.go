package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads the catalog from a local JSON or YAML file.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]RawProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	if isYAML(s.Path) {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
