package config

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// Writer serializes configurations back to disk
type Writer struct{}

// NewWriter creates a new configuration writer
func NewWriter() *Writer {
	return &Writer{}
}

// Marshal encodes a configuration in the given format
func (w *Writer) Marshal(config *domain.Configuration, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		data, err := yaml.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}
}

// SaveToFile writes a configuration, choosing the format from the extension
func (w *Writer) SaveToFile(config *domain.Configuration, filename string) error {
	data, err := w.Marshal(config, FormatFromPath(filename))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
