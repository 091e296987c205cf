package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/stockcheck/pkg/domain/entities"
	"github.com/vsinha/stockcheck/pkg/infrastructure/repositories/tabular"
)

// HierarchyFile is the YAML description of the tier hierarchy and of the
// column names the inputs use
type HierarchyFile struct {
	Tiers        entities.Hierarchy `yaml:"tiers"`
	Columns      tabular.Columns    `yaml:"columns"`
	IssuedStatus []string           `yaml:"issued_status"`
}

// LoadHierarchyFile reads and validates a hierarchy file. Unknown fields are
// rejected so that a misspelt key does not silently fall back to a default.
func LoadHierarchyFile(path string) (*HierarchyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file: %w", err)
	}

	var file HierarchyFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Tiers) > 0 {
		if err := file.Tiers.Validate(); err != nil {
			return nil, fmt.Errorf("invalid hierarchy file %s: %w", path, err)
		}
	}

	return &file, nil
}

// Hierarchy returns the configured tiers, or the default hierarchy
func (f *HierarchyFile) Hierarchy() entities.Hierarchy {
	if f == nil || len(f.Tiers) == 0 {
		return entities.DefaultHierarchy()
	}
	return f.Tiers
}

// ResolvedColumns returns the default column aliases overlaid with the file's
func (f *HierarchyFile) ResolvedColumns() tabular.Columns {
	if f == nil {
		return tabular.DefaultColumns()
	}
	return tabular.DefaultColumns().Merge(f.Columns)
}
