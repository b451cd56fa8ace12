package atlas

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourcesFilename is the optional per-data-dir source override file.
const SourcesFilename = "sources.yaml"

// SourceOverride customizes a single category's source.
type SourceOverride struct {
	// URL replaces the archive URL for this category.
	URL string `yaml:"url,omitempty"`
	// Columns replaces the target-column alias list for this category.
	Columns []string `yaml:"columns,omitempty"`
}

// SourcesFile is the on-disk shape of sources.yaml.
type SourcesFile struct {
	BaseURL    string                    `yaml:"base_url,omitempty"`
	Categories map[string]SourceOverride `yaml:"categories,omitempty"`
}

// LoadSources reads a sources.yaml override file.
// Returns nil (not an error) when the file does not exist.
func LoadSources(path string) (*SourcesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var sf SourcesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}

	for name := range sf.Categories {
		if _, err := ParseCategory(name); err != nil {
			return nil, fmt.Errorf("sources file %s: %w", path, err)
		}
	}
	return &sf, nil
}

// ApplyOverrides merges a sources file into the catalog.
// A nil sources file is a no-op.
func (cat *Catalog) ApplyOverrides(sf *SourcesFile) {
	if sf == nil {
		return
	}
	if sf.BaseURL != "" {
		*cat = *NewCatalog(sf.BaseURL)
	}
	if len(sf.Categories) == 0 {
		return
	}
	if cat.overrides == nil {
		cat.overrides = make(map[Category]SourceOverride, len(sf.Categories))
	}
	for name, ov := range sf.Categories {
		c, err := ParseCategory(name)
		if err != nil {
			continue
		}
		cat.overrides[c] = ov
	}
}
