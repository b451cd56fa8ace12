package atlas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shrihari/chipatlas/internal/atomicfile"
)

const (
	// ManifestFilename records the source and timing of downloads per category.
	ManifestFilename = "manifest.json"

	manifestSchemaV1 = 1
)

// ManifestEntry records one category's last successful download.
type ManifestEntry struct {
	URL       string `json:"url"`
	File      string `json:"file"`
	FetchedAt string `json:"fetched_at"`
}

// Manifest maps categories to their download records.
type Manifest struct {
	SchemaVersion int                      `json:"schema_version"`
	Entries       map[string]ManifestEntry `json:"entries,omitempty"`
}

// Record stores or replaces the entry for a category.
func (m *Manifest) Record(c Category, entry ManifestEntry) {
	if m.Entries == nil {
		m.Entries = make(map[string]ManifestEntry, 1)
	}
	m.Entries[string(c)] = entry
}

// Entry returns the recorded download for a category, if any.
func (m *Manifest) Entry(c Category) (ManifestEntry, bool) {
	entry, ok := m.Entries[string(c)]
	return entry, ok
}

// ReadManifest loads the manifest from a data directory.
// Returns an empty manifest when the file does not exist.
func ReadManifest(dataDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, ManifestFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{SchemaVersion: manifestSchemaV1}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.SchemaVersion == 0 {
		m.SchemaVersion = manifestSchemaV1
	}
	return &m, nil
}

// WriteManifest writes the manifest atomically into a data directory.
func WriteManifest(dataDir string, m *Manifest) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize manifest: %w", err)
	}
	raw = append(raw, '\n')

	if err := atomicfile.WriteFile(filepath.Join(dataDir, ManifestFilename), raw, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
