package atlas

import (
	"testing"
)

func TestReadManifestMissing(t *testing.T) {
	t.Parallel()

	m, err := ReadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if m.SchemaVersion != manifestSchemaV1 {
		t.Fatalf("schema version = %d, want %d", m.SchemaVersion, manifestSchemaV1)
	}
	if _, ok := m.Entry(ExperimentList); ok {
		t.Fatalf("empty manifest has an entry")
	}
}

func TestManifestRecordAndReload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	m := &Manifest{SchemaVersion: manifestSchemaV1}
	m.Record(AnalysisList, ManifestEntry{
		URL:       "https://example.invalid/analysis.zip",
		File:      "chip_atlas_analysis_list.tsv",
		FetchedAt: "2026-03-04T05:06:07Z",
	})
	if err := WriteManifest(dir, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	// Recording again replaces the entry rather than duplicating it.
	m.Record(AnalysisList, ManifestEntry{
		URL:       "https://example.invalid/analysis2.zip",
		File:      "chip_atlas_analysis_list.tsv",
		FetchedAt: "2026-03-05T05:06:07Z",
	})
	if err := WriteManifest(dir, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}

	loaded, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	entry, ok := loaded.Entry(AnalysisList)
	if !ok {
		t.Fatalf("reloaded manifest missing entry")
	}
	if entry.URL != "https://example.invalid/analysis2.zip" {
		t.Fatalf("entry URL = %q, want the replacing record", entry.URL)
	}
	if len(loaded.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(loaded.Entries))
	}
}
