package atlas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSourcesMissingFile(t *testing.T) {
	t.Parallel()

	sf, err := LoadSources(filepath.Join(t.TempDir(), SourcesFilename))
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}
	if sf != nil {
		t.Fatalf("LoadSources() = %+v, want nil for missing file", sf)
	}
}

func TestLoadSourcesRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SourcesFilename)
	content := "categories:\n  bogus_list:\n    url: https://example.invalid/x.zip\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources: %v", err)
	}

	_, err := LoadSources(path)
	if err == nil || !strings.Contains(err.Error(), "bogus_list") {
		t.Fatalf("LoadSources() error = %v, want unknown category error", err)
	}
}

func TestApplyOverridesURLAndColumns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), SourcesFilename)
	content := `categories:
  analysis_list:
    url: https://mirror.invalid/analysis.zip
    columns: ["Antigen", "Antigen class"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources: %v", err)
	}

	sf, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources() error = %v", err)
	}

	catalog := NewCatalog("")
	catalog.ApplyOverrides(sf)

	src := catalog.Source(AnalysisList)
	if src.ArchiveURL != "https://mirror.invalid/analysis.zip" {
		t.Fatalf("ArchiveURL = %q", src.ArchiveURL)
	}
	if len(src.Columns) != 2 || src.Columns[1] != "Antigen class" {
		t.Fatalf("Columns = %v", src.Columns)
	}

	// Other categories keep their defaults.
	other := catalog.Source(ExperimentList)
	if !strings.HasPrefix(other.ArchiveURL, DefaultBaseURL) {
		t.Fatalf("untouched category URL = %q", other.ArchiveURL)
	}
}

func TestApplyOverridesBaseURL(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog("")
	catalog.ApplyOverrides(&SourcesFile{BaseURL: "https://mirror.invalid/atlas/"})

	src := catalog.Source(FileList)
	want := "https://mirror.invalid/atlas/chip_atlas_file_list.zip"
	if src.ArchiveURL != want {
		t.Fatalf("ArchiveURL = %q, want %q", src.ArchiveURL, want)
	}
}

func TestApplyOverridesNilIsNoop(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog("")
	catalog.ApplyOverrides(nil)

	src := catalog.Source(CelltypeList)
	if !strings.HasPrefix(src.ArchiveURL, DefaultBaseURL) {
		t.Fatalf("ArchiveURL = %q, want default base", src.ArchiveURL)
	}
}
