package atlas

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		term string
		c    Category
		want string
	}{
		{"TP53", AnalysisList, "chip_atlas_TP53_analysis_list.csv"},
		{"h3k4me3", ExperimentList, "chip_atlas_h3k4me3_experiment_list.csv"},
		{" TP53 ", AntigenList, "chip_atlas_TP53_antigen_list.csv"},
		{"a/b\\c:d", FileList, "chip_atlas_a-b-c-d_file_list.csv"},
	}
	for _, tt := range tests {
		if got := ExportFilename(tt.term, tt.c); got != tt.want {
			t.Errorf("ExportFilename(%q, %s) = %q, want %q", tt.term, tt.c, got, tt.want)
		}
	}
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	rs := &ResultSet{
		Columns: []string{"Antigen", "Title"},
		Column:  "Antigen",
		Rows: []Row{
			{"Antigen": "TP53", "Title": "Tumor suppressor, p53"},
			{"Antigen": "TP53", "Title": "line one\nline two"},
			{"Antigen": "TP53", "Title": `has "quotes"`},
		},
	}

	e := &Exporter{ResultsDir: t.TempDir()}
	path, err := e.Export(rs, "TP53", AnalysisList)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want header + 3 rows", len(records))
	}
	if records[0][0] != "Antigen" || records[0][1] != "Title" {
		t.Fatalf("header = %v", records[0])
	}
	for i, row := range rs.Rows {
		if records[i+1][1] != row["Title"] {
			t.Fatalf("row %d Title = %q, want %q", i, records[i+1][1], row["Title"])
		}
	}
}

func TestExportOverwritesSameFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := &Exporter{ResultsDir: dir}

	first := &ResultSet{
		Columns: []string{"Antigen"},
		Rows:    []Row{{"Antigen": "TP53"}, {"Antigen": "TP53BP1"}},
	}
	second := &ResultSet{
		Columns: []string{"Antigen"},
		Rows:    []Row{{"Antigen": "TP53"}},
	}

	path1, err := e.Export(first, "TP53", AnalysisList)
	if err != nil {
		t.Fatalf("first Export() error = %v", err)
	}
	path2, err := e.Export(second, "TP53", AnalysisList)
	if err != nil {
		t.Fatalf("second Export() error = %v", err)
	}
	if path1 != path2 {
		t.Fatalf("paths differ: %q vs %q", path1, path2)
	}

	data, err := os.ReadFile(path2)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Fatalf("lines = %d, want header + 1 row from the second export", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("results dir has %d entries, want 1", len(entries))
	}
}

func TestExportCreatesResultsDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "results")
	e := &Exporter{ResultsDir: dir}

	rs := &ResultSet{Columns: []string{"Antigen"}, Rows: []Row{{"Antigen": "TP53"}}}
	path, err := e.Export(rs, "TP53", ExperimentList)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if filepath.Dir(path) != mustAbs(t, dir) {
		t.Fatalf("export path %q not under %q", path, dir)
	}
}

func mustAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatalf("abs %q: %v", p, err)
	}
	return abs
}
