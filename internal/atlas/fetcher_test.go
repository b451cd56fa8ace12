package atlas

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testBaseURL = "https://example.invalid/base"

func TestEnsureLocalDownloadsAndCaches(t *testing.T) {
	t.Parallel()

	table := "Experimental ID\tAntigen\tCell type\nSRX001\tTP53\tHeLa\n"
	archive := buildZip(t, map[string]string{
		"chip_atlas_experiment_list.tsv": table,
	})

	dataDir := t.TempDir()
	f := newTestFetcher(dataDir, map[string][]byte{
		"/base/chip_atlas_experiment_list.zip": archive,
	})

	result, err := f.EnsureLocal(ExperimentList)
	if err != nil {
		t.Fatalf("EnsureLocal() error = %v", err)
	}
	if result.Cached {
		t.Fatalf("first EnsureLocal() reported cached")
	}
	if got := filepath.Base(result.Path); got != "chip_atlas_experiment_list.tsv" {
		t.Fatalf("path = %q, want chip_atlas_experiment_list.tsv", got)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read extracted table: %v", err)
	}
	if string(data) != table {
		t.Fatalf("extracted table = %q, want %q", data, table)
	}

	manifest, err := ReadManifest(dataDir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	entry, ok := manifest.Entry(ExperimentList)
	if !ok {
		t.Fatalf("manifest has no entry for experiment_list")
	}
	if entry.File != "chip_atlas_experiment_list.tsv" {
		t.Fatalf("manifest file = %q", entry.File)
	}
	if entry.FetchedAt == "" {
		t.Fatalf("manifest fetched_at is empty")
	}

	// Second call must not hit the network.
	f.HTTPClient = &http.Client{Transport: failingTransport{}}
	again, err := f.EnsureLocal(ExperimentList)
	if err != nil {
		t.Fatalf("cached EnsureLocal() error = %v", err)
	}
	if !again.Cached {
		t.Fatalf("second EnsureLocal() not reported cached")
	}
}

func TestEnsureLocalUnavailableForEveryCategory(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	f := newTestFetcher(dataDir, nil) // every URL 404s

	for _, c := range Categories() {
		_, err := f.EnsureLocal(c)
		var unavailable *UnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("EnsureLocal(%s) error = %v, want *UnavailableError", c, err)
		}
		if unavailable.Category != c {
			t.Fatalf("UnavailableError category = %s, want %s", unavailable.Category, c)
		}
	}
}

func TestEnsureLocalArchiveWithoutTable(t *testing.T) {
	t.Parallel()

	archive := buildZip(t, map[string]string{
		"README.txt": "no tables here",
	})

	f := newTestFetcher(t.TempDir(), map[string][]byte{
		"/base/chip_atlas_antigen_list.zip": archive,
	})

	_, err := f.EnsureLocal(AntigenList)
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("EnsureLocal() error = %v, want *UnavailableError", err)
	}
}

func TestEnsureLocalPrefersTSVMember(t *testing.T) {
	t.Parallel()

	archive := buildZip(t, map[string]string{
		"chip_atlas_file_list.tsv": "Antigen\nTP53\n",
		"chip_atlas_file_list.csv": "Antigen\nTP53\n",
	})

	f := newTestFetcher(t.TempDir(), map[string][]byte{
		"/base/chip_atlas_file_list.zip": archive,
	})

	result, err := f.EnsureLocal(FileList)
	if err != nil {
		t.Fatalf("EnsureLocal() error = %v", err)
	}
	if filepath.Ext(result.Path) != ".tsv" {
		t.Fatalf("path = %q, want the .tsv member", result.Path)
	}
}

func TestEnsureLocalLeavesNoStagingDirs(t *testing.T) {
	t.Parallel()

	archive := buildZip(t, map[string]string{
		"chip_atlas_celltype_list.tsv": "Cell type\nHeLa\n",
	})

	dataDir := t.TempDir()
	f := newTestFetcher(dataDir, map[string][]byte{
		"/base/chip_atlas_celltype_list.zip": archive,
	})

	if _, err := f.EnsureLocal(CelltypeList); err != nil {
		t.Fatalf("EnsureLocal() error = %v", err)
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Fatalf("unexpected directory left in data dir: %s", e.Name())
		}
	}
}

func TestEnsureWithinRejectsEscape(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := ensureWithin(base, filepath.Join(base, "ok.tsv")); err != nil {
		t.Fatalf("ensureWithin(inside) error = %v", err)
	}
	if err := ensureWithin(base, filepath.Join(base, "..", "evil.tsv")); err == nil {
		t.Fatalf("ensureWithin(escape) did not fail")
	}
}

// newTestFetcher wires a fetcher whose HTTP client serves bodies by URL path.
func newTestFetcher(dataDir string, bodies map[string][]byte) *Fetcher {
	f := NewFetcher(dataDir, NewCatalog(testBaseURL))
	f.HTTPClient = &http.Client{Transport: fakeTransport{Bodies: bodies}}
	f.Now = func() time.Time {
		return time.Date(2026, time.March, 4, 5, 6, 7, 0, time.UTC)
	}
	return f
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %q: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

type fakeTransport struct {
	StatusCode int
	Bodies     map[string][]byte
}

func (t fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, ok := t.Bodies[req.URL.Path]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}, nil
	}
	status := t.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}, nil
}

type failingTransport struct{}

func (failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return nil, errors.New("network access not expected")
}
