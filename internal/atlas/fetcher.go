package atlas

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const fetchRequestTimeout = 60 * time.Second

// UnavailableError reports that a category's upstream source did not return
// usable data. It is the non-fatal failure class: the pipeline reports it as
// a warning instead of aborting.
type UnavailableError struct {
	Category Category
	URL      string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable from %s: %v", e.Category, e.URL, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// FetchResult describes where a category's table lives locally.
type FetchResult struct {
	Category Category
	Path     string
	// Cached is true when the file was already present and no network
	// access happened.
	Cached bool
}

// Fetcher materializes category tables in a local data directory.
type Fetcher struct {
	DataDir    string
	Catalog    *Catalog
	HTTPClient *http.Client
	Now        func() time.Time
}

// NewFetcher creates a fetcher with default HTTP client and catalog.
func NewFetcher(dataDir string, catalog *Catalog) *Fetcher {
	if catalog == nil {
		catalog = NewCatalog("")
	}
	return &Fetcher{
		DataDir: dataDir,
		Catalog: catalog,
	}
}

func (f *Fetcher) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return &http.Client{Timeout: fetchRequestTimeout}
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// EnsureLocal returns the local path for a category's table, downloading and
// extracting the upstream archive when no cached copy exists.
//
// Remote failures return *UnavailableError; callers treat that as a
// reportable outcome, not a crash.
func (f *Fetcher) EnsureLocal(c Category) (*FetchResult, error) {
	if strings.TrimSpace(f.DataDir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	src := f.Catalog.Source(c)

	if err := os.MkdirAll(f.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	for _, member := range src.Members {
		p := filepath.Join(f.DataDir, member)
		if _, err := os.Stat(p); err == nil {
			return &FetchResult{Category: c, Path: p, Cached: true}, nil
		}
	}

	if err := f.download(src); err != nil {
		return nil, err
	}

	for _, member := range src.Members {
		p := filepath.Join(f.DataDir, member)
		if _, err := os.Stat(p); err == nil {
			return &FetchResult{Category: c, Path: p}, nil
		}
	}

	return nil, &UnavailableError{
		Category: c,
		URL:      src.ArchiveURL,
		Err:      fmt.Errorf("archive did not contain any of: %s", strings.Join(src.Members, ", ")),
	}
}

// download fetches the category archive and stages its table members into
// the data directory.
func (f *Fetcher) download(src Source) error {
	req, err := http.NewRequest(http.MethodGet, src.ArchiveURL, nil)
	if err != nil {
		return fmt.Errorf("build archive request: %w", err)
	}

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return &UnavailableError{Category: src.Category, URL: src.ArchiveURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &UnavailableError{
			Category: src.Category,
			URL:      src.ArchiveURL,
			Err:      fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UnavailableError{Category: src.Category, URL: src.ArchiveURL, Err: err}
	}

	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return &UnavailableError{
			Category: src.Category,
			URL:      src.ArchiveURL,
			Err:      fmt.Errorf("read archive: %w", err),
		}
	}

	stagingDir := filepath.Join(f.DataDir, fmt.Sprintf(".staging-%s-%d", src.Category, f.now().UnixNano()))
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(stagingDir)
	}()

	wanted := make(map[string]bool, len(src.Members))
	for _, member := range src.Members {
		wanted[member] = true
	}

	extracted := make([]string, 0, len(src.Members))
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		name := path.Base(filepath.ToSlash(entry.Name))
		if !wanted[name] {
			continue
		}

		destPath := filepath.Join(stagingDir, name)
		if err := ensureWithin(stagingDir, destPath); err != nil {
			return fmt.Errorf("invalid archive member %q: %w", entry.Name, err)
		}

		if err := extractMember(entry, destPath); err != nil {
			return fmt.Errorf("extract %q: %w", name, err)
		}
		extracted = append(extracted, name)
	}

	for _, name := range extracted {
		if err := os.Rename(filepath.Join(stagingDir, name), filepath.Join(f.DataDir, name)); err != nil {
			return fmt.Errorf("install %q: %w", name, err)
		}
	}

	if len(extracted) > 0 {
		if err := f.recordFetch(src, extracted[0]); err != nil {
			return err
		}
	}
	return nil
}

func extractMember(entry *zip.File, destPath string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(out, rc)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}

func (f *Fetcher) recordFetch(src Source, file string) error {
	manifest, err := ReadManifest(f.DataDir)
	if err != nil {
		return err
	}
	manifest.Record(src.Category, ManifestEntry{
		URL:       src.ArchiveURL,
		File:      file,
		FetchedAt: f.now().UTC().Format(time.RFC3339),
	})
	return WriteManifest(f.DataDir, manifest)
}

// ensureWithin rejects candidate paths that escape the base directory.
func ensureWithin(basePath, candidatePath string) error {
	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return err
	}
	candidateAbs, err := filepath.Abs(candidatePath)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(baseAbs, candidateAbs)
	if err != nil {
		return err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory")
	}
	return nil
}
