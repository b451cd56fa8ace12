package atlas

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shrihari/chipatlas/internal/atomicfile"
)

// ExportError reports a result set that could not be written out.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Exporter writes filtered result sets as CSV into a results directory.
type Exporter struct {
	ResultsDir string
}

// ExportFilename returns the deterministic CSV name for a (term, category)
// pair. The term's case is preserved; path separators are replaced so the
// name can never escape the results directory.
func ExportFilename(term string, c Category) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, strings.TrimSpace(term))
	return fmt.Sprintf("chip_atlas_%s_%s.csv", safe, c)
}

// Export writes rs as CSV (header plus rows, original order) and returns the
// absolute path written. An existing file of the same name is overwritten.
func (e *Exporter) Export(rs *ResultSet, term string, c Category) (string, error) {
	if err := os.MkdirAll(e.ResultsDir, 0o755); err != nil {
		return "", &ExportError{Path: e.ResultsDir, Err: err}
	}

	outPath := filepath.Join(e.ResultsDir, ExportFilename(term, c))

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rs.Columns); err != nil {
		return "", &ExportError{Path: outPath, Err: err}
	}
	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i, col := range rs.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return "", &ExportError{Path: outPath, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", &ExportError{Path: outPath, Err: err}
	}

	if err := atomicfile.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return "", &ExportError{Path: outPath, Err: err}
	}

	abs, err := filepath.Abs(outPath)
	if err != nil {
		return outPath, nil
	}
	return abs, nil
}
