package atlas

import (
	"errors"
	"fmt"
	"strings"
)

// Status classifies the outcome of one pipeline run.
type Status string

const (
	// StatusOK means the table was searched; Matches may be zero.
	StatusOK Status = "ok"
	// StatusUnavailable means the upstream source could not be fetched.
	StatusUnavailable Status = "unavailable"
	// StatusFailed means loading, filtering, or exporting failed.
	StatusFailed Status = "failed"
)

// Stable error codes surfaced in JSON output and MCP responses.
const (
	CodeUnavailable    = "SOURCE_UNAVAILABLE"
	CodeLoadError      = "LOAD_ERROR"
	CodeColumnNotFound = "COLUMN_NOT_FOUND"
	CodeExportError    = "EXPORT_ERROR"
)

// PreviewRows caps the number of matched rows carried in a Report preview.
const PreviewRows = 10

// Pipeline runs one fetch -> load -> filter -> export sequence per request.
type Pipeline struct {
	Fetcher  *Fetcher
	Exporter *Exporter
}

// NewPipeline wires a pipeline over a data directory and results directory.
func NewPipeline(dataDir, resultsDir string, catalog *Catalog) *Pipeline {
	return &Pipeline{
		Fetcher:  NewFetcher(dataDir, catalog),
		Exporter: &Exporter{ResultsDir: resultsDir},
	}
}

// Report is the aggregated outcome of one Handle call. Every invocation
// produces a Report; failures are carried in it rather than thrown.
type Report struct {
	Category   Category `json:"metadata_type"`
	Term       string   `json:"term"`
	Status     Status   `json:"status"`
	Cached     bool     `json:"cached"`
	Column     string   `json:"column,omitempty"`
	Columns    []string `json:"columns,omitempty"`
	Matches    int      `json:"matches"`
	OutputPath string   `json:"output_path,omitempty"`
	Preview    []Row    `json:"preview,omitempty"`
	ErrorCode  string   `json:"error_code,omitempty"`
	Detail     string   `json:"detail,omitempty"`
}

// Handle runs the full pipeline for one (category, term) pair. It always
// returns a Report; only programming errors panic.
func (p *Pipeline) Handle(c Category, term string) *Report {
	report := &Report{Category: c, Term: term, Status: StatusOK}

	fetched, err := p.Fetcher.EnsureLocal(c)
	if err != nil {
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			report.Status = StatusUnavailable
			report.ErrorCode = CodeUnavailable
			report.Detail = unavailable.Error()
			return report
		}
		report.Status = StatusFailed
		report.ErrorCode = CodeLoadError
		report.Detail = err.Error()
		return report
	}
	report.Cached = fetched.Cached

	table, err := LoadTable(fetched.Path)
	if err != nil {
		report.Status = StatusFailed
		report.ErrorCode = CodeLoadError
		report.Detail = err.Error()
		return report
	}
	report.Columns = table.Columns

	rs, err := FilterTable(table, p.Fetcher.Catalog.Source(c), term)
	if err != nil {
		var colErr *ColumnError
		if errors.As(err, &colErr) {
			report.Status = StatusFailed
			report.ErrorCode = CodeColumnNotFound
			report.Detail = colErr.Error()
			return report
		}
		report.Status = StatusFailed
		report.ErrorCode = CodeLoadError
		report.Detail = err.Error()
		return report
	}

	report.Column = rs.Column
	report.Matches = len(rs.Rows)
	if len(rs.Rows) > PreviewRows {
		report.Preview = rs.Rows[:PreviewRows]
	} else {
		report.Preview = rs.Rows
	}

	if report.Matches == 0 {
		return report
	}

	outPath, err := p.Exporter.Export(rs, term, c)
	if err != nil {
		report.Status = StatusFailed
		report.ErrorCode = CodeExportError
		report.Detail = err.Error()
		return report
	}
	report.OutputPath = outPath

	return report
}

// Summary renders the human-readable multi-line outcome of a run.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Category: %s\n", r.Category)
	fmt.Fprintf(&sb, "Search: %q", r.Term)
	if r.Column != "" {
		fmt.Fprintf(&sb, " (column: %s)", r.Column)
	}
	sb.WriteString("\n")

	switch r.Status {
	case StatusUnavailable:
		fmt.Fprintf(&sb, "Source unavailable for %s; no data fetched.\n", r.Category)
		if r.Detail != "" {
			fmt.Fprintf(&sb, "  %s\n", r.Detail)
		}
	case StatusFailed:
		fmt.Fprintf(&sb, "Failed (%s) for %q in %s.\n", r.ErrorCode, r.Term, r.Category)
		if r.Detail != "" {
			fmt.Fprintf(&sb, "  %s\n", r.Detail)
		}
	default:
		if r.Matches == 0 {
			fmt.Fprintf(&sb, "No entries found for %q in %s.\n", r.Term, r.Category)
			break
		}
		fmt.Fprintf(&sb, "Found %d matches\n", r.Matches)
		if r.OutputPath != "" {
			fmt.Fprintf(&sb, "Saved: %s\n", r.OutputPath)
		}
	}

	return sb.String()
}
