package ui

import (
	"strings"
)

// Table provides minimal table rendering using spacing alignment, no borders.
type Table struct {
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a new table with the specified number of columns
func NewTable(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if len(cells[i]) > t.colWidths[i] {
			t.colWidths[i] = len(cells[i])
		}
	}
	t.rows = append(t.rows, row)
}

// String renders the table as a string
func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	padding := strings.Repeat(" ", t.colPadding)

	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(padding)
			}
			if i < len(row)-1 {
				sb.WriteString(cell)
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-len(cell)))
			} else {
				sb.WriteString(cell)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// maxPreviewColumns caps how many columns a preview table shows.
const maxPreviewColumns = 5

// essentialColumns are preferred for previews when present, in this order.
var essentialColumns = []string{"Experimental ID", "Antigen", "Cell type", "Genome assembly", "Title"}

// PreviewColumns selects the columns worth showing in a terminal preview:
// the essential metadata columns when present, otherwise the first few.
func PreviewColumns(columns []string) []string {
	var picked []string
	for _, want := range essentialColumns {
		for _, col := range columns {
			if col == want {
				picked = append(picked, col)
				break
			}
		}
	}
	if len(picked) > 0 {
		return picked
	}
	if len(columns) > maxPreviewColumns {
		return columns[:maxPreviewColumns]
	}
	return columns
}

// RenderPreview renders rows as a header + body table, truncating cell
// values so each column stays readable.
func RenderPreview(columns []string, rows []map[string]string, maxCell int) string {
	if maxCell <= 0 {
		maxCell = 32
	}

	t := NewTable(len(columns))

	// Header cells stay unstyled; ANSI sequences would skew column widths.
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = truncate(col, maxCell)
	}
	t.AddRow(header...)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = truncate(row[col], maxCell)
		}
		t.AddRow(cells...)
	}

	return t.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
