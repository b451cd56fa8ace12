package atlas

import (
	"fmt"
	"strings"
)

// ResultSet holds the rows of a table whose target-column value matched a
// search term, preserving the original column and row order.
type ResultSet struct {
	Columns []string
	Rows    []Row
	// Column is the resolved target column the term was matched against.
	Column string
}

// ColumnError reports that none of a category's target-column aliases could
// be resolved against a loaded table's header.
type ColumnError struct {
	Category Category
	Wanted   []string
	Have     []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("no %s column found in %s table (have: %s)",
		strings.Join(e.Wanted, " or "), e.Category, strings.Join(e.Have, ", "))
}

// ResolveColumn picks the column a search term should be matched against.
//
// For each alias in order: an exact case-insensitive header match wins;
// otherwise the shortest header containing the alias as a substring is used.
// Mirrors the upstream tables' habit of renaming "Antigen" to things like
// "Antigen class" between releases.
func ResolveColumn(t *Table, src Source) (string, bool) {
	for _, alias := range src.Columns {
		want := strings.ToLower(strings.TrimSpace(alias))
		if want == "" {
			continue
		}

		for _, col := range t.Columns {
			if strings.ToLower(strings.TrimSpace(col)) == want {
				return col, true
			}
		}

		best := ""
		for _, col := range t.Columns {
			if !strings.Contains(strings.ToLower(col), want) {
				continue
			}
			if best == "" || len(col) < len(best) {
				best = col
			}
		}
		if best != "" {
			return best, true
		}
	}
	return "", false
}

// FilterTable returns the rows whose target-column value contains term,
// case-insensitively. A zero-row result is valid, not an error.
func FilterTable(t *Table, src Source, term string) (*ResultSet, error) {
	col, ok := ResolveColumn(t, src)
	if !ok {
		return nil, &ColumnError{Category: src.Category, Wanted: src.Columns, Have: t.Columns}
	}

	needle := strings.ToLower(term)
	rs := &ResultSet{Columns: t.Columns, Column: col}
	for _, row := range t.Rows {
		if strings.Contains(strings.ToLower(row[col]), needle) {
			rs.Rows = append(rs.Rows, row)
		}
	}
	return rs, nil
}
