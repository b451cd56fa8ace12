package atlas

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Row maps column names to string values.
type Row map[string]string

// Table is an in-memory metadata table: ordered columns plus rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// LoadError reports a local table file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadTable reads a tabular file into a Table. The delimiter follows the
// extension (.tsv is tab, anything else comma); a tab-delimited parse that
// yields a single column is retried as comma, since some releases ship CSV
// content under a .tsv name.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("file is empty")}
	}

	delim := ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		delim = '\t'
	}

	table, err := parseTable(string(data), delim)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if delim == '\t' && len(table.Columns) == 1 && strings.Contains(table.Columns[0], ",") {
		if retry, err := parseTable(string(data), ','); err == nil {
			table = retry
		}
	}

	return table, nil
}

func parseTable(data string, delim rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	columns := make([]string, 0, len(records[0]))
	for _, name := range records[0] {
		columns = append(columns, strings.TrimSpace(name))
	}
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "") {
		return nil, fmt.Errorf("no parsable header row")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}
