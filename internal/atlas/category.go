// Package atlas implements the ChIP-Atlas metadata pipeline: fetching the
// upstream archive tables, loading them, filtering rows by a search term,
// and exporting matches to CSV.
package atlas

import (
	"fmt"
	"strings"
)

// Category identifies one of the five ChIP-Atlas metadata tables.
type Category string

const (
	ExperimentList Category = "experiment_list"
	FileList       Category = "file_list"
	AnalysisList   Category = "analysis_list"
	AntigenList    Category = "antigen_list"
	CelltypeList   Category = "celltype_list"
)

// DefaultBaseURL is the upstream archive root for the LATEST release.
const DefaultBaseURL = "https://dbarchive.biosciencedbc.jp/data/chip-atlas/LATEST"

// Categories returns all metadata categories in display order.
func Categories() []Category {
	return []Category{ExperimentList, FileList, AnalysisList, AntigenList, CelltypeList}
}

// ParseCategory validates a user-supplied category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(s)))
	switch c {
	case ExperimentList, FileList, AnalysisList, AntigenList, CelltypeList:
		return c, nil
	}
	return "", fmt.Errorf("unknown metadata type %q (expected one of: %s)", s, strings.Join(categoryNames(), ", "))
}

func categoryNames() []string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

// Source describes where a category's table comes from and how it is searched.
type Source struct {
	Category   Category
	ArchiveURL string
	// Members are the file names expected inside the archive, in the order
	// they should be preferred when both are present.
	Members []string
	// Columns are target-column aliases tried in order when resolving the
	// column a search term is matched against. Upstream header names vary
	// slightly between releases, so resolution also accepts near-miss
	// headers (see ResolveColumn).
	Columns []string
}

func (c Category) archiveName() string {
	return "chip_atlas_" + string(c) + ".zip"
}

func (c Category) memberNames() []string {
	base := "chip_atlas_" + string(c)
	return []string{base + ".tsv", base + ".csv"}
}

func (c Category) defaultColumns() []string {
	if c == CelltypeList {
		return []string{"Cell type"}
	}
	// The antigen-led tables fall back to the cell type column when no
	// antigen-like header exists.
	return []string{"Antigen", "Cell type"}
}

// Catalog resolves category sources, applying any configured overrides.
type Catalog struct {
	baseURL   string
	overrides map[Category]SourceOverride
}

// NewCatalog builds a catalog rooted at baseURL (DefaultBaseURL when empty).
func NewCatalog(baseURL string) *Catalog {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Catalog{baseURL: base}
}

// Source returns the effective source spec for a category.
func (cat *Catalog) Source(c Category) Source {
	src := Source{
		Category:   c,
		ArchiveURL: cat.baseURL + "/" + c.archiveName(),
		Members:    c.memberNames(),
		Columns:    c.defaultColumns(),
	}

	if ov, ok := cat.overrides[c]; ok {
		if ov.URL != "" {
			src.ArchiveURL = ov.URL
		}
		if len(ov.Columns) > 0 {
			src.Columns = ov.Columns
		}
	}
	return src
}
