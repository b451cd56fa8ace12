package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shrihari/chipatlas/internal/atlas"
	"github.com/shrihari/chipatlas/internal/ui"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List metadata types and their sources",
	Long: `List the available metadata types with their search columns and
upstream archive URLs.

Examples:
  chipatlas categories
  chipatlas categories --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := getPipeline().Fetcher.Catalog
		cats := atlas.Categories()

		if isJSONOutput() {
			entries := make([]map[string]interface{}, 0, len(cats))
			for _, c := range cats {
				src := catalog.Source(c)
				entries = append(entries, map[string]interface{}{
					"metadata_type":  c,
					"search_columns": src.Columns,
					"archive_url":    src.ArchiveURL,
				})
			}
			outputSuccess(map[string]interface{}{"categories": entries}, &Meta{Count: len(entries)})
			return nil
		}

		t := ui.NewTable(3)
		t.AddRow("TYPE", "SEARCH COLUMNS", "SOURCE")
		for _, c := range cats {
			src := catalog.Source(c)
			t.AddRow(string(c), strings.Join(src.Columns, ", "), src.ArchiveURL)
		}
		fmt.Print(t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
