package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shrihari/chipatlas/internal/atlas"
	"github.com/shrihari/chipatlas/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the local cache state per metadata type",
	Long: `Show the local cache state for each metadata type.

Reports whether a table file is cached, its size, and when it was
last downloaded according to the manifest.

Examples:
  chipatlas status
  chipatlas status --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := getDataDir()
		catalog := getPipeline().Fetcher.Catalog

		manifest, err := atlas.ReadManifest(dataDir)
		if err != nil {
			return handleError(ErrLoadError, err, "Delete the manifest file to reset the cache record")
		}

		type categoryStatus struct {
			Category  atlas.Category `json:"metadata_type"`
			Cached    bool           `json:"cached"`
			File      string         `json:"file,omitempty"`
			SizeBytes int64          `json:"size_bytes,omitempty"`
			FetchedAt string         `json:"fetched_at,omitempty"`
			URL       string         `json:"url,omitempty"`
		}

		var statuses []categoryStatus
		for _, c := range atlas.Categories() {
			cs := categoryStatus{Category: c}
			src := catalog.Source(c)

			for _, member := range src.Members {
				p := filepath.Join(dataDir, member)
				info, err := os.Stat(p)
				if err != nil {
					continue
				}
				cs.Cached = true
				cs.File = p
				cs.SizeBytes = info.Size()
				break
			}

			if entry, ok := manifest.Entry(c); ok {
				cs.FetchedAt = entry.FetchedAt
				cs.URL = entry.URL
			}

			statuses = append(statuses, cs)
		}

		if isJSONOutput() {
			cached := 0
			for _, cs := range statuses {
				if cs.Cached {
					cached++
				}
			}
			outputSuccess(map[string]interface{}{
				"data_dir":    dataDir,
				"results_dir": getResultsDir(),
				"categories":  statuses,
			}, &Meta{Count: cached})
			return nil
		}

		fmt.Println(ui.Header("Local cache"))
		fmt.Println(ui.Hint(fmt.Sprintf("data: %s", dataDir)))
		fmt.Println(ui.Hint(fmt.Sprintf("results: %s", getResultsDir())))
		fmt.Println()

		t := ui.NewTable(3)
		for _, cs := range statuses {
			state := "not cached"
			detail := ""
			if cs.Cached {
				state = "cached"
				detail = fmt.Sprintf("%.1f MB", float64(cs.SizeBytes)/(1024*1024))
				if cs.FetchedAt != "" {
					detail += "  fetched " + cs.FetchedAt
				}
			}
			t.AddRow(string(cs.Category), state, detail)
		}
		fmt.Print(t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
