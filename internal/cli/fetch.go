package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrihari/chipatlas/internal/atlas"
	"github.com/shrihari/chipatlas/internal/ui"
)

var fetchMetadataType string

var fetchCmd = &cobra.Command{
	Use:   "fetch <term>",
	Short: "Search ChIP-Atlas metadata and export matches as CSV",
	Long: `Search ChIP-Atlas metadata by keyword and export matches as CSV.

The metadata table for the chosen type is downloaded on first use and
cached locally. The term is matched case-insensitively as a substring
against the type's search column (Antigen for most types, Cell type
for celltype_list). All matching rows are saved to the results
directory; re-running the same search overwrites the same file.

Examples:
  chipatlas fetch TP53
  chipatlas fetch TP53 --metadata-type analysis_list
  chipatlas fetch "K-562" --metadata-type celltype_list --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := args[0]
		if term == "" {
			return handleErrorMsg(ErrMissingArgument, "search term is required", "")
		}

		category, err := atlas.ParseCategory(fetchMetadataType)
		if err != nil {
			return handleError(ErrCategoryInvalid, err, "Run 'chipatlas categories' to see valid metadata types")
		}

		p := getPipeline()

		var spinner *ui.Spinner
		if !isJSONOutput() {
			spinner = ui.NewSpinner(fmt.Sprintf("Fetching %s metadata", category))
			spinner.Start()
		}

		report := p.Handle(category, term)

		if spinner != nil {
			spinner.Stop()
		}

		if isJSONOutput() {
			return outputFetchJSON(report)
		}
		return outputFetchText(report)
	},
}

func outputFetchJSON(report *atlas.Report) error {
	switch report.Status {
	case atlas.StatusFailed:
		outputError(report.ErrorCode, report.Detail, report, "")
		return nil
	case atlas.StatusUnavailable:
		outputSuccessWithWarnings(report, []Warning{{
			Code:    report.ErrorCode,
			Message: report.Detail,
		}}, nil)
		return nil
	default:
		outputSuccess(report, &Meta{Count: report.Matches})
		return nil
	}
}

func outputFetchText(report *atlas.Report) error {
	switch report.Status {
	case atlas.StatusUnavailable:
		fmt.Println(ui.Warningf("Source unavailable for %s; no data fetched.", report.Category))
		if report.Detail != "" {
			fmt.Println(ui.Hint(report.Detail))
		}
		return nil
	case atlas.StatusFailed:
		return fmt.Errorf("%s: %s", report.ErrorCode, report.Detail)
	}

	fmt.Println(ui.Header(fmt.Sprintf("%s: %q", report.Category, report.Term)))
	if report.Column != "" {
		fmt.Println(ui.Hint(fmt.Sprintf("matched against column: %s", report.Column)))
	}

	if len(report.Preview) > 0 {
		cols := ui.PreviewColumns(report.Columns)
		rows := make([]map[string]string, len(report.Preview))
		for i, r := range report.Preview {
			rows[i] = r
		}
		fmt.Println()
		fmt.Print(ui.RenderPreview(cols, rows, 32))
		fmt.Println()
	}

	if report.Matches == 0 {
		fmt.Printf("No entries found for %q in %s.\n", report.Term, report.Category)
		return nil
	}

	fmt.Println(ui.Successf("Found %d matches", report.Matches))
	if report.Matches > atlas.PreviewRows {
		fmt.Println(ui.Hint(fmt.Sprintf("showing first %d of %d matches", atlas.PreviewRows, report.Matches)))
	}
	fmt.Printf("Saved: %s\n", ui.FilePath(report.OutputPath))
	return nil
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchMetadataType, "metadata-type", "t", string(atlas.ExperimentList),
		"Metadata type (experiment_list, file_list, analysis_list, antigen_list, celltype_list)")
	rootCmd.AddCommand(fetchCmd)
}
