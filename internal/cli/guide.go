package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrihari/chipatlas/docs"
	"github.com/shrihari/chipatlas/internal/ui"
)

var guideAgent bool

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the chipatlas user guide",
	Long: `Render the bundled chipatlas guide in the terminal.

Examples:
  chipatlas guide
  chipatlas guide --agent   # the MCP agent guide`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file := "guide/index.md"
		if guideAgent {
			file = "guide/agent.md"
		}

		raw, err := docs.FS.ReadFile(file)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"file":    file,
				"content": string(raw),
			}, nil)
			return nil
		}

		dc := ui.NewDisplayContext()
		width := dc.TermWidth
		if width > 100 {
			width = 100
		}

		rendered, err := ui.RenderMarkdown(string(raw), width-ui.MarkdownRenderMargin)
		if err != nil {
			// Fall back to raw markdown when the renderer fails.
			fmt.Print(string(raw))
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	guideCmd.Flags().BoolVar(&guideAgent, "agent", false, "Show the MCP agent guide instead of the user guide")
	rootCmd.AddCommand(guideCmd)
}
