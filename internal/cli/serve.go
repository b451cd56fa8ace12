package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shrihari/chipatlas/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run chipatlas as an MCP server",
	Long: `Run chipatlas as an MCP (Model Context Protocol) server.

This enables LLM agents to search ChIP-Atlas metadata through a
standardized protocol.

The server communicates over stdin/stdout using JSON-RPC 2.0.

Examples:
  chipatlas serve
  chipatlas serve --data-dir /srv/chipatlas

For use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "chipatlas": {
        "command": "chipatlas",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Don't output anything to stdout except MCP protocol
		// (but we can log to stderr if needed)

		server := mcp.NewServer(getPipeline())
		if err := server.Run(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
