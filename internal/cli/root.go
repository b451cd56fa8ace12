// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shrihari/chipatlas/internal/atlas"
	"github.com/shrihari/chipatlas/internal/config"
	"github.com/shrihari/chipatlas/internal/ui"
)

var (
	// Global flags
	configPath     string
	dataDirFlag    string
	resultsDirFlag string

	// Resolved values
	resolvedDataDir    string
	resolvedResultsDir string
	resolvedConfigPath string
	cfg                *config.Config
	pipeline           *atlas.Pipeline
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chipatlas",
	Short: "chipatlas - ChIP-Atlas metadata search and export",
	Long: `chipatlas downloads ChIP-Atlas metadata tables, filters them by a
search term, and saves the matching rows as CSV.

Tables are cached locally on first use; re-running a search reuses
the cached table and overwrites the previous export for the same
term and metadata type.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip pipeline setup for commands that don't touch data
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "mcp") {
			return nil
		}

		// Load config
		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		resolvedDataDir, err = cfg.ResolveDataDir(dataDirFlag)
		if err != nil {
			return fmt.Errorf("failed to resolve data directory: %w", err)
		}
		resolvedResultsDir, err = cfg.ResolveResultsDir(resultsDirFlag, resolvedDataDir)
		if err != nil {
			return fmt.Errorf("failed to resolve results directory: %w", err)
		}

		catalog := atlas.NewCatalog(cfg.BaseURL)
		sources, err := atlas.LoadSources(filepath.Join(resolvedDataDir, atlas.SourcesFilename))
		if err != nil {
			return fmt.Errorf("failed to load source overrides: %w", err)
		}
		catalog.ApplyOverrides(sources)

		pipeline = atlas.NewPipeline(resolvedDataDir, resolvedResultsDir, catalog)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory for cached metadata tables (default ~/Chip_Atlasmcp)")
	rootCmd.PersistentFlags().StringVar(&resultsDirFlag, "results-dir", "", "Directory for exported CSVs (default <data-dir>/results)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getPipeline returns the pipeline wired up by PersistentPreRunE.
func getPipeline() *atlas.Pipeline {
	return pipeline
}

// getDataDir returns the resolved data directory.
func getDataDir() string {
	return resolvedDataDir
}

// getResultsDir returns the resolved results directory.
func getResultsDir() string {
	return resolvedResultsDir
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}
