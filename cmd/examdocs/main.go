// Command examdocs classifies exam application documents from the command
// line. It shares the catalogs and analysis service of the MCP server.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-exam-docs/internal/analyzer"
	"github.com/a3tai/mcp-exam-docs/internal/catalog"
	"github.com/a3tai/mcp-exam-docs/internal/classifier"
	"github.com/a3tai/mcp-exam-docs/internal/config"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// app holds the global flags shared by every subcommand
type app struct {
	catalogPath string
	workers     int
	maxFileSize int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "examdocs",
		Short: "Classify exam application documents",
		Long: `examdocs detects the document type and education level of exam
application uploads (photographs, signatures, marksheets, certificates,
ID proofs) and suggests standardized file names.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "YAML file extending the built-in category catalogs")
	cmd.PersistentFlags().IntVar(&a.workers, "workers", runtime.NumCPU(), "Documents analyzed concurrently")
	cmd.PersistentFlags().Int64Var(&a.maxFileSize, "maxfilesize", config.DefaultMaxFileSize, "Maximum file size read for content")

	cmd.AddCommand(
		newAnalyzeCmd(a),
		newBatchCmd(a),
		newScanCmd(a),
		newCatalogCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// catalogs loads the built-in catalogs plus the --catalog overlay
func (a *app) catalogs() (*catalog.Set, error) {
	set, err := catalog.Load(a.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogs: %w", err)
	}
	return set, nil
}

// service builds the analysis service over the loaded catalogs
func (a *app) service() (*analyzer.Service, error) {
	set, err := a.catalogs()
	if err != nil {
		return nil, err
	}

	c, err := classifier.New(set)
	if err != nil {
		return nil, err
	}

	return analyzer.NewService(c, analyzer.WithWorkers(a.workers))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "examdocs version %s (build: %s, %s)\n",
				version, buildTime, runtime.Version())
		},
	}
}
