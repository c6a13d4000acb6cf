package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-exam-docs/internal/analyzer"
	"github.com/a3tai/mcp-exam-docs/internal/classifier"
	"github.com/a3tai/mcp-exam-docs/internal/compliance"
	"github.com/a3tai/mcp-exam-docs/internal/content"
)

// ScannedFile is one classified file of a scan
type ScannedFile struct {
	Path       string             `json:"path"`
	Kind       string             `json:"kind"`
	Size       int64              `json:"size"`
	Pages      int                `json:"pages,omitempty"`
	Error      string             `json:"error,omitempty"` // content could not be read; name only
	Result     classifier.Result  `json:"result"`
	Compliance *compliance.Report `json:"compliance,omitempty"`
}

func newScanCmd(a *app) *cobra.Command {
	var (
		examType string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "scan PATTERN...",
		Short: "Classify every file matching the glob patterns",
		Long: `Expand each PATTERN (with ** support), extract the content of every
matching file and classify it. With --exam, each file is also checked
against the exam's format and size requirements from the catalog overlay.
Results are printed as JSON, or written to a spreadsheet with --xlsx.`,
		Example: `  examdocs scan 'uploads/**/*.pdf' --exam neet
  examdocs scan 'applicant-42/*' --xlsx applicant-42.xlsx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no files match %v", args)
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			files := scanFiles(svc, content.NewExtractor(a.maxFileSize), paths, examType, cmd.ErrOrStderr())

			if xlsxPath != "" {
				if err := writeReport(xlsxPath, examType, files); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d documents to %s\n", len(files), xlsxPath)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), files)
		},
	}

	cmd.Flags().StringVar(&examType, "exam", "", "Exam type applied to every file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel report instead of JSON")

	return cmd
}

// expandPatterns returns the sorted, de-duplicated regular files matching
// any of the patterns
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob error in %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// scanFiles extracts content, classifies every path and checks each file
// against the exam's upload requirement for its type. Files whose content
// cannot be read are still classified by name, and the problem is reported
// to warn.
func scanFiles(svc *analyzer.Service, extractor *content.Extractor, paths []string, examType string, warn io.Writer) []ScannedFile {
	files := make([]ScannedFile, len(paths))
	items := make([]analyzer.Item, len(paths))

	for i, path := range paths {
		files[i].Path = path
		if info, err := os.Stat(path); err == nil {
			files[i].Size = info.Size()
		}

		doc, err := extractor.Extract(path)
		if err != nil {
			fmt.Fprintf(warn, "warning: %s: %v\n", path, err)
			files[i].Error = err.Error()
			items[i] = analyzer.Item{Name: filepath.Base(path)}
			continue
		}

		files[i].Kind = doc.Kind
		files[i].Pages = doc.Pages
		items[i] = analyzer.Item{Name: doc.Name, Content: doc.Text}
	}

	set := svc.Classifier().Catalogs()
	for i, result := range svc.BatchAnalyze(items, examType) {
		files[i].Result = result
		files[i].Compliance = compliance.Check(set, result.DocumentType, examType, result.OriginalName, files[i].Size)
	}

	return files
}
