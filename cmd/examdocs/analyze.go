package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-exam-docs/internal/analyzer"
	"github.com/a3tai/mcp-exam-docs/internal/classifier"
	"github.com/a3tai/mcp-exam-docs/internal/content"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		examType    string
		text        string
		readContent bool
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Classify files by name and print the results as JSON",
		Long: `Classify each FILE by its base name. The files do not need to exist
unless --read-content is given, in which case their text is extracted
(PDF text or plain text) and used as content.`,
		Example: `  examdocs analyze photo_10th.jpg --exam neet
  examdocs analyze upload_001.pdf --content "Matriculation Marksheet"
  examdocs analyze uploads/*.pdf --read-content --exam jee`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}

			var extractor *content.Extractor
			if readContent {
				extractor = content.NewExtractor(a.maxFileSize)
			}

			results, err := analyzeFiles(svc, extractor, args, examType, text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().StringVar(&examType, "exam", "", "Exam type (jee, neet, upsc, gate, cat)")
	cmd.Flags().StringVar(&text, "content", "", "Document text applied to every file")
	cmd.Flags().BoolVar(&readContent, "read-content", false, "Extract content from the files")
	cmd.MarkFlagsMutuallyExclusive("content", "read-content")

	return cmd
}

// analyzeFiles classifies paths in order. With an extractor, content comes
// from each file; otherwise text is used for all of them.
func analyzeFiles(svc *analyzer.Service, extractor *content.Extractor, paths []string, examType, text string) ([]classifier.Result, error) {
	items := make([]analyzer.Item, len(paths))
	for i, path := range paths {
		items[i] = analyzer.Item{Name: filepath.Base(path), Content: text}

		if extractor != nil {
			doc, err := extractor.Extract(path)
			if err != nil {
				return nil, fmt.Errorf("cannot read content of %s: %w", path, err)
			}
			items[i].Content = doc.Text
		}
	}

	return svc.BatchAnalyze(items, examType), nil
}
