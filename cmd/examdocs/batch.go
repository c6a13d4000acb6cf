package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		input    string
		examType string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a JSON list of files",
		Long: `Read a JSON array of {"name": ..., "content": ...} objects and print
the results in the same order. Use --input - to read from stdin.`,
		Example: `  examdocs batch --input files.json --exam upsc
  echo '[{"name":"sign.png"}]' | examdocs batch --input -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readInput(cmd.InOrStdin(), input)
			if err != nil {
				return err
			}

			svc, err := a.service()
			if err != nil {
				return err
			}

			results, err := svc.BatchAnalyzeJSON(string(payload), examType)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), results)
			return err
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "JSON file with the batch, or - for stdin")
	cmd.Flags().StringVar(&examType, "exam", "", "Exam type applied to every file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return data, nil
}
