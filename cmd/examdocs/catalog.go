package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List document types, education levels and exams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.catalogs()
			if err != nil {
				return err
			}

			listing := set.Listing()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), listing)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Document types:")
			for _, id := range listing.DocumentTypes {
				fmt.Fprintf(out, "  %s", id)
				if mappings := listing.ExamMappings[id]; len(mappings) > 0 {
					exams := make([]string, 0, len(mappings))
					for exam := range mappings {
						exams = append(exams, exam+"="+mappings[exam])
					}
					sort.Strings(exams)
					fmt.Fprintf(out, " (%s)", strings.Join(exams, ", "))
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out, "Education levels:")
			for _, id := range listing.EducationLevels {
				fmt.Fprintf(out, "  %s\n", id)
			}

			fmt.Fprintf(out, "Exams: %s\n", strings.Join(listing.Exams, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")

	return cmd
}
