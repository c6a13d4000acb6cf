package main

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Documents"

var reportHeader = []any{
	"Path",
	"Original Name",
	"Suggested Name",
	"Document Type",
	"Education Level",
	"Exam",
	"Confidence",
	"Document Type Confidence",
	"Education Level Confidence",
	"Exam Mapping",
	"Kind",
	"Pages",
	"Error",
	"Compliant",
	"Violations",
	"Converted Name",
}

// writeReport saves the scan results as an Excel workbook with one row per
// file. Rows below 0.3 confidence or failing an upload requirement are
// highlighted for manual review.
func writeReport(path, examType string, files []ScannedFile) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	reviewStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FCE4D6"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create review style: %w", err)
	}

	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	if err := f.SetRowStyle(reportSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style report header: %w", err)
	}

	for i, file := range files {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		compliant, violations, converted := "", "", ""
		if c := file.Compliance; c != nil {
			compliant = "yes"
			if !c.Compliant {
				compliant = "no"
			}
			violations = strings.Join(c.Violations, "; ")
			converted = c.ConvertedName
		}

		r := file.Result
		values := []any{
			file.Path,
			r.OriginalName,
			r.SuggestedName,
			r.DocumentType,
			r.EducationLevel,
			r.ExamType,
			r.Confidence,
			r.AnalysisDetails.DocumentTypeConfidence,
			r.AnalysisDetails.EducationLevelConfidence,
			r.AnalysisDetails.ExamSpecificMapping,
			file.Kind,
			file.Pages,
			file.Error,
			compliant,
			violations,
			converted,
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", file.Path, err)
		}

		if r.Confidence < 0.3 || compliant == "no" {
			if err := f.SetRowStyle(reportSheet, row, row, reviewStyle); err != nil {
				return fmt.Errorf("failed to style row for %s: %w", file.Path, err)
			}
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "A", 48); err != nil {
		return err
	}
	if err := f.SetColWidth(reportSheet, "B", "J", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(reportSheet, "O", "P", 40); err != nil {
		return err
	}

	if examType != "" {
		if err := f.SetDocProps(&excelize.DocProperties{
			Title:   "Exam document scan",
			Subject: examType,
			Creator: "examdocs",
		}); err != nil {
			return fmt.Errorf("failed to set report properties: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
