package compliance

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/a3tai/mcp-exam-docs/internal/catalog"
)

// Report compares one uploaded file against the requirement its exam sets
// for the detected document type.
type Report struct {
	ExamType      string              `json:"exam_type"`
	DocumentType  string              `json:"document_type"`
	Format        string              `json:"format"`
	SizeKB        int64               `json:"size_kb"`
	Requirement   catalog.Requirement `json:"requirement"`
	Compliant     bool                `json:"compliant"`
	Violations    []string            `json:"violations,omitempty"`
	TargetFormat  string              `json:"target_format,omitempty"`
	ConvertedName string              `json:"converted_name,omitempty"`
}

var imageFormats = map[string]bool{
	"JPEG": true,
	"PNG":  true,
	"GIF":  true,
	"BMP":  true,
	"TIFF": true,
	"TIF":  true,
	"WEBP": true,
}

var formatExtensions = map[string]string{
	"JPEG": "jpg",
	"PNG":  "png",
	"PDF":  "pdf",
}

// FormatOf returns the normalized format of a file name from its extension,
// or "" when it has none.
func FormatOf(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" || ext == "." {
		return ""
	}
	return catalog.NormalizeFormat(ext)
}

// Check looks up the requirement of examType for docType and checks the file
// against it. It returns nil when the exam sets no requirement.
func Check(set *catalog.Set, docType, examType, filename string, sizeBytes int64) *Report {
	category, ok := set.DocumentTypes.Lookup(docType)
	if !ok {
		return nil
	}
	req, ok := category.Requirement(examType)
	if !ok {
		return nil
	}

	report := &Report{
		ExamType:     examType,
		DocumentType: docType,
		Format:       FormatOf(filename),
		SizeKB:       sizeBytes / 1024,
		Requirement:  req,
	}

	if req.SizeKB.Min > 0 && report.SizeKB < req.SizeKB.Min {
		report.Violations = append(report.Violations,
			fmt.Sprintf("file too small: %dKB, minimum required: %dKB", report.SizeKB, req.SizeKB.Min))
	}
	if req.SizeKB.Max > 0 && report.SizeKB > req.SizeKB.Max {
		report.Violations = append(report.Violations,
			fmt.Sprintf("file too large: %dKB, maximum allowed: %dKB", report.SizeKB, req.SizeKB.Max))
	}
	if !req.Accepts(report.Format) {
		report.Violations = append(report.Violations,
			fmt.Sprintf("format %s not accepted, expected %s", formatName(report.Format), strings.Join(req.Formats, " or ")))
	}

	report.TargetFormat = TargetFormat(report.Format, req)
	if report.TargetFormat != "" {
		report.ConvertedName = ConvertedName(filename, report.TargetFormat, docType)
	}
	report.Compliant = len(report.Violations) == 0

	return report
}

// TargetFormat is the format a file of the given format would have to be
// delivered in: the first accepted format for images (JPEG when the
// requirement names none), PDF for PDFs the requirement accepts, and ""
// when the file cannot be brought into an accepted format.
func TargetFormat(format string, req catalog.Requirement) string {
	switch {
	case imageFormats[format]:
		if len(req.Formats) == 0 {
			return "JPEG"
		}
		return req.Formats[0]
	case format == "PDF" && req.Accepts("PDF"):
		return "PDF"
	default:
		return ""
	}
}

// ConvertedName names a file delivered in targetFormat:
// <documentType>_<name up to the first dot>.<extension>
func ConvertedName(filename, targetFormat, docType string) string {
	base := filepath.Base(filename)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}

	ext, ok := formatExtensions[catalog.NormalizeFormat(targetFormat)]
	if !ok {
		ext = "bin"
	}

	return fmt.Sprintf("%s_%s.%s", docType, base, ext)
}

func formatName(format string) string {
	if format == "" {
		return "(none)"
	}
	return format
}
