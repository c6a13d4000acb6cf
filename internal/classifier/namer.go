package classifier

import (
	"strings"

	"github.com/a3tai/mcp-exam-docs/internal/catalog"
)

const defaultExtension = "pdf"

// Display labels used when no exam mapping applies. Document types missing
// from documentTypeLabels contribute nothing to the suggested name.
var (
	educationLevelLabels = map[string]string{
		catalog.Level10th:       "10th",
		catalog.Level12th:       "12th",
		catalog.LevelGraduation: "Graduation",
	}

	documentTypeLabels = map[string]string{
		catalog.Photograph:           "Photo",
		catalog.Signature:            "Signature",
		catalog.Class10Certificate:   "Class10Certificate",
		catalog.CategoryCertificate:  "CategoryCertificate",
		catalog.FallbackDocumentType: "Document",
	}
)

// SuggestName proposes a normalized file name. With an exam mapping the name
// is EXAM_label; otherwise it is built from the education level and document
// type display labels, or "Document" when neither has one.
func (c *Classifier) SuggestName(docType, eduLevel, originalFilename, examType string) string {
	extension := fileExtension(originalFilename)

	if label, ok := c.examMapping(docType, examType); ok {
		return strings.ToUpper(examType) + "_" + label + "." + extension
	}

	parts := make([]string, 0, 2)
	if label, ok := educationLevelLabels[eduLevel]; ok {
		parts = append(parts, label)
	}
	if label, ok := documentTypeLabels[docType]; ok {
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		parts = append(parts, "Document")
	}

	return strings.Join(parts, "_") + "." + extension
}

// fileExtension returns the text after the last dot, or pdf when there is
// no dot at all.
func fileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return defaultExtension
	}
	return filename[i+1:]
}
