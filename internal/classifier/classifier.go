package classifier

import (
	"errors"
	"strconv"

	"github.com/a3tai/mcp-exam-docs/internal/catalog"
)

// Classifier picks the best document type and education level for a file.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	documentTypes   *catalog.Catalog
	educationLevels *catalog.Catalog
}

// New creates a classifier over the given catalogs
func New(set *catalog.Set) (*Classifier, error) {
	if set == nil || set.DocumentTypes == nil || set.EducationLevels == nil {
		return nil, errors.New("classifier requires both document type and education level catalogs")
	}

	return &Classifier{
		documentTypes:   set.DocumentTypes,
		educationLevels: set.EducationLevels,
	}, nil
}

// NewDefault creates a classifier over the built-in catalogs
func NewDefault() *Classifier {
	set := catalog.MustBuiltin()
	return &Classifier{
		documentTypes:   set.DocumentTypes,
		educationLevels: set.EducationLevels,
	}
}

// Catalogs returns the catalogs the classifier works with
func (c *Classifier) Catalogs() *catalog.Set {
	return &catalog.Set{
		DocumentTypes:   c.documentTypes,
		EducationLevels: c.educationLevels,
	}
}

// Classify classifies one document. It never fails: unmatched dimensions
// fall back to "document" and "" with zero confidence.
func (c *Classifier) Classify(in Input) Result {
	docType := c.DocumentType(in.Filename, in.ExamType, in.Content)
	eduLevel := c.EducationLevel(in.Filename, in.Content)

	examMapping := c.ExamSpecificCategory(docType.ID, in.ExamType)

	return Result{
		OriginalName:     in.Filename,
		SuggestedName:    c.SuggestName(docType.ID, eduLevel.ID, in.Filename, in.ExamType),
		DocumentType:     docType.ID,
		EducationLevel:   eduLevel.ID,
		ExamType:         in.ExamType,
		Confidence:       roundConfidence((docType.Confidence + eduLevel.Confidence) / 2),
		DetectedCategory: examMapping,
		AnalysisDetails: AnalysisDetails{
			DocumentTypeConfidence:   docType.Confidence,
			EducationLevelConfidence: eduLevel.Confidence,
			ExamSpecificMapping:      examMapping,
		},
	}
}

// DocumentType returns the best matching document type
func (c *Classifier) DocumentType(filename, examType, content string) Match {
	return best(c.documentTypes, catalog.FallbackDocumentType, filename, examType, content)
}

// EducationLevel returns the best matching education level. Exam context does
// not take part in education level scoring.
func (c *Classifier) EducationLevel(filename, content string) Match {
	return best(c.educationLevels, catalog.FallbackEducationLevel, filename, "", content)
}

// best scores every category in catalog order and keeps the strictly
// greatest; the earlier category wins a tie.
func best(cat *catalog.Catalog, fallback, filename, examType, content string) Match {
	match := Match{ID: fallback}
	bestScore := 0.0

	weights := cat.Weights()
	for _, category := range cat.Categories() {
		score := Score(category, weights, filename, examType, content)
		if score > bestScore {
			bestScore = score
			match.ID = category.ID
		}
	}

	match.Confidence = clamp(bestScore)
	return match
}

// ExamSpecificCategory translates a document type into the exam's own label.
// Without an exam, or when the exam has no mapping, docType is returned as is.
func (c *Classifier) ExamSpecificCategory(docType, examType string) string {
	if label, ok := c.examMapping(docType, examType); ok {
		return label
	}
	return docType
}

func (c *Classifier) examMapping(docType, examType string) (string, bool) {
	category, ok := c.documentTypes.Lookup(docType)
	if !ok {
		return "", false
	}
	return category.ExamLabel(examType)
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}

// roundConfidence rounds to 2 decimals using the exact binary value of v,
// with ties going to the even digit.
func roundConfidence(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
