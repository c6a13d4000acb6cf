package classifier

// Input is a single document to classify
type Input struct {
	Filename string `json:"filename"`
	ExamType string `json:"exam_type,omitempty"` // empty means no exam context
	Content  string `json:"content,omitempty"`   // text already extracted by the caller
}

// Result is the outcome of classifying one document
type Result struct {
	OriginalName     string          `json:"original_name"`
	SuggestedName    string          `json:"suggested_name"`
	DocumentType     string          `json:"document_type"`
	EducationLevel   string          `json:"education_level"`
	ExamType         string          `json:"exam_type"`
	Confidence       float64         `json:"confidence"` // 0.0 to 1.0, rounded to 2 decimals
	DetectedCategory string          `json:"detected_category"`
	AnalysisDetails  AnalysisDetails `json:"analysis_details"`
}

// AnalysisDetails exposes the per-dimension scores behind a Result
type AnalysisDetails struct {
	DocumentTypeConfidence   float64 `json:"document_type_confidence"`
	EducationLevelConfidence float64 `json:"education_level_confidence"`
	ExamSpecificMapping      string  `json:"exam_specific_mapping"`
}

// Match is the best category of one dimension
type Match struct {
	ID         string
	Confidence float64 // clamped to 1.0
}
