package classifier

import (
	"strings"

	"github.com/a3tai/mcp-exam-docs/internal/catalog"
)

// Score returns the raw, unclamped confidence of a category for a filename
// and optional content. Signals add up independently:
//
//   - exam relevance: once, when the category maps the exam
//   - filename keywords: once per matching keyword, hits stack
//   - patterns: the first matching pattern only
//   - content keywords: the first matching keyword only
func Score(category *catalog.Category, weights catalog.Weights, filename, examType, content string) float64 {
	var confidence float64

	if _, ok := category.ExamLabel(examType); ok {
		confidence += weights.ExamRelevance
	}

	lowerName := strings.ToLower(filename)
	for _, keyword := range category.Keywords {
		if strings.Contains(lowerName, keyword) {
			confidence += weights.FilenameKeyword
		}
	}

	for _, pattern := range category.Patterns {
		if pattern.MatchString(lowerName) {
			confidence += weights.Pattern
			break
		}
	}

	if content != "" {
		lowerContent := strings.ToLower(content)
		for _, keyword := range category.Keywords {
			if strings.Contains(lowerContent, keyword) {
				confidence += weights.ContentKeyword
				break
			}
		}
	}

	return confidence
}
