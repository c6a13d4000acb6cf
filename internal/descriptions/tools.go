package descriptions

import "sort"

// Tool descriptions with practical examples and use cases

const (
	// Classification Tools
	AnalyzeDocumentDescription = `Classify a single exam application document and suggest a standardized file name.

**When to use:** A candidate uploaded a file (photo, signature, marksheet, certificate, ID proof) and you need to know what it is and what it should be called.

**Why it's useful:** Scores the file name, the optional exam type and the optional document text against the built-in catalogs, so uploads named "IMG_2024.jpg" or "scan (3).pdf" still end up in the right slot.

**Examples:**
• Exam-specific naming: "Analyze photo_10th.jpg for neet" → NEET_passport_photograph.jpg
• Content-assisted detection: "Analyze upload_001.pdf with content 'Matriculation Marksheet'" → class10_certificate
• File on disk: "Analyze path uploads/caste.pdf for upsc" extracts the PDF text first
• Upload limits: with a path, the file's format and size are checked against the exam's requirements from the catalog overlay and reported under "compliance"

**Common workflows:**
1. Upload Review: Analyze document → Check confidence → Rename using suggested_name
2. Low Confidence Triage: Analyze → confidence below 0.3 → Ask the candidate to confirm the document type
3. Pre-submission Check: Analyze path → compliance.compliant is false → Ask for a file in target_format within size_kb

**Best practices:** Pass exam_type whenever it is known; exam ids are lowercase (jee, neet, upsc, gate, cat).`

	BatchAnalyzeDescription = `Classify many uploaded documents in one call.

**When to use:** A full application folder needs to be sorted and renamed at once.

**Why it's useful:** Runs the same analysis as analyze_document for every file concurrently and returns the results in input order under a single batch id.

**Examples:**
• Application bundle: files='[{"name":"sign.png"},{"name":"aadhar.pdf","content":"Government of India"}]', exam_type='upsc'

**Common workflows:**
1. Bulk Intake: list_categories → batch_analyze → Rename every file using suggested_name
2. Audit: batch_analyze → Report documents classified as "document" (nothing matched)

**Best practices:** Each entry needs a "name"; "content" may be omitted or null. Malformed JSON is rejected before any file is analyzed.`

	ListCategoriesDescription = `List the document types, education levels and exam types the classifier knows.

**When to use:** Before analyzing, to see which categories and exam-specific labels exist.

**Why it's useful:** Shows the exact identifiers that appear in document_type, education_level and exam_specific_mapping results, plus the per-exam upload requirements, including any catalog overlay loaded at startup.

**Examples:**
• "Which exams have a dedicated caste certificate label?"
• "What education levels can be detected?"`

	ServerInfoDescription = `Get server information, configuration and available tools.

**When to use:** First call in a new session, or when unsure which tool fits the task.

**Examples:**
• "What can this server do?"
• "Which exam type is used when I don't pass one?"`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"analyze_document": AnalyzeDocumentDescription,
	"batch_analyze":    BatchAnalyzeDescription,
	"list_categories":  ListCategoriesDescription,
	"server_info":      ServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the sorted names of all available tools
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
