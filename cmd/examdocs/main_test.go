package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/a3tai/mcp-exam-docs/internal/catalog"
	"github.com/a3tai/mcp-exam-docs/internal/classifier"
)

// run executes the root command and returns stdout and stderr
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, data string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "examdocs version dev")
}

func TestAnalyzeCmd(t *testing.T) {
	stdout, _, err := run(t, "", "analyze", "photo_10th.jpg", "some/dir/signature.pdf", "--exam", "neet")
	require.NoError(t, err)

	var results []classifier.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "NEET_passport_photograph.jpg", results[0].SuggestedName)
	assert.Equal(t, 0.85, results[0].Confidence)
	assert.Equal(t, "signature.pdf", results[1].OriginalName)
	assert.Equal(t, "NEET_signature.pdf", results[1].SuggestedName)
}

func TestAnalyzeCmd_Content(t *testing.T) {
	stdout, _, err := run(t, "", "analyze", "upload_001.pdf", "--content", "Matriculation Marksheet")
	require.NoError(t, err)

	var results []classifier.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "class10_certificate", results[0].DocumentType)
	assert.Equal(t, "10th", results[0].EducationLevel)
	assert.Equal(t, 0.25, results[0].Confidence)
}

func TestAnalyzeCmd_ReadContent(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "upload_001.txt"), "Matriculation Marksheet")

	stdout, _, err := run(t, "", "analyze", path, "--read-content")
	require.NoError(t, err)

	var results []classifier.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "upload_001.txt", results[0].OriginalName)
	assert.Equal(t, "class10_certificate", results[0].DocumentType)
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no files", args: []string{"analyze"}, wantErr: "requires at least 1 arg"},
		{name: "missing file with read-content", args: []string{"analyze", "/nonexistent/a.pdf", "--read-content"}, wantErr: "file does not exist"},
		{name: "content and read-content", args: []string{"analyze", "a.pdf", "--content", "x", "--read-content"}, wantErr: "none of the others can be"},
		{name: "missing catalog", args: []string{"analyze", "a.pdf", "--catalog", "/nonexistent/catalog.yaml"}, wantErr: "failed to load catalogs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBatchCmd(t *testing.T) {
	input := writeFile(t, filepath.Join(t.TempDir(), "files.json"),
		`[{"name":"aadhar card.png"},{"name":"signature.pdf","content":null}]`)

	stdout, _, err := run(t, "", "batch", "--input", input, "--exam", "upsc")
	require.NoError(t, err)

	var results []classifier.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "UPSC_photo_id_proof.png", results[0].SuggestedName)
	assert.Equal(t, "signature", results[1].DocumentType)
}

func TestBatchCmd_Stdin(t *testing.T) {
	stdout, _, err := run(t, `[{"name":"signature.pdf"}]`, "batch", "-i", "-")
	require.NoError(t, err)

	var results []classifier.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Signature.pdf", results[0].SuggestedName)
}

func TestBatchCmd_Errors(t *testing.T) {
	_, _, err := run(t, "", "batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "input" not set`)

	_, _, err = run(t, `{"name":"a.pdf"}`, "batch", "--input", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed input")

	_, _, err = run(t, "", "batch", "--input", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read batch file")
}

func scanFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "applicant", "photo_10th.jpg"), "\xff\xd8\xff\xe0")
	writeFile(t, filepath.Join(dir, "applicant", "marks", "upload_001.txt"), "Matriculation Marksheet")
	writeFile(t, filepath.Join(dir, "applicant", "marks", "broken.pdf"), "not a pdf")
	return dir
}

func TestScanCmd(t *testing.T) {
	dir := scanFixture(t)
	pattern := filepath.Join(dir, "applicant", "**", "*")

	stdout, stderr, err := run(t, "", "scan", pattern, pattern, "--exam", "neet")
	require.NoError(t, err)

	var files []ScannedFile
	require.NoError(t, json.Unmarshal([]byte(stdout), &files))
	// duplicates from repeated patterns are dropped, directories skipped
	require.Len(t, files, 3)

	byName := make(map[string]ScannedFile)
	for _, f := range files {
		byName[filepath.Base(f.Path)] = f
	}

	photo := byName["photo_10th.jpg"]
	assert.Equal(t, "binary", photo.Kind)
	assert.Equal(t, "NEET_passport_photograph.jpg", photo.Result.SuggestedName)

	marks := byName["upload_001.txt"]
	assert.Equal(t, "text", marks.Kind)
	assert.Equal(t, "class10_certificate", marks.Result.DocumentType)

	broken := byName["broken.pdf"]
	assert.Contains(t, broken.Error, "invalid PDF file")
	assert.Equal(t, "broken.pdf", broken.Result.OriginalName)
	assert.Contains(t, stderr, "warning:")
}

func TestScanCmd_XLSX(t *testing.T) {
	dir := scanFixture(t)
	report := filepath.Join(dir, "report.xlsx")

	stdout, _, err := run(t, "", "scan", filepath.Join(dir, "applicant", "**", "*.*"), "--xlsx", report, "--exam", "neet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 3 documents")

	f, err := excelize.OpenFile(report)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Path", rows[0][0])
	assert.Equal(t, "Suggested Name", rows[0][2])

	var suggested []string
	for _, row := range rows[1:] {
		suggested = append(suggested, row[2])
	}
	assert.Contains(t, suggested, "NEET_passport_photograph.jpg")

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "neet", props.Subject)
}

func TestScanCmd_NoMatches(t *testing.T) {
	_, _, err := run(t, "", "scan", filepath.Join(t.TempDir(), "*.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestExpandPatterns(t *testing.T) {
	dir := scanFixture(t)

	paths, err := expandPatterns([]string{
		filepath.Join(dir, "applicant", "marks", "*"),
		filepath.Join(dir, "applicant", "*.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "applicant", "marks", "broken.pdf"),
		filepath.Join(dir, "applicant", "marks", "upload_001.txt"),
		filepath.Join(dir, "applicant", "photo_10th.jpg"),
	}, paths)
}

func TestCatalogCmd(t *testing.T) {
	stdout, _, err := run(t, "", "catalog")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Document types:")
	assert.Contains(t, stdout, "photograph (cat=photograph, gate=photograph, jee=photograph, neet=passport_photograph, upsc=photograph)")
	assert.Contains(t, stdout, "Exams: cat, gate, jee, neet, upsc")
}

func TestCatalogCmd_JSONWithOverlay(t *testing.T) {
	overlay := writeFile(t, filepath.Join(t.TempDir(), "catalog.yaml"), `
document_types:
  - id: income_certificate
    keywords: [income]
    exam_mappings: {clat: income_certificate}
`)

	stdout, _, err := run(t, "", "catalog", "--json", "--catalog", overlay)
	require.NoError(t, err)

	var listing catalog.Listing
	require.NoError(t, json.Unmarshal([]byte(stdout), &listing))
	assert.Equal(t, "income_certificate", listing.DocumentTypes[len(listing.DocumentTypes)-1])
	assert.Contains(t, listing.Exams, "clat")
	assert.Equal(t, "income_certificate", listing.ExamMappings["income_certificate"]["clat"])
}

func TestAnalyzeCmd_WithOverlay(t *testing.T) {
	overlay := writeFile(t, filepath.Join(t.TempDir(), "catalog.yaml"), `
document_types:
  - id: income_certificate
    keywords: [income]
    exam_mappings: {clat: income_certificate}
`)

	stdout, _, err := run(t, "", "analyze", "income.pdf", "--exam", "clat", "--catalog", overlay)
	require.NoError(t, err)

	var results []classifier.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "income_certificate", results[0].DocumentType)
	assert.Equal(t, "CLAT_income_certificate.pdf", results[0].SuggestedName)
}

func TestScanCmd_Requirements(t *testing.T) {
	dir := scanFixture(t)
	writeFile(t, filepath.Join(dir, "applicant", "photo_12th.jpg"), strings.Repeat("x", 20*1024))
	overlay := writeFile(t, filepath.Join(t.TempDir(), "catalog.yaml"), `
document_types:
  - id: photograph
    requirements:
      neet: {formats: [JPEG], size_kb: {min: 10, max: 200}}
`)

	stdout, _, err := run(t, "", "scan", filepath.Join(dir, "applicant", "**", "*"),
		"--exam", "neet", "--catalog", overlay)
	require.NoError(t, err)

	var files []ScannedFile
	require.NoError(t, json.Unmarshal([]byte(stdout), &files))

	byName := make(map[string]ScannedFile)
	for _, f := range files {
		byName[filepath.Base(f.Path)] = f
	}

	small := byName["photo_10th.jpg"]
	require.NotNil(t, small.Compliance)
	assert.False(t, small.Compliance.Compliant)
	assert.Equal(t, []string{"file too small: 0KB, minimum required: 10KB"}, small.Compliance.Violations)

	ok := byName["photo_12th.jpg"]
	require.NotNil(t, ok.Compliance)
	assert.True(t, ok.Compliance.Compliant)
	assert.Equal(t, int64(20*1024), ok.Size)

	// no requirement for certificates
	assert.Nil(t, byName["upload_001.txt"].Compliance)

	report := filepath.Join(t.TempDir(), "report.xlsx")
	_, _, err = run(t, "", "scan", filepath.Join(dir, "applicant", "*.jpg"),
		"--exam", "neet", "--catalog", overlay, "--xlsx", report)
	require.NoError(t, err)

	f, err := excelize.OpenFile(report)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Compliant", rows[0][13])
	assert.Equal(t, "no", rows[1][13])
	assert.Equal(t, "file too small: 0KB, minimum required: 10KB", rows[1][14])
	assert.Equal(t, "yes", rows[2][13])
}
