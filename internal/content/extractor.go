package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Kinds of documents the extractor recognises
const (
	KindPDF    = "pdf"
	KindText   = "text"
	KindBinary = "binary" // images and other uploads; no text is extracted
)

const defaultMaxTextSize = 1024 * 1024 // 1MB of text is plenty for keyword matching

var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
	".csv":  true,
}

// Document is a file prepared for classification
type Document struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Kind  string `json:"kind"`
	Pages int    `json:"pages,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Extractor reads uploaded files and pulls out the text used as
// classification content
type Extractor struct {
	maxFileSize int64
	maxTextSize int
}

// NewExtractor creates an extractor refusing files above maxFileSize bytes
func NewExtractor(maxFileSize int64) *Extractor {
	return &Extractor{
		maxFileSize: maxFileSize,
		maxTextSize: defaultMaxTextSize,
	}
}

// Extract validates the file at path and extracts its text. Images and other
// binary uploads yield a Document with empty Text.
func (e *Extractor) Extract(path string) (*Document, error) {
	fileInfo, err := e.validateFile(path)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path: path,
		Name: filepath.Base(path),
		Size: fileInfo.Size(),
		Kind: kindOf(path),
	}

	switch doc.Kind {
	case KindPDF:
		if err := e.extractPDF(doc); err != nil {
			return nil, err
		}
	case KindText:
		text, err := e.readText(path)
		if err != nil {
			return nil, err
		}
		doc.Text = text
	}

	return doc, nil
}

// validateFile performs basic validation on an uploaded file
func (e *Extractor) validateFile(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if fileInfo.Size() > e.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), e.maxFileSize)
	}

	return fileInfo, nil
}

func kindOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return KindPDF
	case textExtensions[ext]:
		return KindText
	default:
		return KindBinary
	}
}

// extractPDF fills page count, document info text and page text
func (e *Extractor) extractPDF(doc *Document) error {
	if doc.Size == 0 {
		return fmt.Errorf("file is empty: %s", doc.Path)
	}

	pages, infoText, err := readPDFInfo(doc.Path)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	doc.Pages = pages

	f, pdfReader, err := pdf.Open(doc.Path)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pageText := e.extractPageText(pdfReader)

	doc.Text = strings.TrimSpace(strings.Join(nonEmpty(infoText, pageText), "\n"))
	return nil
}

// readPDFInfo uses pdfcpu to count pages and collect the title and subject
// of the document info dictionary. Files that fail strict validation still
// report their page count.
func readPDFInfo(path string) (int, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, "", fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return 0, "", fmt.Errorf("failed to ensure page count: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return ctx.PageCount, "", nil //nolint:nilerr // info text is optional
	}

	return ctx.PageCount, strings.Join(nonEmpty(ctx.Title, ctx.Subject), "\n"), nil
}

// extractPageText concatenates the plain text of every page, up to maxTextSize
func (e *Extractor) extractPageText(pdfReader *pdf.Reader) string {
	var builder strings.Builder

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if builder.Len()+len(text) > e.maxTextSize {
			builder.WriteString(truncate(text, e.maxTextSize-builder.Len()))
			break
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String()
}

func (e *Extractor) readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}

	return truncate(string(data), e.maxTextSize), nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
