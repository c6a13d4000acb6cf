package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/a3tai/mcp-exam-docs/internal/catalog"
)

func TestSuggestName(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		name     string
		docType  string
		eduLevel string
		original string
		exam     string
		want     string
	}{
		{"exam mapping", "photograph", "10th", "me.jpg", "neet", "NEET_passport_photograph.jpg"},
		{"exam mapping keeps label", "signature", "", "sig.png", "cat", "CAT_signature.png"},
		{"mapping outside display table", "caste_or_pwd_certificate", "", "a.pdf", "jee", "JEE_caste_or_pwd_certificate.pdf"},
		{"no exam uses display labels", "photograph", "12th", "me.jpeg", "", "12th_Photo.jpeg"},
		{"graduation label", "category_certificate", "graduation", "c.pdf", "", "Graduation_CategoryCertificate.pdf"},
		{"exam without mapping falls back", "class10_certificate", "10th", "x.pdf", "upsc", "10th_Class10Certificate.pdf"},
		{"fallback document", "document", "", "scan.tiff", "", "Document.tiff"},
		{"type outside display table with level", "caste_or_pwd_certificate", "12th", "x.pdf", "", "12th.pdf"},
		{"type outside display table alone", "photo_id_proof", "", "aadhar.png", "", "Document.png"},
		{"unknown level contributes nothing", "signature", "postgraduate", "s.pdf", "", "Signature.pdf"},
		{"no extension defaults to pdf", "signature", "", "signature", "", "Signature.pdf"},
		{"last dot wins", "signature", "", "my.sign.v2.png", "", "Signature.png"},
		{"trailing dot gives empty extension", "signature", "", "signature.", "", "Signature."},
		{"empty filename", "document", "", "", "", "Document.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.SuggestName(tt.docType, tt.eduLevel, tt.original, tt.exam))
		})
	}
}

func TestSuggestName_DisplayLabelPresence(t *testing.T) {
	c := NewDefault()

	for _, docType := range c.Catalogs().DocumentTypes.IDs() {
		name := c.SuggestName(docType, "", "upload.pdf", "")
		label, inTable := documentTypeLabels[docType]

		if inTable {
			assert.Contains(t, name, label, "%s should appear in %s", docType, name)
			continue
		}

		assert.Equal(t, "Document.pdf", name, "%s has no display label", docType)
		assert.False(t, strings.Contains(name, docType))
	}

	assert.Equal(t, "Document.pdf", c.SuggestName(catalog.FallbackDocumentType, "", "upload.pdf", ""))
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", fileExtension("noext"))
	assert.Equal(t, "jpg", fileExtension("a.b.jpg"))
	assert.Equal(t, "", fileExtension("a."))
	assert.Equal(t, "hidden", fileExtension(".hidden"))
}
