package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Definition is the declarative form of a category, as written in the
// built-in tables or in an overlay file.
type Definition struct {
	ID           string                 `yaml:"id" json:"id"`
	Keywords     []string               `yaml:"keywords" json:"keywords"`
	Patterns     []string               `yaml:"patterns" json:"patterns"`
	ExamMappings map[string]string      `yaml:"exam_mappings,omitempty" json:"exam_mappings,omitempty"`
	Requirements map[string]Requirement `yaml:"requirements,omitempty" json:"requirements,omitempty"`
}

// Requirement is the upload specification an exam sets for a document type:
// accepted formats (JPEG, PNG, PDF) and the file size range in KB.
type Requirement struct {
	Formats []string  `yaml:"formats,omitempty" json:"formats,omitempty"`
	SizeKB  SizeRange `yaml:"size_kb" json:"size_kb"`
}

// SizeRange bounds a file size in KB. Zero means unbounded.
type SizeRange struct {
	Min int64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max int64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Accepts reports whether format is one of the accepted formats. An empty
// format list accepts everything.
func (r Requirement) Accepts(format string) bool {
	if len(r.Formats) == 0 {
		return true
	}
	format = NormalizeFormat(format)
	for _, accepted := range r.Formats {
		if accepted == format {
			return true
		}
	}
	return false
}

// NormalizeFormat upper-cases a format name and folds JPG into JPEG
func NormalizeFormat(format string) string {
	format = strings.ToUpper(strings.TrimPrefix(format, "."))
	if format == "JPG" {
		return "JPEG"
	}
	return format
}

// Category is a compiled, read-only Definition.
type Category struct {
	ID           string
	Keywords     []string
	Patterns     []*regexp.Regexp
	ExamMappings map[string]string
	Requirements map[string]Requirement
}

// ExamLabel returns the exam-specific label of the category. The second
// result is false when no exam is given or the exam has no mapping.
func (c *Category) ExamLabel(exam string) (string, bool) {
	if exam == "" {
		return "", false
	}
	label, ok := c.ExamMappings[exam]
	return label, ok
}

// Requirement returns the upload specification the exam sets for the
// category, if any.
func (c *Category) Requirement(exam string) (Requirement, bool) {
	if exam == "" {
		return Requirement{}, false
	}
	req, ok := c.Requirements[exam]
	return req, ok
}

// Weights holds the confidence contributed by each scoring signal.
type Weights struct {
	ExamRelevance   float64 `json:"exam_relevance"`
	FilenameKeyword float64 `json:"filename_keyword"`
	Pattern         float64 `json:"pattern"`
	ContentKeyword  float64 `json:"content_keyword"`
}

var (
	// DocumentTypeWeights are the signal weights of the document type catalog
	DocumentTypeWeights = Weights{
		ExamRelevance:   0.1,
		FilenameKeyword: 0.3,
		Pattern:         0.4,
		ContentKeyword:  0.2,
	}

	// EducationLevelWeights are the signal weights of the education level catalog
	EducationLevelWeights = Weights{
		ExamRelevance:   0.1,
		FilenameKeyword: 0.4,
		Pattern:         0.5,
		ContentKeyword:  0.3,
	}
)

// PatternError reports a category pattern that does not compile.
type PatternError struct {
	Catalog  string
	Category string
	Pattern  string
	Err      error
}

// Error implements the error interface
func (e *PatternError) Error() string {
	return fmt.Sprintf("catalog %s: category %s: invalid pattern %q: %v",
		e.Catalog, e.Category, e.Pattern, e.Err)
}

// Unwrap returns the underlying regexp error
func (e *PatternError) Unwrap() error {
	return e.Err
}

// Catalog is an ordered, immutable set of categories sharing one set of
// weights. It is safe for concurrent use.
type Catalog struct {
	name       string
	weights    Weights
	categories []*Category
	index      map[string]int
}

// New compiles the definitions into a catalog. Definition order is kept;
// it decides ties during classification.
func New(name string, weights Weights, defs []Definition) (*Catalog, error) {
	c := &Catalog{
		name:       name,
		weights:    weights,
		categories: make([]*Category, 0, len(defs)),
		index:      make(map[string]int, len(defs)),
	}

	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("catalog %s: category id cannot be empty", name)
		}
		if _, exists := c.index[def.ID]; exists {
			return nil, fmt.Errorf("catalog %s: duplicate category id %q", name, def.ID)
		}

		category, err := compile(name, def)
		if err != nil {
			return nil, err
		}

		c.index[def.ID] = len(c.categories)
		c.categories = append(c.categories, category)
	}

	return c, nil
}

func compile(catalogName string, def Definition) (*Category, error) {
	category := &Category{
		ID:           def.ID,
		Keywords:     make([]string, 0, len(def.Keywords)),
		Patterns:     make([]*regexp.Regexp, 0, len(def.Patterns)),
		ExamMappings: make(map[string]string, len(def.ExamMappings)),
		Requirements: make(map[string]Requirement, len(def.Requirements)),
	}

	for _, keyword := range def.Keywords {
		category.Keywords = append(category.Keywords, strings.ToLower(keyword))
	}

	for _, pattern := range def.Patterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, &PatternError{
				Catalog:  catalogName,
				Category: def.ID,
				Pattern:  pattern,
				Err:      err,
			}
		}
		category.Patterns = append(category.Patterns, re)
	}

	for exam, label := range def.ExamMappings {
		category.ExamMappings[exam] = label
	}

	for exam, req := range def.Requirements {
		size := req.SizeKB
		if size.Min < 0 || size.Max < 0 || (size.Max > 0 && size.Min > size.Max) {
			return nil, fmt.Errorf("catalog %s: category %s: exam %s: invalid size range %d-%d KB",
				catalogName, def.ID, exam, size.Min, size.Max)
		}

		formats := make([]string, 0, len(req.Formats))
		for _, format := range req.Formats {
			formats = append(formats, NormalizeFormat(format))
		}
		category.Requirements[exam] = Requirement{Formats: formats, SizeKB: size}
	}

	return category, nil
}

// Name returns the catalog name
func (c *Catalog) Name() string {
	return c.name
}

// Weights returns the scoring weights of the catalog
func (c *Catalog) Weights() Weights {
	return c.weights
}

// Len returns the number of categories
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []*Category {
	out := make([]*Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Lookup finds a category by id
func (c *Catalog) Lookup(id string) (*Category, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.categories[i], true
}

// IDs returns the category ids in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.categories))
	for i, category := range c.categories {
		ids[i] = category.ID
	}
	return ids
}

// KnownExams returns every exam id referenced by a mapping or a requirement,
// sorted.
func (c *Catalog) KnownExams() []string {
	seen := make(map[string]bool)
	for _, category := range c.categories {
		for exam := range category.ExamMappings {
			seen[exam] = true
		}
		for exam := range category.Requirements {
			seen[exam] = true
		}
	}

	exams := make([]string, 0, len(seen))
	for exam := range seen {
		exams = append(exams, exam)
	}
	sort.Strings(exams)
	return exams
}

// Set bundles the two catalogs the classifier works with.
type Set struct {
	DocumentTypes   *Catalog
	EducationLevels *Catalog
}

// Builtin builds the built-in document type and education level catalogs.
func Builtin() (*Set, error) {
	return build(DocumentTypeDefinitions(), EducationLevelDefinitions())
}

// MustBuiltin is like Builtin but panics if the built-in tables are broken.
func MustBuiltin() *Set {
	set, err := Builtin()
	if err != nil {
		panic(err)
	}
	return set
}

func build(docs, levels []Definition) (*Set, error) {
	documentTypes, err := New("document_types", DocumentTypeWeights, docs)
	if err != nil {
		return nil, err
	}

	educationLevels, err := New("education_levels", EducationLevelWeights, levels)
	if err != nil {
		return nil, err
	}

	return &Set{
		DocumentTypes:   documentTypes,
		EducationLevels: educationLevels,
	}, nil
}
