package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay extends the built-in catalogs. It is read from a YAML file of the
// form:
//
//	document_types:
//	  - id: marksheet
//	    keywords: [marksheet, mark sheet]
//	    patterns: ['mark\s*sheet']
//	    exam_mappings: {jee: class12_marksheet}
//	  - id: photograph
//	    requirements:
//	      neet: {formats: [JPEG], size_kb: {min: 10, max: 200}}
//	education_levels:
//	  - id: 12th
//	    keywords: [hsc]
type Overlay struct {
	DocumentTypes   []Definition `yaml:"document_types"`
	EducationLevels []Definition `yaml:"education_levels"`
}

// ParseOverlay decodes overlay YAML
func ParseOverlay(data []byte) (*Overlay, error) {
	var overlay Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse catalog overlay: %w", err)
	}
	return &overlay, nil
}

// LoadOverlay reads and decodes an overlay file
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog overlay %s: %w", path, err)
	}
	return ParseOverlay(data)
}

// Load builds the built-in catalogs, extended by the overlay file at path
// when path is not empty.
func Load(path string) (*Set, error) {
	if path == "" {
		return Builtin()
	}

	overlay, err := LoadOverlay(path)
	if err != nil {
		return nil, err
	}
	return WithOverlay(overlay)
}

// WithOverlay builds the built-in catalogs extended by overlay. New ids are
// appended after the built-ins; known ids get their keywords and patterns
// appended and their exam mappings and requirements added or replaced.
func WithOverlay(overlay *Overlay) (*Set, error) {
	if overlay == nil {
		return Builtin()
	}
	return build(
		merge(DocumentTypeDefinitions(), overlay.DocumentTypes),
		merge(EducationLevelDefinitions(), overlay.EducationLevels),
	)
}

func merge(base, extra []Definition) []Definition {
	index := make(map[string]int, len(base))
	for i, def := range base {
		index[def.ID] = i
	}

	for _, def := range extra {
		i, known := index[def.ID]
		if !known {
			index[def.ID] = len(base)
			base = append(base, def)
			continue
		}

		existing := &base[i]
		existing.Keywords = append(existing.Keywords, def.Keywords...)
		existing.Patterns = append(existing.Patterns, def.Patterns...)
		if len(def.ExamMappings) > 0 && existing.ExamMappings == nil {
			existing.ExamMappings = make(map[string]string, len(def.ExamMappings))
		}
		for exam, label := range def.ExamMappings {
			existing.ExamMappings[exam] = label
		}
		if len(def.Requirements) > 0 && existing.Requirements == nil {
			existing.Requirements = make(map[string]Requirement, len(def.Requirements))
		}
		for exam, req := range def.Requirements {
			existing.Requirements[exam] = req
		}
	}

	return base
}
