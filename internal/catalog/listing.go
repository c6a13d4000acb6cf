package catalog

// Listing summarizes a Set: the category ids in catalog order, the known exams
// and the exam-specific labels and upload requirements of every document type
// that has any.
type Listing struct {
	DocumentTypes   []string                          `json:"document_types"`
	EducationLevels []string                          `json:"education_levels"`
	Exams           []string                          `json:"exams"`
	ExamMappings    map[string]map[string]string      `json:"exam_mappings"`
	Requirements    map[string]map[string]Requirement `json:"requirements,omitempty"`
}

// Listing describes the set
func (s *Set) Listing() Listing {
	listing := Listing{
		DocumentTypes:   s.DocumentTypes.IDs(),
		EducationLevels: s.EducationLevels.IDs(),
		Exams:           s.DocumentTypes.KnownExams(),
		ExamMappings:    make(map[string]map[string]string),
	}

	for _, category := range s.DocumentTypes.Categories() {
		if len(category.Requirements) > 0 {
			if listing.Requirements == nil {
				listing.Requirements = make(map[string]map[string]Requirement)
			}
			reqs := make(map[string]Requirement, len(category.Requirements))
			for exam, req := range category.Requirements {
				reqs[exam] = req
			}
			listing.Requirements[category.ID] = reqs
		}

		if len(category.ExamMappings) == 0 {
			continue
		}
		mappings := make(map[string]string, len(category.ExamMappings))
		for exam, label := range category.ExamMappings {
			mappings[exam] = label
		}
		listing.ExamMappings[category.ID] = mappings
	}

	return listing
}
