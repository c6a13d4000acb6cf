package catalog

// Fallback identifiers used when nothing in a catalog scores above zero.
const (
	FallbackDocumentType   = "document"
	FallbackEducationLevel = ""
)

// Document type identifiers
const (
	Photograph                     = "photograph"
	PostcardPhotograph             = "postcard_photograph"
	Signature                      = "signature"
	Class10Certificate             = "class10_certificate"
	CategoryCertificate            = "category_certificate"
	CasteOrPwdCertificate          = "caste_or_pwd_certificate"
	FingerThumbImpressions         = "finger_thumb_impressions"
	AddressProof                   = "address_proof"
	PhotoIDProof                   = "photo_id_proof"
	CertificatesAcademicOrCategory = "certificates_academic_or_category"
)

// Education level identifiers
const (
	Level10th       = "10th"
	Level12th       = "12th"
	LevelGraduation = "graduation"
)

// Exam identifiers referenced by the built-in mappings
const (
	ExamJEE  = "jee"
	ExamNEET = "neet"
	ExamUPSC = "upsc"
	ExamGATE = "gate"
	ExamCAT  = "cat"
)

// DocumentTypeDefinitions returns the built-in document type definitions in
// catalog order. Each call returns fresh slices and maps.
func DocumentTypeDefinitions() []Definition {
	return []Definition{
		{
			ID: Photograph,
			Keywords: []string{
				"photo", "photograph", "image", "picture", "pic",
				"passport size", "headshot", "passport photo", "passport photograph",
			},
			Patterns: []string{
				`photo(?:graph)?`,
				`image`,
				`picture`,
				`passport\s*(?:size|photo)`,
				`headshot`,
				`postcard\s*photo`,
			},
			ExamMappings: map[string]string{
				ExamJEE:  "photograph",
				ExamNEET: "passport_photograph",
				ExamUPSC: "photograph",
				ExamGATE: "photograph",
				ExamCAT:  "photograph",
			},
		},
		{
			ID: PostcardPhotograph,
			Keywords: []string{
				"postcard photo", "postcard photograph", "postcard size photo",
			},
			Patterns: []string{
				`postcard\s*(?:photo|photograph)`,
				`postcard\s*size`,
			},
			ExamMappings: map[string]string{
				ExamNEET: "postcard_photograph",
			},
		},
		{
			ID:       Signature,
			Keywords: []string{"signature", "sign", "autograph", "signed", "sig"},
			Patterns: []string{
				`signature`,
				`sign(?:ed)?`,
				`autograph`,
				`\bsig\b`,
			},
			ExamMappings: map[string]string{
				ExamJEE:  "signature",
				ExamNEET: "signature",
				ExamUPSC: "signature",
				ExamGATE: "signature",
				ExamCAT:  "signature",
			},
		},
		{
			ID: Class10Certificate,
			Keywords: []string{
				"class 10", "10th", "tenth", "x class", "sslc", "matriculation",
				"class10", "class-10", "10 class",
			},
			Patterns: []string{
				`class\s*10`,
				`10th?`,
				`tenth`,
				`x\s*class`,
				`sslc`,
				`matriculation`,
			},
			ExamMappings: map[string]string{
				ExamJEE:  "class10_certificate",
				ExamNEET: "class10_certificate",
			},
		},
		{
			ID: CategoryCertificate,
			Keywords: []string{
				"caste certificate", "category certificate", "reservation certificate",
				"obc", "sc", "st", "ews", "minority", "pwd", "disability",
			},
			Patterns: []string{
				`caste\s*certificate`,
				`category\s*certificate`,
				`reservation\s*certificate`,
				`obc|sc|st|ews`,
				`minority\s*certificate`,
				`pwd|disability`,
			},
			ExamMappings: map[string]string{
				ExamNEET: "category_certificate",
				ExamGATE: "category_certificate",
			},
		},
		{
			ID: CasteOrPwdCertificate,
			Keywords: []string{
				"caste certificate", "pwd certificate", "disability certificate",
				"reservation certificate", "category certificate",
			},
			Patterns: []string{
				`caste\s*certificate`,
				`pwd\s*certificate`,
				`disability\s*certificate`,
				`reservation\s*certificate`,
			},
			ExamMappings: map[string]string{
				ExamJEE: "caste_or_pwd_certificate",
			},
		},
		{
			ID: FingerThumbImpressions,
			Keywords: []string{
				"finger impression", "thumb impression", "fingerprint",
				"thumb print", "finger print",
			},
			Patterns: []string{
				`finger\s*(?:impression|print)`,
				`thumb\s*(?:impression|print)`,
				`fingerprint`,
			},
			ExamMappings: map[string]string{
				ExamNEET: "finger_thumb_impressions",
			},
		},
		{
			ID: AddressProof,
			Keywords: []string{
				"address proof", "address certificate", "domicile",
				"residence proof", "residential certificate",
			},
			Patterns: []string{
				`address\s*(?:proof|certificate)`,
				`domicile`,
				`residence\s*proof`,
				`residential\s*certificate`,
			},
			ExamMappings: map[string]string{
				ExamNEET: "address_proof",
			},
		},
		{
			ID: PhotoIDProof,
			Keywords: []string{
				"photo id", "identity proof", "id proof", "aadhar", "aadhaar",
				"pan card", "voter id", "passport", "driving license",
			},
			Patterns: []string{
				`photo\s*id`,
				`identity\s*proof`,
				`id\s*proof`,
				`aa?dh?aa?r`,
				`pan\s*card`,
				`voter\s*id`,
				`passport`,
				`driving\s*licen[cs]e`,
			},
			ExamMappings: map[string]string{
				ExamUPSC: "photo_id_proof",
			},
		},
		{
			ID: CertificatesAcademicOrCategory,
			Keywords: []string{
				"academic certificate", "degree certificate", "graduation certificate",
				"category certificate", "educational certificate",
			},
			Patterns: []string{
				`academic\s*certificate`,
				`degree\s*certificate`,
				`graduation\s*certificate`,
				`educational\s*certificate`,
			},
			ExamMappings: map[string]string{
				ExamCAT: "certificates_academic_or_category",
			},
		},
	}
}

// EducationLevelDefinitions returns the built-in education level definitions
// in catalog order.
func EducationLevelDefinitions() []Definition {
	return []Definition{
		{
			ID:       Level10th,
			Keywords: []string{"10th", "tenth", "class 10", "x class", "sslc", "matriculation"},
			Patterns: []string{
				`10th?`,
				`tenth`,
				`class\s*10`,
				`x\s*class`,
				`sslc`,
				`matriculation`,
			},
		},
		{
			ID:       Level12th,
			Keywords: []string{"12th", "twelfth", "class 12", "xii class", "intermediate", "higher secondary"},
			Patterns: []string{
				`12th?`,
				`twelfth`,
				`class\s*12`,
				`xii\s*class`,
				`intermediate`,
				`higher\s*secondary`,
			},
		},
		{
			ID:       LevelGraduation,
			Keywords: []string{"graduation", "bachelor", "b.tech", "b.sc", "b.com", "b.a", "undergraduate"},
			Patterns: []string{
				`graduation`,
				`bachelor`,
				`b\.?tech`,
				`b\.?sc`,
				`b\.?com`,
				`b\.?a`,
				`undergraduate`,
			},
		},
	}
}
