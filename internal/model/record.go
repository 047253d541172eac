package model

// NoSpecificSubjects is the sentinel used for ALevelSubjects when a page states
// that no particular A-level subjects are required.
const NoSpecificSubjects = "No specific subjects required"

// DegreeFacts is the normalized admissions record extracted from one course page.
// An empty string means the field is absent; the zero value is the all-absent record.
type DegreeFacts struct {
	DegreeType         string `json:"degree_type,omitempty"`          // Canonical vocabulary code (e.g., "BSc")
	OptionalDegreeType string `json:"optional_degree_type,omitempty"` // Longer-duration variant label (Oxford only)
	Title              string `json:"degree_title,omitempty"`         // Course title with degree token stripped
	ALevelGrades       string `json:"a_level_grade_req,omitempty"`    // e.g., "A*AA"
	ALevelSubjects     string `json:"a_level_subject_reqs,omitempty"` // Free text or NoSpecificSubjects
	IBPoints           string `json:"ib_grade_req,omitempty"`         // Two-digit point total
	IBSubjects         string `json:"ib_subject_req,omitempty"`       // Free text
}

// IsEmpty reports whether every field is absent.
func (f DegreeFacts) IsEmpty() bool {
	return f == DegreeFacts{}
}

// Field returns the value stored under the given column.
func (f DegreeFacts) Field(c Column) string {
	switch c {
	case ColumnDegreeType:
		return f.DegreeType
	case ColumnOptionalDegreeType:
		return f.OptionalDegreeType
	case ColumnTitle:
		return f.Title
	case ColumnALevelGrades:
		return f.ALevelGrades
	case ColumnALevelSubjects:
		return f.ALevelSubjects
	case ColumnIBPoints:
		return f.IBPoints
	case ColumnIBSubjects:
		return f.IBSubjects
	default:
		return ""
	}
}
