package model

// Column names a positional field of an institution's output row
type Column string

const (
	ColumnDegreeType         Column = "degree_type"
	ColumnOptionalDegreeType Column = "optional_degree_type"
	ColumnTitle              Column = "degree_title"
	ColumnALevelGrades       Column = "a_level_grade_req"
	ColumnALevelSubjects     Column = "a_level_subject_reqs"
	ColumnIBPoints           Column = "ib_grade_req"
	ColumnIBSubjects         Column = "ib_subject_req"
)

// Schema is the ordered column layout an institution emits.
// Downstream tabular output is position-sensitive, so the order is part of the contract.
type Schema struct {
	Name    string
	Columns []Column
}

// StandardSchema is the 6-field layout used by most institutions
var StandardSchema = Schema{
	Name: "standard",
	Columns: []Column{
		ColumnDegreeType,
		ColumnTitle,
		ColumnALevelGrades,
		ColumnALevelSubjects,
		ColumnIBPoints,
		ColumnIBSubjects,
	},
}

// ExtendedSchema inserts optional_degree_type after degree_type (7 fields)
var ExtendedSchema = Schema{
	Name: "extended",
	Columns: []Column{
		ColumnDegreeType,
		ColumnOptionalDegreeType,
		ColumnTitle,
		ColumnALevelGrades,
		ColumnALevelSubjects,
		ColumnIBPoints,
		ColumnIBSubjects,
	},
}

// Arity returns the number of fields in the schema
func (s Schema) Arity() int {
	return len(s.Columns)
}

// Header returns the column names as strings
func (s Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = string(c)
	}
	return header
}

// Row lays out the record in schema order. Absent fields are empty strings.
func (s Schema) Row(f DegreeFacts) []string {
	row := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		row[i] = f.Field(c)
	}
	return row
}

// Has reports whether the schema carries the given column
func (s Schema) Has(c Column) bool {
	for _, col := range s.Columns {
		if col == c {
			return true
		}
	}
	return false
}
