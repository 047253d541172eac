package validate

import (
	"testing"

	"github.com/ppiankov/degreefacts/internal/model"
)

func TestValidator_Check(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		schema  model.Schema
		facts   model.DegreeFacts
		columns []model.Column
	}{
		{
			name:   "clean record",
			schema: model.StandardSchema,
			facts: model.DegreeFacts{
				DegreeType:     "BSc",
				Title:          "Economics",
				ALevelGrades:   "A*AA",
				ALevelSubjects: "Mathematics",
				IBPoints:       "38",
				IBSubjects:     "38 points - Mathematics",
			},
		},
		{
			name:   "all absent",
			schema: model.ExtendedSchema,
		},
		{
			name:    "non-canonical degree",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{DegreeType: "MSCi"},
			columns: []model.Column{model.ColumnDegreeType},
		},
		{
			name:    "optional degree type outside extended schema",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{OptionalDegreeType: "MMath"},
			columns: []model.Column{model.ColumnOptionalDegreeType},
		},
		{
			name:    "grade shape",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{ALevelGrades: "A*AA-AAA"},
			columns: []model.Column{model.ColumnALevelGrades},
		},
		{
			name:    "stray star",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{ALevelGrades: "B*BB"},
			columns: []model.Column{model.ColumnALevelGrades},
		},
		{
			name:    "subjects without grade",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{ALevelSubjects: "Chemistry"},
			columns: []model.Column{model.ColumnALevelSubjects},
		},
		{
			name:   "sentinel without grade",
			schema: model.StandardSchema,
			facts:  model.DegreeFacts{ALevelSubjects: model.NoSpecificSubjects},
		},
		{
			name:    "ib over maximum",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{IBPoints: "48"},
			columns: []model.Column{model.ColumnIBPoints},
		},
		{
			name:    "ib not two digits",
			schema:  model.StandardSchema,
			facts:   model.DegreeFacts{IBPoints: "38-40"},
			columns: []model.Column{model.ColumnIBPoints},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := v.Check(tt.schema, tt.facts)
			if len(issues) != len(tt.columns) {
				t.Fatalf("Expected %d issues, got %d: %v", len(tt.columns), len(issues), issues)
			}
			for i, col := range tt.columns {
				if issues[i].Column != col {
					t.Errorf("Issue %d: expected column %s, got %s", i, col, issues[i].Column)
				}
			}
		})
	}
}

func TestHasErrors(t *testing.T) {
	warnings := []Issue{{Severity: SeverityWarning}}
	if HasErrors(warnings) {
		t.Error("Expected warnings only")
	}
	if !HasErrors(append(warnings, Issue{Severity: SeverityError})) {
		t.Error("Expected an error")
	}
	if HasErrors(nil) {
		t.Error("Expected no errors for nil")
	}
}
