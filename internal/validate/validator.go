package validate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
)

// Severity of a record issue
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MaxIBPoints is the highest possible IB diploma total
const MaxIBPoints = 45

var gradeShape = regexp.MustCompile(`^(?:A\*|[A-E])+$`)

// Issue is one problem found in an extracted record
type Issue struct {
	Column   model.Column
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Severity, i.Column, i.Message)
}

// Validator checks records against the record invariants. It reports; it never alters a record.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Check returns every issue found in facts for the given schema
func (v *Validator) Check(schema model.Schema, facts model.DegreeFacts) []Issue {
	var issues []Issue
	add := func(col model.Column, sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Column: col, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if dt := facts.DegreeType; dt != "" && !extract.IsDegreeType(dt) {
		add(model.ColumnDegreeType, SeverityError, "%q is not a canonical degree type", dt)
	}

	if facts.OptionalDegreeType != "" && !schema.Has(model.ColumnOptionalDegreeType) {
		add(model.ColumnOptionalDegreeType, SeverityError, "set on a %s-schema record", schema.Name)
	}

	if g := facts.ALevelGrades; g != "" {
		if n := len(g); n < 3 || n > 5 || !gradeShape.MatchString(g) {
			add(model.ColumnALevelGrades, SeverityWarning, "%q is not a 3-5 character grade string", g)
		}
	}

	if s := facts.ALevelSubjects; s != "" && s != model.NoSpecificSubjects && facts.ALevelGrades == "" {
		add(model.ColumnALevelSubjects, SeverityError, "subject text present without an A-level grade")
	}

	if p := facts.IBPoints; p != "" {
		n, err := strconv.Atoi(p)
		switch {
		case err != nil || len(p) != 2:
			add(model.ColumnIBPoints, SeverityWarning, "%q is not a two-digit point total", p)
		case n > MaxIBPoints:
			add(model.ColumnIBPoints, SeverityWarning, "%d exceeds the IB maximum of %d", n, MaxIBPoints)
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
