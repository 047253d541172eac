package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/degreefacts/internal/model"
)

// Format is an output file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for an unsupported --format value or extension
var ErrUnknownFormat = errors.New("unknown output format")

// leadColumns precede the schema columns in every tabular output
var leadColumns = []string{"kiscourseid", "url"}

// ResolveFormat picks the format from an explicit name, else from path's extension.
// A path without a recognised extension defaults to CSV.
func ResolveFormat(name, path string) (Format, error) {
	if name != "" {
		switch f := Format(strings.ToLower(name)); f {
		case FormatCSV, FormatXLSX, FormatJSON:
			return f, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return FormatCSV, nil
	}
}

// Header returns the full header row for schema
func Header(schema model.Schema) []string {
	return append(append([]string{}, leadColumns...), schema.Header()...)
}

// Row converts one course result to a row aligned with Header(schema).
// Failed courses produce an all-absent row.
func Row(schema model.Schema, r model.CourseResult) []string {
	facts := r.Facts
	if r.Failed() {
		facts = model.DegreeFacts{}
	}
	return append([]string{r.Course.ID, r.Course.URL}, schema.Row(facts)...)
}

// WriteFile writes report to path in format
func WriteFile(path string, format Format, schema model.Schema, report *model.BatchReport) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}()

	switch format {
	case FormatCSV:
		return WriteCSV(file, schema, report.Results)
	case FormatXLSX:
		return WriteXLSX(file, schema, report.Results)
	case FormatJSON:
		return WriteJSON(file, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WidestSchema returns the schema that can hold records of every given
// schema. Mixed batches fall back to the extended layout.
func WidestSchema(schemas ...model.Schema) model.Schema {
	widest := model.StandardSchema
	for _, s := range schemas {
		if s.Arity() > widest.Arity() {
			widest = s
		}
	}
	return widest
}
