package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ppiankov/degreefacts/internal/model"
)

// CSVWriter writes course results as column-position-sensitive CSV
type CSVWriter struct {
	csv    *csv.Writer
	schema model.Schema
}

// NewCSVWriter creates a CSVWriter for schema
func NewCSVWriter(w io.Writer, schema model.Schema) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w), schema: schema}
}

// WriteHeader writes the kiscourseid, url and schema column names
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(Header(w.schema))
}

// WriteResults writes one row per result, in order
func (w *CSVWriter) WriteResults(results []model.CourseResult) error {
	for i := range results {
		if err := w.csv.Write(Row(w.schema, results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// WriteCSV writes header and results to w
func WriteCSV(w io.Writer, schema model.Schema, results []model.CourseResult) error {
	cw := NewCSVWriter(w, schema)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteResults(results); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
