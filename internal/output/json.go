package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/degreefacts/internal/model"
)

// NewReport starts a batch report with a fresh run id
func NewReport(institution string, schema model.Schema, started time.Time) *model.BatchReport {
	return &model.BatchReport{
		RunID:       uuid.NewString(),
		Institution: institution,
		Schema:      schema.Header(),
		StartedAt:   started.UTC(),
	}
}

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, report *model.BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
