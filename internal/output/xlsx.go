package output

import (
	"fmt"
	"io"

	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	sheetCourses  = "courses"
	sheetFailures = "failures"
)

// WriteXLSX writes results to a workbook: one row per course on the courses
// sheet, and the error text of failed courses on a failures sheet.
func WriteXLSX(w io.Writer, schema model.Schema, results []model.CourseResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetCourses); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSheetRow(f, sheetCourses, 1, Header(schema)); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetCourses, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	var failures []model.CourseResult
	for i := range results {
		if err := writeSheetRow(f, sheetCourses, i+2, Row(schema, results[i])); err != nil {
			return err
		}
		if results[i].Failed() {
			failures = append(failures, results[i])
		}
	}

	if err := f.SetPanes(sheetCourses, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if len(failures) > 0 {
		if _, err := f.NewSheet(sheetFailures); err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		if err := writeSheetRow(f, sheetFailures, 1, []string{"kiscourseid", "url", "error"}); err != nil {
			return err
		}
		for i, r := range failures {
			if err := writeSheetRow(f, sheetFailures, i+2, []string{r.Course.ID, r.Course.URL, r.ErrorText}); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
