package score

import (
	"fmt"
	"sort"

	"github.com/ppiankov/degreefacts/internal/model"
)

// Thresholds for batch signals
const (
	FailureRateWarn = 20 // percent of courses that failed to fetch or extract
	LowCoverageWarn = 50 // percent of successful records carrying a field
)

// Signal is a diagnostic about a batch
type Signal struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Scorer summarizes how complete a batch's records are
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Coverage counts, per schema column, how many successful records carry a value.
// Percentages are over successful records, rounded down.
func (s *Scorer) Coverage(schema model.Schema, results []model.CourseResult) model.Coverage {
	cov := model.Coverage{
		Total:   len(results),
		Fields:  make(map[model.Column]int, schema.Arity()),
		Percent: make(map[model.Column]int, schema.Arity()),
	}

	for i := range results {
		if results[i].Failed() {
			cov.Failures++
			continue
		}
		for _, col := range schema.Columns {
			if results[i].Facts.Field(col) != "" {
				cov.Fields[col]++
			}
		}
	}

	succeeded := cov.Total - cov.Failures
	for _, col := range schema.Columns {
		if succeeded > 0 {
			cov.Percent[col] = cov.Fields[col] * 100 / succeeded
		} else {
			cov.Percent[col] = 0
		}
	}
	return cov
}

// Signals flags high failure rates and fields that are rarely or never found
func (s *Scorer) Signals(schema model.Schema, cov model.Coverage) []Signal {
	var signals []Signal
	if cov.Total == 0 {
		return signals
	}

	if rate := cov.Failures * 100 / cov.Total; rate >= FailureRateWarn {
		signals = append(signals, Signal{
			Type:     "high_failure_rate",
			Severity: "warning",
			Message:  fmt.Sprintf("%d of %d courses failed (%d%%)", cov.Failures, cov.Total, rate),
		})
	}

	if cov.Failures == cov.Total {
		return signals
	}

	var missing, sparse []string
	for _, col := range schema.Columns {
		switch pct := cov.Percent[col]; {
		case cov.Fields[col] == 0:
			missing = append(missing, string(col))
		case pct < LowCoverageWarn:
			sparse = append(sparse, fmt.Sprintf("%s (%d%%)", col, pct))
		}
	}
	sort.Strings(missing)
	sort.Strings(sparse)

	for _, col := range missing {
		signals = append(signals, Signal{
			Type:     "field_never_found",
			Severity: "warning",
			Message:  fmt.Sprintf("%s was not found on any page; the page layout may have changed", col),
		})
	}
	for _, col := range sparse {
		signals = append(signals, Signal{
			Type:     "low_field_coverage",
			Severity: "info",
			Message:  fmt.Sprintf("%s found on few pages", col),
		})
	}
	return signals
}
