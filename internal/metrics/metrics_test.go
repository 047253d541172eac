package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveFetch("ucl", false)
	m.ObserveFetch("ucl", true)
	m.ObserveFetch("ucl", true)
	m.IncrementFetchFailure("lse")
	m.IncrementExtractionFailure("oxford")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PagesFetched.WithLabelValues("ucl", "network")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PagesFetched.WithLabelValues("ucl", "cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchFailures.WithLabelValues("lse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractionFailures.WithLabelValues("oxford")))
}

func TestMetrics_ObserveRecordUsesSchema(t *testing.T) {
	m := New()
	facts := model.DegreeFacts{
		DegreeType:         "BA",
		OptionalDegreeType: "MMath",
		ALevelGrades:       "A*A*A",
	}

	m.ObserveRecord("cambridge", model.StandardSchema, facts)
	m.ObserveRecord("oxford", model.ExtendedSchema, facts)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.FieldsPopulated.WithLabelValues("cambridge", "optional_degree_type")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldsPopulated.WithLabelValues("oxford", "optional_degree_type")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldsPopulated.WithLabelValues("cambridge", "a_level_grade_req")))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not panic on duplicate registration
	a, b := New(), New()
	a.IncrementFetchFailure("ucl")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FetchFailures.WithLabelValues("ucl")))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.ObserveFetch("lse", false)

	path := filepath.Join(t.TempDir(), "degreefacts.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `degreefacts_pages_fetched_total{institution="lse",source="network"} 1`)
}
