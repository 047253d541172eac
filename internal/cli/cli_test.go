package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/ppiankov/degreefacts/internal/pipeline"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer())
	v.AutomaticEnv()
	setDefaults(v, model.DefaultConfig())
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DEGREEFACTS_INSTITUTION", "oxford")
	t.Setenv("DEGREEFACTS_HTTP_TIMEOUT", "30s")
	t.Setenv("DEGREEFACTS_CONCURRENCY_WORKERS", "0")
	t.Setenv("DEGREEFACTS_RATE_LIMITING_DELAY", "250ms")

	cfg, err := loadConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, "oxford", cfg.Institution)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimiting.Delay)
	assert.Equal(t, 1, cfg.Concurrency.Workers, "non-positive worker count falls back to sequential")
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
institution: lse
http:
  max_retries: 5
output:
  format: xlsx
  path: lse.xlsx
`), 0o644))

	v := newTestViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "lse", cfg.Institution)
	assert.Equal(t, 5, cfg.HTTP.MaxRetries)
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, model.DefaultConfig().HTTP.Timeout, cfg.HTTP.Timeout)
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path, model.DefaultConfig()))

	v := newTestViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestBatchSchema(t *testing.T) {
	p := pipeline.NewPipeline(model.DefaultConfig(), nil)

	schema, err := batchSchema(p, "oxford", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, schema.Arity())

	_, err = batchSchema(p, "warwick", nil)
	assert.Error(t, err)

	mixed := []model.CourseResult{{Institution: "ucl"}, {Institution: "oxford"}, {}}
	schema, err = batchSchema(p, "auto", mixed)
	require.NoError(t, err)
	assert.Equal(t, model.ExtendedSchema.Name, schema.Name)

	schema, err = batchSchema(p, "auto", mixed[:1])
	require.NoError(t, err)
	assert.Equal(t, model.StandardSchema.Name, schema.Name)
}

func TestDescribe(t *testing.T) {
	r := model.CourseResult{
		Course: model.Course{URL: "https://www.lse.ac.uk/programmes/bsc-economics"},
		Facts:  model.DegreeFacts{DegreeType: "BSc", Title: "Economics", ALevelGrades: "A*AA", IBPoints: "38"},
	}
	assert.Equal(t, "BSc Economics · A-level A*AA · IB 38", describe(r))

	empty := model.CourseResult{Course: model.Course{URL: "https://www.lse.ac.uk/x"}}
	assert.Equal(t, "https://www.lse.ac.uk/x", describe(empty))
}
