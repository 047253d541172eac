package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ppiankov/degreefacts/internal/metrics"
	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/ppiankov/degreefacts/internal/output"
	"github.com/ppiankov/degreefacts/internal/pipeline"
	"github.com/ppiankov/degreefacts/internal/score"
	"github.com/ppiankov/degreefacts/internal/worker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const banner = "═══════════════════════════════════════════════════════════"

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <courses.csv|url>",
	Short: "Extract admissions facts for every course in a list",
	Long: `Batch reads a course list and writes one record per course, in input order.

The list is a CSV file (local path or http(s) URL) with a header naming a
course id column (KISCOURSEID, course_id or id) and a URL column (CRSEURL,
url or course_url). A plain file with one URL per line also works.

Courses are fetched one at a time by default, with a fixed delay between
requests. A course that cannot be fetched or parsed still gets a row, with
every field empty.

Example:
  degreefacts batch ucl_courses.csv --institution ucl
  degreefacts batch https://example.org/cambridge.csv -o cambridge.xlsx
  degreefacts batch courses.csv --workers 4 --delay 500ms --metrics-file run.prom`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(viper.GetViper(), cmd.Flags(), httpFlagKeys); err != nil {
			return err
		}
		return bindFlags(viper.GetViper(), cmd.Flags(), batchFlagKeys)
	},
	RunE: runBatch,
}

var batchFlagKeys = map[string]string{
	"workers":      "concurrency.workers",
	"delay":        "rate_limiting.delay",
	"rps":          "rate_limiting.requests_per_second",
	"format":       "output.format",
	"output":       "output.path",
	"metrics-file": "output.metrics_file",
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addHTTPFlags(batchCmd)

	batchCmd.Flags().Int("workers", 1, "number of concurrent workers")
	batchCmd.Flags().Duration("delay", time.Second, "fixed pause before each request")
	batchCmd.Flags().Float64("rps", 1, "max requests per second per host (0 = unlimited)")
	batchCmd.Flags().StringP("output", "o", "degree_facts.csv", "output file")
	batchCmd.Flags().String("format", "", "output format: csv, xlsx, json (default from --output extension)")
	batchCmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
	batchCmd.Flags().Duration("batch-timeout", 0, "abort the whole batch after this long (0 = no limit)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyNegatedFlags(cmd, cfg)

	format, err := output.ResolveFormat(cfg.Output.Format, cfg.Output.Path)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if limit, _ := cmd.Flags().GetDuration("batch-timeout"); limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	fmt.Fprintf(os.Stderr, "\n%s\n  Degreefacts Batch\n%s\n\n", banner, banner)
	fmt.Fprintf(os.Stderr, "  Course list:  %s\n", source)
	fmt.Fprintf(os.Stderr, "  Institution:  %s\n", cfg.Institution)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Delay:        %v\n", cfg.RateLimiting.Delay)
	fmt.Fprintf(os.Stderr, "  Output:       %s (%s)\n", cfg.Output.Path, format)
	fmt.Fprintf(os.Stderr, "  Cache:        %v\n", cfg.Cache.Enabled)
	fmt.Fprintf(os.Stderr, "  Robots.txt:   %v\n\n", cfg.HTTP.RespectRobots)

	listClient := resty.New().
		SetTimeout(cfg.HTTP.Timeout).
		SetHeader("User-Agent", cfg.HTTP.UserAgent)
	courses, err := worker.ReadCourses(ctx, listClient, source)
	if err != nil {
		return fmt.Errorf("read course list: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d courses\n\n", len(courses))

	m := metrics.New()
	p := pipeline.NewPipeline(cfg, m)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	processor.SetDelay(cfg.RateLimiting.Delay)

	done := 0
	processor.OnResult(func(r model.CourseResult) {
		done++
		if r.Failed() {
			fmt.Fprintf(os.Stderr, "✗ [%d/%d] %s: %s\n", done, len(courses), r.Course.URL, r.ErrorText)
			return
		}
		fmt.Fprintf(os.Stderr, "✓ [%d/%d] %s\n", done, len(courses), describe(r))
	})

	started := time.Now()
	results := processor.ProcessCourses(ctx, courses)

	schema, err := batchSchema(p, cfg.Institution, results)
	if err != nil {
		return err
	}

	scorer := score.NewScorer()
	report := output.NewReport(cfg.Institution, schema, started)
	report.Results = results
	report.Coverage = scorer.Coverage(schema, results)
	report.FinishedAt = time.Now().UTC()

	if err := output.WriteFile(cfg.Output.Path, format, schema, report); err != nil {
		return err
	}

	if cfg.Output.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			log.Warn().Err(err).Msg("metrics not written")
		}
	}

	printSummary(report, schema, scorer.Signals(schema, report.Coverage), cfg.Output.Path)

	if ctx.Err() != nil {
		return fmt.Errorf("batch interrupted: %w", context.Cause(ctx))
	}
	return nil
}

// batchSchema picks the output layout: the named institution's schema, or the
// widest schema among the institutions the batch actually touched.
func batchSchema(p *pipeline.Pipeline, institution string, results []model.CourseResult) (model.Schema, error) {
	registry := p.Registry()
	if institution != "" && !strings.EqualFold(institution, "auto") {
		adapter, err := registry.Get(institution)
		if err != nil {
			return model.Schema{}, err
		}
		return adapter.Schema(), nil
	}

	var schemas []model.Schema
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Institution == "" || seen[r.Institution] {
			continue
		}
		seen[r.Institution] = true
		if adapter, err := registry.Get(r.Institution); err == nil {
			schemas = append(schemas, adapter.Schema())
		}
	}
	return output.WidestSchema(schemas...), nil
}

func describe(r model.CourseResult) string {
	title := strings.TrimSpace(r.Facts.DegreeType + " " + r.Facts.Title)
	if title == "" {
		title = r.Course.URL
	}
	parts := []string{title}
	if r.Facts.ALevelGrades != "" {
		parts = append(parts, "A-level "+r.Facts.ALevelGrades)
	}
	if r.Facts.IBPoints != "" {
		parts = append(parts, "IB "+r.Facts.IBPoints)
	}
	return strings.Join(parts, " · ")
}

func printSummary(report *model.BatchReport, schema model.Schema, signals []score.Signal, path string) {
	cov := report.Coverage

	fmt.Fprintf(os.Stderr, "\n%s\n  Batch Complete\n%s\n\n", banner, banner)
	fmt.Fprintf(os.Stderr, "  Run:       %s\n", report.RunID)
	fmt.Fprintf(os.Stderr, "  Total:     %d courses\n", cov.Total)
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", cov.Total-cov.Failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", cov.Failures)
	fmt.Fprintf(os.Stderr, "  Duration:  %v\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  Output:    %s\n\n", path)

	fmt.Fprintf(os.Stderr, "  Field coverage:\n")
	for _, col := range schema.Columns {
		fmt.Fprintf(os.Stderr, "    %-22s %4d  (%d%%)\n", col, cov.Fields[col], cov.Percent[col])
	}

	if len(signals) > 0 {
		fmt.Fprintf(os.Stderr, "\n  Signals:\n")
		for _, s := range signals {
			fmt.Fprintf(os.Stderr, "    [%s] %s\n", s.Severity, s.Message)
		}
	}
	fmt.Fprintln(os.Stderr)
}
