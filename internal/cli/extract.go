package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/ppiankov/degreefacts/internal/output"
	"github.com/ppiankov/degreefacts/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract admissions facts from a single course page",
	Long: `Extract fetches one course page and prints the record the institution's
adapter produces, with the rule that supplied each field.

Example:
  degreefacts extract https://www.ucl.ac.uk/prospective-students/undergraduate/degrees/economics-bsc
  degreefacts extract https://www.ox.ac.uk/admissions/undergraduate/courses/course-listing/mathematics --json
  degreefacts extract https://example.org/page --institution lse`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(viper.GetViper(), cmd.Flags(), httpFlagKeys)
	},
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	addHTTPFlags(extractCmd)
	extractCmd.Flags().Bool("json", false, "print the result as JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyNegatedFlags(cmd, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.Timeout*time.Duration(cfg.HTTP.MaxRetries+2))
	defer cancel()

	p := pipeline.NewPipeline(cfg, nil)
	schema, err := p.Schema(url)
	if err != nil {
		return err
	}

	result, err := p.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		report := output.NewReport(result.Institution, schema, time.Now())
		report.Results = []model.CourseResult{result}
		report.FinishedAt = time.Now().UTC()
		return output.WriteJSON(os.Stdout, report)
	}

	printRecord(result, schema)
	return nil
}

// printRecord prints one record as an aligned field table
func printRecord(result model.CourseResult, schema model.Schema) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "institution\t%s\n", result.Institution)
	_, _ = fmt.Fprintf(w, "locator\t%s\n", dash(result.Provenance.Locator))
	_, _ = fmt.Fprintln(w, "\t")
	for _, col := range schema.Columns {
		value := result.Facts.Field(col)
		rule := result.Provenance.Rules[col]
		if rule != "" {
			rule = "  [" + rule + "]"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s%s\n", col, dash(value), rule)
	}
	_ = w.Flush()

	if result.FetchMeta.FromCache {
		fmt.Fprintln(os.Stderr, "(served from cache)")
	}
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
