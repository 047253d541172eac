// Runs an institution adapter over saved course pages, without any network
// access. Useful when tuning extraction rules against pages kept on disk.
//
//	go run ./cmd/extract-file -institution oxford pages/*.html
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract/adapters"
	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/ppiankov/degreefacts/internal/validate"
)

func main() {
	institution := flag.String("institution", "", "adapter name ("+strings.Join(adapters.NewRegistry().Names(), ", ")+")")
	flag.Parse()

	if *institution == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: extract-file -institution <name> <page.html>...")
		os.Exit(2)
	}

	adapter, err := adapters.NewRegistry().Get(*institution)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	validator := validate.NewValidator()
	failed := 0

	for _, path := range flag.Args() {
		fmt.Printf("=== %s\n", path)

		facts, prov, err := extractFile(adapter, path)
		if err != nil {
			failed++
			fmt.Printf("  error: %v\n\n", err)
			continue
		}

		fmt.Printf("  locator: %s\n", prov.Locator)
		for _, col := range adapter.Schema().Columns {
			fmt.Printf("  %-22s %q\n", col, facts.Field(col))
		}

		rules := make([]string, 0, len(prov.Rules))
		for col, rule := range prov.Rules {
			rules = append(rules, fmt.Sprintf("%s=%s", col, rule))
		}
		sort.Strings(rules)
		if len(rules) > 0 {
			fmt.Printf("  rules:   %s\n", strings.Join(rules, " "))
		}

		for _, issue := range validator.Check(adapter.Schema(), facts) {
			fmt.Printf("  %s\n", issue)
		}
		fmt.Println()
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func extractFile(adapter adapters.Adapter, path string) (model.DegreeFacts, model.Provenance, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.DegreeFacts{}, model.Provenance{}, err
	}
	defer func() { _ = f.Close() }()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return model.DegreeFacts{}, model.Provenance{}, fmt.Errorf("parse: %w", err)
	}

	ext, err := adapters.Extract(adapter, doc)
	return ext.Facts, ext.Provenance, err
}
