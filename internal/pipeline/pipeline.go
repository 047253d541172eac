package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract/adapters"
	"github.com/ppiankov/degreefacts/internal/metrics"
	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/ppiankov/degreefacts/internal/validate"
	"github.com/rs/zerolog/log"
)

// Pipeline fetches course pages and reduces each to one DegreeFacts record
type Pipeline struct {
	fetcher   *Fetcher
	registry  *adapters.Registry
	validator *validate.Validator
	metrics   *metrics.Metrics
	config    *model.Config
}

// NewPipeline creates a pipeline from cfg. A nil m gets a private metrics instance.
func NewPipeline(cfg *model.Config, m *metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	return &Pipeline{
		fetcher:   NewFetcherFromConfig(cfg),
		registry:  adapters.NewRegistry(),
		validator: validate.NewValidator(),
		metrics:   m,
		config:    cfg,
	}
}

// SetFetcher replaces the document source
func (p *Pipeline) SetFetcher(f *Fetcher) {
	p.fetcher = f
}

// Fetcher returns the document source
func (p *Pipeline) Fetcher() *Fetcher {
	return p.fetcher
}

// Registry returns the adapter registry
func (p *Pipeline) Registry() *adapters.Registry {
	return p.registry
}

// Metrics returns the run's metrics
func (p *Pipeline) Metrics() *metrics.Metrics {
	return p.metrics
}

// ScanCourse fetches and extracts one course. It never returns a partial
// record: any failure yields all-absent facts with Error set.
func (p *Pipeline) ScanCourse(ctx context.Context, course model.Course) (result model.CourseResult) {
	start := time.Now()
	result.Course = course
	defer func() {
		result.Duration = time.Since(start)
		if result.Error != nil {
			result.ErrorText = result.Error.Error()
		}
	}()

	adapter, err := p.registry.Resolve(p.config.Institution, course.URL)
	if err != nil {
		result.Error = err
		log.Error().Err(err).Str("url", course.URL).Msg("no adapter for course")
		return result
	}
	name := adapter.Name()
	result.Institution = name
	defer p.metrics.ObserveCourse(name, start)

	fetched, err := p.fetcher.FetchWithRetry(ctx, course.URL)
	if err != nil {
		result.Error = fmt.Errorf("fetch: %w", err)
		p.metrics.IncrementFetchFailure(name)
		log.Error().Err(err).Str("url", course.URL).Str("institution", name).Msg("fetch failed")
		return result
	}
	result.FetchMeta = fetched.Meta
	p.metrics.ObserveFetch(name, fetched.Meta.FromCache)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fetched.HTML))
	if err != nil {
		result.Error = fmt.Errorf("parse: %w", err)
		p.metrics.IncrementExtractionFailure(name)
		log.Error().Err(err).Str("url", course.URL).Msg("parse failed")
		return result
	}

	ext, err := adapters.Extract(adapter, doc)
	if err != nil {
		result.Error = fmt.Errorf("extract: %w", err)
		p.metrics.IncrementExtractionFailure(name)
		log.Error().Err(err).Str("url", course.URL).Str("institution", name).Msg("extraction failed")
		return result
	}

	result.Facts = ext.Facts
	result.Provenance = ext.Provenance

	schema := adapter.Schema()
	for _, issue := range p.validator.Check(schema, ext.Facts) {
		log.Warn().Str("url", course.URL).Str("column", string(issue.Column)).
			Str("severity", string(issue.Severity)).Msg(issue.Message)
	}
	p.metrics.ObserveRecord(name, schema, ext.Facts)

	log.Debug().Str("url", course.URL).Str("institution", name).
		Str("locator", ext.Provenance.Locator).Msg("extracted")

	return result
}

// ScanURL scans a single page with no course identifier
func (p *Pipeline) ScanURL(ctx context.Context, rawURL string) (model.CourseResult, error) {
	result := p.ScanCourse(ctx, model.Course{URL: rawURL})
	return result, result.Error
}

// Schema returns the column layout used for url
func (p *Pipeline) Schema(rawURL string) (model.Schema, error) {
	adapter, err := p.registry.Resolve(p.config.Institution, rawURL)
	if err != nil {
		return model.Schema{}, err
	}
	return adapter.Schema(), nil
}

// CrawlDelay returns the robots.txt crawl delay for url's host, or zero
func (p *Pipeline) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	robots := p.fetcher.Robots()
	if robots == nil {
		return 0
	}
	_, delay, err := robots.CanFetch(ctx, rawURL)
	if err != nil {
		return 0
	}
	return delay
}
