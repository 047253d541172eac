package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/rs/zerolog/log"
)

// CourseScanner fetches and extracts one course page
type CourseScanner interface {
	ScanCourse(ctx context.Context, course model.Course) model.CourseResult
}

// CrawlDelayer is implemented by scanners that know a host's robots.txt crawl delay
type CrawlDelayer interface {
	CrawlDelay(ctx context.Context, rawURL string) time.Duration
}

// CourseJob is one course waiting to be scanned
type CourseJob struct {
	Course    model.Course
	processor *BatchProcessor
}

// Execute waits for the host's rate limit and scans the course. A cancelled
// wait still yields a result so that every input row has an output row.
func (j *CourseJob) Execute(ctx context.Context) Result {
	b := j.processor
	b.applyCrawlDelay(ctx, j.Course.URL)

	if err := b.limiter.WaitWithDelay(ctx, j.Course.URL, b.delay); err != nil && ctx.Err() != nil {
		return &CourseOutcome{Result: model.CourseResult{
			Course:    j.Course,
			Error:     ctx.Err(),
			ErrorText: ctx.Err().Error(),
		}}
	}

	outcome := &CourseOutcome{Result: b.scanner.ScanCourse(ctx, j.Course)}
	b.notify(outcome.Result)
	return outcome
}

// CourseOutcome wraps a CourseResult for the pool
type CourseOutcome struct {
	Result model.CourseResult
}

// GetError returns the course's fetch or extraction error
func (o *CourseOutcome) GetError() error {
	return o.Result.Error
}

// BatchProcessor scans course lists with bounded concurrency and per-host rate limiting
type BatchProcessor struct {
	scanner     CourseScanner
	concurrency int
	limiter     *Limiter
	delay       time.Duration

	onResult func(model.CourseResult)
	notifyMu sync.Mutex

	delayedHosts sync.Map
}

// NewBatchProcessor creates a batch processor. requestsPerSecond <= 0 disables rate limiting.
func NewBatchProcessor(scanner CourseScanner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		scanner:     scanner,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// SetDelay sets a fixed pause before each request
func (b *BatchProcessor) SetDelay(d time.Duration) {
	b.delay = d
}

// OnResult registers a callback invoked once per finished course. Calls are serialized.
func (b *BatchProcessor) OnResult(fn func(model.CourseResult)) {
	b.onResult = fn
}

// Limiter returns the per-host limiter
func (b *BatchProcessor) Limiter() *Limiter {
	return b.limiter
}

// ProcessCourses scans every course and returns results in input order
func (b *BatchProcessor) ProcessCourses(ctx context.Context, courses []model.Course) []model.CourseResult {
	if len(courses) == 0 {
		return []model.CourseResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, course := range courses {
		if !pool.Submit(&CourseJob{Course: course, processor: b}) {
			break
		}
	}

	raw := pool.Wait()

	results := make([]model.CourseResult, len(courses))
	for i, course := range courses {
		if i < len(raw) && raw[i] != nil {
			results[i] = raw[i].(*CourseOutcome).Result
			continue
		}
		err := context.Cause(ctx)
		if err == nil {
			err = context.Canceled
		}
		results[i] = model.CourseResult{Course: course, Error: err, ErrorText: err.Error()}
	}

	return results
}

func (b *BatchProcessor) notify(result model.CourseResult) {
	if b.onResult == nil {
		return
	}
	b.notifyMu.Lock()
	defer b.notifyMu.Unlock()
	b.onResult(result)
}

// applyCrawlDelay consults the scanner once per host
func (b *BatchProcessor) applyCrawlDelay(ctx context.Context, rawURL string) {
	delayer, ok := b.scanner.(CrawlDelayer)
	if !ok {
		return
	}
	host, err := extractHost(rawURL)
	if err != nil {
		return
	}
	if _, seen := b.delayedHosts.LoadOrStore(host, struct{}{}); seen {
		return
	}

	if d := delayer.CrawlDelay(ctx, rawURL); d > 0 {
		log.Debug().Str("host", host).Dur("crawl_delay", d).Msg("applying robots.txt crawl delay")
		b.limiter.ApplyCrawlDelay(host, d)
	}
}
