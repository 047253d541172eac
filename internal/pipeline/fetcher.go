package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ppiankov/degreefacts/internal/cache"
	"github.com/ppiankov/degreefacts/internal/model"
	"github.com/ppiankov/degreefacts/internal/util"
	"github.com/rs/zerolog/log"
)

// ErrDisallowedByRobots is returned when robots.txt forbids fetching a course page
var ErrDisallowedByRobots = errors.New("disallowed by robots.txt")

// fetchSleepFunc is overridden in tests to skip backoff waits
var fetchSleepFunc = time.Sleep

// StatusError is a non-2xx response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// TransportError is a failure to get any response at all
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "fetch: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves course pages over HTTP
type Fetcher struct {
	client     *resty.Client
	maxBytes   int64
	maxRetries int
	pages      *cache.PageCache
	robots     *util.RobotsChecker
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML     string
	Meta     model.FetchMeta
	FinalURL string
}

// NewFetcher creates a Fetcher. Proxy settings fall back to the environment when empty.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
	}
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := resty.NewWithClient(&http.Client{Transport: transport})
	client.SetTimeout(timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-GB,en;q=0.9")

	return &Fetcher{
		client:     client,
		maxBytes:   maxBytes,
		maxRetries: 2,
	}
}

// NewFetcherFromConfig builds a Fetcher with cache and robots gate wired per cfg
func NewFetcherFromConfig(cfg *model.Config) *Fetcher {
	f := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	f.SetMaxRetries(cfg.HTTP.MaxRetries)

	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		f.SetCache(cache.NewPageCache(store, cfg.Cache.DiskTTL))
	}
	if cfg.HTTP.RespectRobots {
		f.SetRobots(util.NewRobotsChecker(f.client, cfg.HTTP.UserAgent))
	}
	return f
}

// SetMaxRetries sets how many times a transient failure is retried
func (f *Fetcher) SetMaxRetries(n int) {
	if n < 0 {
		n = 0
	}
	f.maxRetries = n
}

// SetCache enables the page cache
func (f *Fetcher) SetCache(pages *cache.PageCache) {
	f.pages = pages
}

// SetRobots enables the robots.txt gate
func (f *Fetcher) SetRobots(robots *util.RobotsChecker) {
	f.robots = robots
}

// Robots returns the robots.txt checker, or nil when the gate is off
func (f *Fetcher) Robots() *util.RobotsChecker {
	return f.robots
}

// Fetch retrieves a course page once, consulting the cache and robots.txt first
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.pages != nil {
		if page, ok := f.pages.Load(rawURL); ok {
			return &FetchResult{
				HTML:     string(page.Body),
				FinalURL: page.FinalURL,
				Meta: model.FetchMeta{
					StatusCode:  page.StatusCode,
					ContentType: page.ContentType,
					FinalURL:    page.FinalURL,
					FromCache:   true,
				},
			}, nil
		}
	}

	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowedByRobots, rawURL)
		}
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &StatusError{Code: resp.StatusCode(), Status: resp.Status()}
	}

	data, err := io.ReadAll(io.LimitReader(body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	finalURL := rawURL
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}

	result := &FetchResult{
		HTML:     string(data),
		FinalURL: finalURL,
		Meta: model.FetchMeta{
			StatusCode:  resp.StatusCode(),
			ContentType: resp.Header().Get("Content-Type"),
			FinalURL:    finalURL,
		},
	}

	if f.pages != nil {
		err := f.pages.Save(&cache.Page{
			URL:         rawURL,
			FinalURL:    finalURL,
			StatusCode:  result.Meta.StatusCode,
			ContentType: result.Meta.ContentType,
			Body:        data,
			FetchedAt:   time.Now().UTC(),
		})
		if err != nil {
			log.Warn().Err(err).Str("url", rawURL).Msg("page cache write failed")
		}
	}

	return result, nil
}

// FetchWithRetry retries transient failures (network errors, 429, 5xx) with
// exponential backoff starting at one second.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	backoff := time.Second
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			log.Debug().Str("url", rawURL).Int("attempt", attempt+1).Err(lastErr).Msg("retrying fetch")
			fetchSleepFunc(backoff)
			backoff *= 2
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil || !isRetryableFetchError(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// isRetryableFetchError reports whether err is worth another attempt
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	var transportErr *TransportError
	return errors.As(err, &transportErr) && !errors.Is(err, context.Canceled)
}
