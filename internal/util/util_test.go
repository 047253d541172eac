package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func robotsServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRobotsChecker_DisallowedPath(t *testing.T) {
	var hits atomic.Int32
	server := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\nCrawl-delay: 2\n", &hits)
	checker := NewRobotsChecker(resty.New(), "degreefacts/0.1 (+https://example.com)")

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/courses/economics")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 2*time.Second, delay)

	allowed, _, err = checker.CanFetch(context.Background(), server.URL+"/private/page")
	require.NoError(t, err)
	assert.False(t, allowed)

	assert.Equal(t, int32(1), hits.Load(), "robots.txt should be fetched once per host")
}

func TestRobotsChecker_AgentSpecificGroup(t *testing.T) {
	server := robotsServer(t, http.StatusOK, "User-agent: degreefacts\nDisallow: /\n\nUser-agent: *\nAllow: /\n", nil)
	checker := NewRobotsChecker(resty.New(), "degreefacts/0.1")

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/courses")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := robotsServer(t, http.StatusNotFound, "", nil)
	checker := NewRobotsChecker(resty.New(), "degreefacts")

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, delay)
}

func TestRobotsChecker_ServerErrorDisallows(t *testing.T) {
	server := robotsServer(t, http.StatusServiceUnavailable, "", nil)
	checker := NewRobotsChecker(resty.New(), "degreefacts")

	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	checker := NewRobotsChecker(resty.New(), "degreefacts")

	_, _, err := checker.CanFetch(context.Background(), "/relative/path")
	assert.Error(t, err)
}

func TestNormalizeUserAgent(t *testing.T) {
	assert.Equal(t, "degreefacts", NormalizeUserAgent("degreefacts/0.1 (+https://github.com/ppiankov/degreefacts)"))
	assert.Equal(t, "curl", NormalizeUserAgent("curl"))
	assert.Equal(t, "", NormalizeUserAgent(""))
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy.internal:3128", "http://secure-proxy.internal:3128", "lse.ac.uk")

	req := httptest.NewRequest(http.MethodGet, "https://www.ucl.ac.uk/courses", nil)
	got, err := proxy(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "secure-proxy.internal:3128", got.Host)

	req = httptest.NewRequest(http.MethodGet, "http://www.ox.ac.uk/courses", nil)
	got, err = proxy(req)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "proxy.internal:3128", got.Host)

	req = httptest.NewRequest(http.MethodGet, "https://www.lse.ac.uk/programmes", nil)
	got, err = proxy(req)
	require.NoError(t, err)
	assert.Nil(t, got, "NO_PROXY host should bypass the proxy")
}
