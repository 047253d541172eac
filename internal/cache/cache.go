package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Store is a byte-oriented key/value cache layer
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Page is a fetched course page as kept in the cache
type Page struct {
	URL         string    `json:"url"`
	FinalURL    string    `json:"final_url"`
	StatusCode  int       `json:"status_code"`
	ContentType string    `json:"content_type"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// PageKey generates a cache key from a course URL. Fragments are ignored and
// the host is lowercased, so trivially different spellings share an entry.
func PageKey(rawURL string) string {
	normalized := strings.TrimSpace(rawURL)
	if parsed, err := url.Parse(normalized); err == nil {
		parsed.Fragment = ""
		parsed.Host = strings.ToLower(parsed.Host)
		normalized = parsed.String()
	}
	hash := sha256.Sum256([]byte(normalized))
	return "degreefacts:page:v1:" + hex.EncodeToString(hash[:])
}

// PageCache stores fetched pages in a Store
type PageCache struct {
	store Store
	ttl   time.Duration
}

// NewPageCache wraps store; ttl 0 leaves expiry to the store's default
func NewPageCache(store Store, ttl time.Duration) *PageCache {
	return &PageCache{store: store, ttl: ttl}
}

// Load returns the cached page for rawURL. Undecodable entries count as misses.
func (c *PageCache) Load(rawURL string) (*Page, bool) {
	data, found := c.store.Get(PageKey(rawURL))
	if !found {
		return nil, false
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		_ = c.store.Delete(PageKey(rawURL))
		return nil, false
	}
	return &page, true
}

// Save stores page under its request URL
func (c *PageCache) Save(page *Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	if err := c.store.Set(PageKey(page.URL), data, c.ttl); err != nil {
		return fmt.Errorf("cache page: %w", err)
	}
	return nil
}

// Clear drops every cached page
func (c *PageCache) Clear() error {
	return c.store.Clear()
}
