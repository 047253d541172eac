package adapters

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/degreefacts/internal/extract"
	"github.com/ppiankov/degreefacts/internal/model"
	"golang.org/x/net/html"
)

// ErrUnknownInstitution is returned when no adapter matches a name or URL
var ErrUnknownInstitution = errors.New("unknown institution")

// Adapter defines the interface for institution-specific extractors
type Adapter interface {
	// Name returns the adapter name (e.g., "cambridge")
	Name() string

	// Schema returns the output column layout this institution emits
	Schema() model.Schema

	// CanHandle checks if this adapter can handle the given course URL
	CanHandle(rawURL string) bool

	// Title extracts the degree type and cleaned course title
	Title(doc *goquery.Document) TitleFacts

	// Locate finds the span or cells holding admissions requirements
	Locate(doc *goquery.Document) Section

	// ExtractGrades pulls the A-level grade and IB points out of the located section
	ExtractGrades(sec Section) Grades

	// ExtractSubjects pulls subject requirement text, given the grades already found
	ExtractSubjects(sec Section, grades Grades) Subjects
}

// VariantExtractor is implemented by adapters whose schema carries optional_degree_type
type VariantExtractor interface {
	OptionalDegreeType(doc *goquery.Document) extract.Match
}

// TitleFacts is the output of the degree-type matcher and title cleanup
type TitleFacts struct {
	DegreeType string
	Title      string
}

// Section is what a locator found. Text is set by span strategies, Paragraphs by
// paragraph-set strategies, Cells by fixed-path strategies.
type Section struct {
	Locator    string
	Text       string
	Paragraphs []string
	Cells      Cells
}

// Found reports whether any strategy located a section
func (s Section) Found() bool {
	return s.Locator != ""
}

// Cells are independently addressed requirement cells
type Cells struct {
	ALevelGrades   string
	ALevelSubjects string
	IBPoints       string
	IBSubjects     string
}

// Grades carries the grade matches and the spans they came from
type Grades struct {
	ALevel     extract.Match
	ALevelSpan string
	IB         extract.Match
	IBSpan     string
}

// Subjects carries subject-text matches
type Subjects struct {
	ALevel extract.Match
	IB     extract.Match
}

// Registry manages institution adapters
type Registry struct {
	adapters []Adapter
	byName   map[string]Adapter
}

// NewRegistry creates a registry with the built-in institutions
func NewRegistry() *Registry {
	registry := &Registry{
		byName: make(map[string]Adapter),
	}

	registry.Register(NewCambridgeAdapter())
	registry.Register(NewLSEAdapter())
	registry.Register(NewOxfordAdapter())
	registry.Register(NewUCLAdapter())

	return registry
}

// Register registers a new adapter, replacing any adapter with the same name
func (r *Registry) Register(adapter Adapter) {
	name := strings.ToLower(adapter.Name())
	if _, exists := r.byName[name]; !exists {
		r.adapters = append(r.adapters, adapter)
	} else {
		for i, a := range r.adapters {
			if strings.ToLower(a.Name()) == name {
				r.adapters[i] = adapter
			}
		}
	}
	r.byName[name] = adapter
}

// Get returns the adapter registered under name
func (r *Registry) Get(name string) (Adapter, error) {
	adapter, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownInstitution, name, strings.Join(r.Names(), ", "))
	}
	return adapter, nil
}

// FindAdapter finds the first adapter that can handle the URL
func (r *Registry) FindAdapter(rawURL string) (Adapter, error) {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(rawURL) {
			return adapter, nil
		}
	}
	return nil, fmt.Errorf("%w: no adapter for %s", ErrUnknownInstitution, rawURL)
}

// Resolve selects an adapter by configured name; "auto" or "" selects by URL
func (r *Registry) Resolve(name, rawURL string) (Adapter, error) {
	if name == "" || strings.EqualFold(name, "auto") {
		return r.FindAdapter(rawURL)
	}
	return r.Get(name)
}

// Names returns the registered adapter names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Adapters returns the registered adapters in registration order
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// BaseAdapter provides common functionality for adapters
type BaseAdapter struct {
	domains []string
}

// CanHandle matches the URL host against the adapter's domains (exact or subdomain)
func (b *BaseAdapter) CanHandle(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, domain := range b.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Text returns the text content of the selection with non-breaking spaces normalized
func (b *BaseAdapter) Text(sel *goquery.Selection) string {
	return extract.NormalizeSpaces(sel.Text())
}

// OwnText returns the first non-blank text node directly under n, trimmed
func (b *BaseAdapter) OwnText(n *html.Node) string {
	if n == nil {
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if text := strings.TrimSpace(extract.NormalizeSpaces(c.Data)); text != "" {
			return text
		}
	}
	return ""
}

// FirstOwnText tries each selector in order and returns the first direct text
// found on any matched element. When no element has direct text, the collapsed
// full text of the first matched element is used.
func (b *BaseAdapter) FirstOwnText(doc *goquery.Document, selectors ...string) string {
	var fallback string
	for _, selector := range selectors {
		sel := doc.Find(selector)
		for _, n := range sel.Nodes {
			if text := b.OwnText(n); text != "" {
				return text
			}
		}
		if fallback == "" && sel.Length() > 0 {
			fallback = extract.CollapseWhitespace(b.Text(sel.First()))
		}
	}
	return fallback
}
