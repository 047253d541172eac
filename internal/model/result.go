package model

import "time"

// Course is one entry of a course catalog list
type Course struct {
	ID  string `json:"kiscourseid"` // Course identifier (KIS course id)
	URL string `json:"url"`         // Course detail page
}

// CourseResult pairs a course with the facts extracted from its page
type CourseResult struct {
	Course      Course        `json:"course"`
	Institution string        `json:"institution"`
	Facts       DegreeFacts   `json:"facts"`
	Provenance  Provenance    `json:"provenance"`
	FetchMeta   FetchMeta     `json:"fetch_meta"`
	Duration    time.Duration `json:"duration_ns"`
	Error       error         `json:"-"`
	ErrorText   string        `json:"error,omitempty"`
}

// Failed reports whether the page could not be fetched or extracted
func (r *CourseResult) Failed() bool {
	return r.Error != nil
}

// Provenance records which locator and which detector rules produced each field
type Provenance struct {
	Locator string            `json:"locator,omitempty"` // e.g., "selector:#entry-requirements"
	Rules   map[Column]string `json:"rules,omitempty"`   // Column -> rule name (e.g., "cambridge:you-will-need")
}

// FetchMeta contains HTTP metadata from fetching the course page
type FetchMeta struct {
	StatusCode  int    `json:"status_code,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	FinalURL    string `json:"final_url,omitempty"`
	FromCache   bool   `json:"from_cache"`
}

// BatchReport is the JSON envelope written for a batch run
type BatchReport struct {
	RunID       string         `json:"run_id"`
	Institution string         `json:"institution"`
	Schema      []string       `json:"schema"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Results     []CourseResult `json:"results"`
	Coverage    Coverage       `json:"coverage"`
}

// Coverage summarizes how many records carry each field
type Coverage struct {
	Total    int            `json:"total"`
	Failures int            `json:"failures"`
	Fields   map[Column]int `json:"fields"`
	Percent  map[Column]int `json:"percent"`
}
