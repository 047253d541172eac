package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/degreefacts/internal/model"
)

// mockScanner implements CourseScanner
type mockScanner struct {
	failURL string
}

func (m *mockScanner) ScanCourse(ctx context.Context, course model.Course) model.CourseResult {
	// Later courses finish first
	time.Sleep(time.Duration(len(course.URL)%5) * time.Millisecond)

	result := model.CourseResult{Course: course, Institution: "ucl"}
	if course.URL == m.failURL {
		result.Error = errors.New("scan error")
		result.ErrorText = result.Error.Error()
		return result
	}
	result.Facts = model.DegreeFacts{DegreeType: "BSc", Title: course.ID}
	return result
}

type delayingScanner struct {
	mockScanner
	mu    sync.Mutex
	asked map[string]int
}

func (d *delayingScanner) CrawlDelay(ctx context.Context, rawURL string) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	host, _ := extractHost(rawURL)
	d.asked[host]++
	return 0
}

func testCourses() []model.Course {
	return []model.Course{
		{ID: "1001", URL: "https://www.ucl.ac.uk/degrees/economics-bsc"},
		{ID: "1002", URL: "https://www.ucl.ac.uk/degrees/history-ba"},
		{ID: "1003", URL: "https://www.ucl.ac.uk/degrees/physics-msci"},
		{ID: "1004", URL: "https://www.ucl.ac.uk/degrees/law-llb"},
	}
}

func TestBatchProcessor_ProcessCourses(t *testing.T) {
	processor := NewBatchProcessor(&mockScanner{}, 3, 0, 0)
	courses := testCourses()

	results := processor.ProcessCourses(context.Background(), courses)

	if len(results) != len(courses) {
		t.Fatalf("expected %d results, got %d", len(courses), len(results))
	}
	for i, res := range results {
		if res.Course != courses[i] {
			t.Errorf("result %d: expected course %s, got %s", i, courses[i].ID, res.Course.ID)
		}
		if res.Failed() {
			t.Errorf("unexpected error for %s: %v", res.Course.URL, res.Error)
		}
		if res.Facts.Title != courses[i].ID {
			t.Errorf("result %d: expected title %q, got %q", i, courses[i].ID, res.Facts.Title)
		}
	}
}

func TestBatchProcessor_ProcessCourses_Error(t *testing.T) {
	courses := testCourses()
	processor := NewBatchProcessor(&mockScanner{failURL: courses[1].URL}, 1, 0, 0)

	results := processor.ProcessCourses(context.Background(), courses)

	if len(results) != len(courses) {
		t.Fatalf("expected %d results, got %d", len(courses), len(results))
	}
	if !results[1].Failed() {
		t.Error("expected second course to fail")
	}
	if !results[1].Facts.IsEmpty() {
		t.Error("expected empty facts on error")
	}
	if results[2].Failed() {
		t.Error("a failure must not stop the batch")
	}
}

func TestBatchProcessor_ProcessCourses_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockScanner{}, 2, 0, 0)

	results := processor.ProcessCourses(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_OnResult(t *testing.T) {
	processor := NewBatchProcessor(&mockScanner{}, 2, 0, 0)

	var mu sync.Mutex
	seen := 0
	processor.OnResult(func(model.CourseResult) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	processor.ProcessCourses(context.Background(), testCourses())

	if seen != len(testCourses()) {
		t.Errorf("expected %d callbacks, got %d", len(testCourses()), seen)
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	processor := NewBatchProcessor(&mockScanner{}, 1, 0, 0)
	processor.SetDelay(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	courses := testCourses()
	results := processor.ProcessCourses(ctx, courses)

	if len(results) != len(courses) {
		t.Fatalf("expected a result per course, got %d", len(results))
	}
	for i, res := range results {
		if !res.Failed() {
			t.Errorf("result %d: expected cancellation error", i)
		}
		if res.Course != courses[i] {
			t.Errorf("result %d: course mismatch", i)
		}
	}
}

func TestBatchProcessor_CrawlDelayAskedOncePerHost(t *testing.T) {
	scanner := &delayingScanner{asked: make(map[string]int)}
	processor := NewBatchProcessor(scanner, 2, 0, 0)

	courses := append(testCourses(), model.Course{ID: "2001", URL: "https://www.lse.ac.uk/programmes/bsc-economics"})
	processor.ProcessCourses(context.Background(), courses)

	if scanner.asked["www.ucl.ac.uk"] != 1 {
		t.Errorf("expected one crawl delay lookup for ucl, got %d", scanner.asked["www.ucl.ac.uk"])
	}
	if scanner.asked["www.lse.ac.uk"] != 1 {
		t.Errorf("expected one crawl delay lookup for lse, got %d", scanner.asked["www.lse.ac.uk"])
	}
}

func TestCourseOutcome_GetError(t *testing.T) {
	ok := &CourseOutcome{}
	if ok.GetError() != nil {
		t.Errorf("expected nil error, got %v", ok.GetError())
	}

	expected := errors.New("scan failed")
	failed := &CourseOutcome{Result: model.CourseResult{Error: expected}}
	if failed.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, failed.GetError())
	}
}
