package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/ppiankov/degreefacts/internal/model"
)

// ErrNoURLColumn is returned when a CSV course list has no URL column
var ErrNoURLColumn = errors.New("course list has no url column")

var (
	idColumns  = []string{"kiscourseid", "course_id", "id"}
	urlColumns = []string{"crseurl", "url", "course_url"}
)

// ReadCourses loads a course list from a local path or an http(s) URL
func ReadCourses(ctx context.Context, client *resty.Client, source string) ([]model.Course, error) {
	if isRemote(source) {
		if client == nil {
			client = resty.New()
		}
		resp, err := client.R().SetContext(ctx).Get(source)
		if err != nil {
			return nil, fmt.Errorf("download course list: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("download course list: unexpected status %s", resp.Status())
		}
		return ParseCourses(bytes.NewReader(resp.Body()))
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return ParseCourses(file)
}

// ParseCourses reads a CSV course list with a header row. Input without a
// comma in its first line is read as one URL per line, with '#' comments.
// Blank URLs are skipped, as are rows repeating both id and URL; distinct ids
// sharing a URL are kept as separate courses.
func ParseCourses(r io.Reader) ([]model.Course, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read course list: %w", err)
	}
	firstLine, _, _ := strings.Cut(string(first), "\n")
	firstLine = strings.TrimPrefix(firstLine, "\ufeff")

	if !strings.Contains(firstLine, ",") {
		return parseURLLines(br)
	}
	return parseCSV(br)
}

func parseCSV(r io.Reader) ([]model.Course, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idCol := findColumn(header, idColumns)
	urlCol := findColumn(header, urlColumns)
	if urlCol < 0 {
		return nil, fmt.Errorf("%w (header: %s)", ErrNoURLColumn, strings.Join(header, ","))
	}

	var courses []model.Course
	seen := make(map[model.Course]bool)
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if urlCol >= len(record) {
			continue
		}

		url := strings.TrimSpace(record[urlCol])
		if url == "" {
			continue
		}

		course := model.Course{URL: url}
		if idCol >= 0 && idCol < len(record) {
			course.ID = strings.TrimSpace(record[idCol])
		}
		if seen[course] {
			continue
		}
		seen[course] = true
		courses = append(courses, course)
	}

	return courses, nil
}

func parseURLLines(r io.Reader) ([]model.Course, error) {
	var courses []model.Course
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			courses = append(courses, model.Course{URL: line})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan course list: %w", err)
	}

	return courses, nil
}

func findColumn(header []string, names []string) int {
	for _, name := range names {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}
	return -1
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
