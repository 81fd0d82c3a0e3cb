// Package extract pulls sections and tables of contents out of plain-text drafts.
package extract

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pthm/draftscan/internal/parser"
)

var (
	// 4.1.  General Scope
	// 2.1.3.4.  Status 400 - Invalid Client Request
	headingRe      = regexp.MustCompile(`^(\d+(?:\.\d+)*)(?:\.)?\s+(.*\S)\s*$`)
	dotLeaderRe    = regexp.MustCompile(`\.{2,}\s*\d+\s*$`)
	numericQueryRe = regexp.MustCompile(`^\d+(?:\.\d+)*\.?$`)
)

// Heading is a section heading found by the extractor
type Heading struct {
	Number string `json:"number"`
	Title  string `json:"title"`
	Line   int    `json:"-"`
}

// Section is an extracted section
type Section struct {
	Number  string `json:"section_number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Lines returns the lines of content without terminators. Page furniture
// is kept; Clean removes it on request.
func Lines(content []byte) []string {
	content = bytes.ToValidUTF8(content, []byte("\uFFFD"))
	raw := parser.SplitLines(string(content))
	lines := make([]string, len(raw))
	for i, ln := range raw {
		lines[i] = parser.TrimEOL(ln)
	}
	return lines
}

// ReadLines loads a draft from disk with Lines
func ReadLines(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading draft: %w", err)
	}
	return Lines(content), nil
}

// FindHeadings returns headings surrounded by blank lines, skipping ToC
// dot leaders. Unlike the scanner's splitter, the end of the document
// counts as a blank line.
func FindHeadings(lines []string) []Heading {
	var headings []Heading
	n := len(lines)

	for i, ln := range lines {
		m := headingRe.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		if dotLeaderRe.MatchString(ln) {
			continue
		}
		prevBlank := i == 0 || parser.IsBlank(lines[i-1])
		nextBlank := i+1 >= n || parser.IsBlank(lines[i+1])
		if !prevBlank || !nextBlank {
			continue
		}
		headings = append(headings, Heading{Number: m[1], Title: m[2], Line: i})
	}

	return headings
}

// NormalizeQuery trims a query and drops the trailing dot of a section number
func NormalizeQuery(q string) string {
	q = strings.TrimSpace(q)
	if numericQueryRe.MatchString(q) && strings.HasSuffix(q, ".") {
		return strings.TrimSuffix(q, ".")
	}
	return q
}

// Find resolves a query against headings: exact number first, then the
// first subsection of that number, then the first title containing the
// query. Returns the heading index or -1.
func Find(headings []Heading, query string) int {
	q := NormalizeQuery(query)

	for i, h := range headings {
		if h.Number == q {
			return i
		}
	}

	for i, h := range headings {
		if strings.HasPrefix(h.Number, q+".") {
			return i
		}
	}

	qt := strings.ToLower(strings.TrimSpace(query))
	if qt == "" {
		return -1
	}
	for i, h := range headings {
		if strings.Contains(strings.ToLower(h.Title), qt) {
			return i
		}
	}

	return -1
}

// SplitQueries splits a comma-separated query list, dropping empty items
func SplitQueries(s string) []string {
	var out []string
	for _, q := range strings.Split(s, ",") {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out
}

// MissingError lists queries that matched no section
type MissingError struct {
	Queries []string
}

func (e *MissingError) Error() string {
	quoted := make([]string, len(e.Queries))
	for i, q := range e.Queries {
		quoted[i] = fmt.Sprintf("%q", q)
	}
	return "no section(s) matching: " + strings.Join(quoted, ", ")
}

// Resolve maps each query to a heading index. Every query must match.
func Resolve(headings []Heading, queries []string) ([]int, error) {
	var targets []int
	var missing []string

	for _, q := range queries {
		if idx := Find(headings, q); idx >= 0 {
			targets = append(targets, idx)
		} else {
			missing = append(missing, q)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingError{Queries: missing}
	}
	return targets, nil
}

// Chunk returns the lines of heading idx, up to the next heading
func Chunk(lines []string, headings []Heading, idx int) []string {
	start := headings[idx].Line
	end := len(lines)
	if idx+1 < len(headings) {
		end = headings[idx+1].Line
	}
	return lines[start:end]
}

// Options controls extraction
type Options struct {
	Clean bool
}

// Extract resolves queries and returns their sections in query order
func Extract(lines []string, queries []string, opts Options) ([]Section, error) {
	headings := FindHeadings(lines)

	targets, err := Resolve(headings, queries)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(targets))
	for _, idx := range targets {
		chunk := Chunk(lines, headings, idx)
		if opts.Clean {
			chunk = Clean(chunk)
		}
		sections = append(sections, Section{
			Number:  headings[idx].Number,
			Title:   headings[idx].Title,
			Content: strings.Join(chunk, "\n"),
		})
	}
	return sections, nil
}
