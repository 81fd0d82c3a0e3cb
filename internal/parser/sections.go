package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matches body headings like "1.  Overview" or "19.6.  CRYPTO Frames".
// Appendix headings ("A.1.") are not numeric and never match.
var (
	sectionHeadingRe = regexp.MustCompile(`^ ?(\d+(?:\.\d+)*)\.(?:\s{2,}|\s+)(.*\S)\s*$`)
	tocDotLeaderRe   = regexp.MustCompile(`\.{2,}\s*\d+\s*$`)
)

const (
	// DocumentNumber and DocumentTitle name the single section of a
	// document without recognizable headings.
	DocumentNumber = "0"
	DocumentTitle  = "Document"

	// FrontMatterTitle names the lines preceding the first heading
	FrontMatterTitle = "Front Matter"

	minTitleLen = 3
)

// Heading is a recognized section heading
type Heading struct {
	Number string
	Title  string
	Line   int // 0-based
}

// Section is a contiguous, heading-delimited span of lines
type Section struct {
	Number    string
	Title     string
	StartLine int // 0-based, inclusive
	EndLine   int // 0-based, inclusive
	Lines     []string
}

// FindHeadings returns the body headings of a draft in document order.
//
// A heading must start at column 0 (one leading space is tolerated),
// carry a title of at least three characters, not end in a ToC dot leader,
// and be surrounded by blank lines. The line before the first line counts
// as blank; there is no blank line after the last one.
func FindHeadings(lines []string) []Heading {
	var headings []Heading
	n := len(lines)

	for i, ln := range lines {
		if ln == "" {
			continue
		}
		// indented ToC entries and nested lists
		if strings.HasPrefix(ln, "  ") || strings.HasPrefix(ln, "\t") {
			continue
		}

		m := sectionHeadingRe.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		if tocDotLeaderRe.MatchString(ln) {
			continue
		}

		number, title := m[1], strings.TrimSpace(m[2])
		if utf8.RuneCountInString(title) < minTitleLen {
			continue
		}

		prevBlank := i == 0 || IsBlank(lines[i-1])
		nextBlank := i+1 < n && IsBlank(lines[i+1])
		if prevBlank && nextBlank {
			headings = append(headings, Heading{Number: number, Title: title, Line: i})
		}
	}

	return headings
}

// SplitSections partitions lines into sections. Every line belongs to
// exactly one section; lines before the first heading form a front matter
// section, and a document with no headings is a single section.
func SplitSections(lines []string) []Section {
	return splitAt(lines, FindHeadings(lines))
}

// splitAt partitions lines at the given headings, which must be in line order
func splitAt(lines []string, headings []Heading) []Section {
	if len(headings) == 0 {
		return []Section{{
			Number:    DocumentNumber,
			Title:     DocumentTitle,
			StartLine: 0,
			EndLine:   len(lines) - 1,
			Lines:     lines,
		}}
	}

	sections := make([]Section, 0, len(headings)+1)
	if first := headings[0].Line; first > 0 {
		sections = append(sections, Section{
			Number:    DocumentNumber,
			Title:     FrontMatterTitle,
			StartLine: 0,
			EndLine:   first - 1,
			Lines:     lines[:first],
		})
	}

	for i, h := range headings {
		end := len(lines) - 1
		if i+1 < len(headings) {
			end = headings[i+1].Line - 1
		}
		sections = append(sections, Section{
			Number:    h.Number,
			Title:     h.Title,
			StartLine: h.Line,
			EndLine:   end,
			Lines:     lines[h.Line : end+1],
		})
	}

	return sections
}
