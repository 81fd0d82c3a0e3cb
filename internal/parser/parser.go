package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Source formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// pageFooterRe matches page footers like "Author, et al.   Expires 13 April 2026   [Page 12]"
var pageFooterRe = regexp.MustCompile(`^\s*\S+.*\[\s*Page\s+\d+\s*\]\s*$`)

// Document is a draft loaded into memory
type Document struct {
	Path   string
	Format string

	// Raw holds the lines with their terminators so filtered output can
	// pass content through verbatim. Page footers are stripped from plain
	// text drafts.
	Raw []string

	// Lines holds the same lines without terminators. Index i of Lines
	// and Raw always refer to the same line.
	Lines []string

	// Frontmatter is the YAML front matter of markdown draft sources, if any
	Frontmatter map[string]interface{}
}

// Load reads and prepares a draft from disk
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, content), nil
}

// Parse prepares draft content. Invalid UTF-8 is replaced rather than rejected.
func Parse(path string, content []byte) *Document {
	content = bytes.ToValidUTF8(content, []byte("\uFFFD"))

	format := DetectFormat(path)
	frontmatter, _ := ParseFrontmatter(content)

	raw := SplitLines(string(content))
	if format == FormatText {
		raw = StripPageFooters(raw)
	}
	lines := make([]string, len(raw))
	for i, ln := range raw {
		lines[i] = TrimEOL(ln)
	}

	return &Document{
		Path:        path,
		Format:      format,
		Raw:         raw,
		Lines:       lines,
		Frontmatter: frontmatter,
	}
}

// DetectFormat picks the source format from the file extension
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".mkd", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Sections splits the document with the splitter for its format
func (d *Document) Sections() []Section {
	if d.Format == FormatMarkdown {
		return splitAt(d.Lines, FindMarkdownHeadings(d))
	}
	return SplitSections(d.Lines)
}

// Docname returns the draft name declared in the front matter, or ""
func (d *Document) Docname() string {
	if d.Frontmatter == nil {
		return ""
	}
	if name, ok := d.Frontmatter["docname"].(string); ok {
		return name
	}
	return ""
}

// SplitLines splits text into lines, keeping each line's terminator
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// TrimEOL removes a trailing "\n" or "\r\n"
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// StripPageFooters drops page footer lines
func StripPageFooters(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, ln := range lines {
		if pageFooterRe.MatchString(TrimEOL(ln)) {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// IsBlank reports whether a line holds only whitespace
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
