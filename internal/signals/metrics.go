// Package signals computes the per-section metrics that drive flags and scoring.
package signals

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	crossRefRe = regexp.MustCompile(`\[(?:RFC|I-D\.)[A-Za-z0-9\.\-]+(?:[:\]]|\])`)
	urlRe      = regexp.MustCompile(`https?://\S+`)
)

// Metrics holds every signal computed for a section. Field order is the
// serialized key order.
type Metrics struct {
	// Title is used by title-keyword flags but is not part of the report
	Title string `json:"-" yaml:"-"`

	LineCount         int           `json:"line_count" yaml:"line_count"`
	CharCount         int           `json:"char_count" yaml:"char_count"`
	LongLineCount     int           `json:"long_line_count" yaml:"long_line_count"`
	GrammarKinds      []string      `json:"grammar_kinds" yaml:"grammar_kinds"`
	HasTables         bool          `json:"has_tables" yaml:"has_tables"`
	HasASCIIArt       bool          `json:"has_ascii_art" yaml:"has_ascii_art"`
	HasFormatDiagrams bool          `json:"has_format_diagrams" yaml:"has_format_diagrams"`
	HasHexDump        bool          `json:"has_hex_dump" yaml:"has_hex_dump"`
	CrossrefCount     int           `json:"crossref_count" yaml:"crossref_count"`
	URLCount          int           `json:"url_count" yaml:"url_count"`
	RFC2119           KeywordCounts `json:"rfc2119" yaml:"rfc2119"`
}

// Extract computes all signals for a section's lines. Every detector runs.
func Extract(title string, lines []string) Metrics {
	text := strings.Join(lines, "\n")

	return Metrics{
		Title:             title,
		LineCount:         len(lines),
		CharCount:         utf8.RuneCountInString(text),
		LongLineCount:     CountLongLines(lines),
		GrammarKinds:      DetectGrammarKinds(lines),
		HasTables:         DetectTables(lines),
		HasASCIIArt:       DetectASCIIArt(lines),
		HasFormatDiagrams: DetectFormatDiagrams(lines),
		HasHexDump:        HasHexDump(text),
		CrossrefCount:     CountCrossRefs(text),
		URLCount:          CountURLs(text),
		RFC2119:           CountRFC2119(text),
	}
}

// CountCrossRefs counts citations like [RFC9000] or [I-D.ietf-quic-http]
func CountCrossRefs(text string) int {
	return len(crossRefRe.FindAllStringIndex(text, -1))
}

// CountURLs counts http and https URLs
func CountURLs(text string) int {
	return len(urlRe.FindAllStringIndex(text, -1))
}
