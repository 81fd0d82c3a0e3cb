package signals

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ruleLineRe      = regexp.MustCompile(`^\s*[-=]{8,}\s*$`)
	diagramRunRe    = regexp.MustCompile(`[<>\[\]\(\)\-\+\|\\/]{6,}`)
	formatHeaderRe  = regexp.MustCompile(`^\s*[A-Za-z0-9_ \-]+(?:Packet|Frame|Parameters?)\s*\{\s*$`)
	figureCaptionRe = regexp.MustCompile(`(?i)^\s*Figure\s+\d+:`)
	hexDumpRe       = regexp.MustCompile(`(?i)\b(?:0x)?[0-9a-f]{2}(?:\s+[0-9a-f]{2}){8,}\b`)
)

const (
	minTableLines   = 3
	minArtLines     = 3
	artLineWidth    = 80
	minFormatHits   = 2
	LongLineWidth   = 100
	pipesPerRowLine = 2
)

// DetectTables reports ASCII tables: rows with several pipes, or
// horizontal rules made of dashes or equals signs.
func DetectTables(lines []string) bool {
	pipeLines, ruleLines := 0, 0
	for _, ln := range lines {
		if strings.Count(ln, "|") >= pipesPerRowLine {
			pipeLines++
		}
		if ruleLineRe.MatchString(ln) {
			ruleLines++
		}
	}
	return pipeLines >= minTableLines || ruleLines >= minTableLines
}

// DetectASCIIArt reports diagrams and state machines: wide lines carrying
// long runs of box-drawing punctuation.
func DetectASCIIArt(lines []string) bool {
	wide := 0
	for _, ln := range lines {
		if utf8.RuneCountInString(ln) >= artLineWidth && diagramRunRe.MatchString(ln) {
			wide++
		}
	}
	return wide >= minArtLines
}

// DetectFormatDiagrams reports wire format notation ("Example Frame {")
// and numbered figure captions.
func DetectFormatDiagrams(lines []string) bool {
	hits := 0
	for _, ln := range lines {
		if formatHeaderRe.MatchString(ln) || figureCaptionRe.MatchString(ln) {
			hits++
		}
	}
	return hits >= minFormatHits
}

// HasHexDump reports a run of nine or more two-digit hex tokens
func HasHexDump(text string) bool {
	return hexDumpRe.MatchString(text)
}

// CountLongLines counts lines of at least LongLineWidth characters
func CountLongLines(lines []string) int {
	n := 0
	for _, ln := range lines {
		if utf8.RuneCountInString(ln) >= LongLineWidth {
			n++
		}
	}
	return n
}
