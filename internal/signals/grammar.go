package signals

import (
	"regexp"
	"strings"
)

// Grammar kinds, in detection order
const (
	KindABNF = "abnf"
	KindCDDL = "cddl"
	KindYANG = "yang"
	KindASN1 = "asn1"
	KindJSON = "json"
)

// minMarkerHits is the number of distinct markers a kind needs before it
// is inferred from the text alone
const minMarkerHits = 2

// grammarMarker lists heuristic markers for a format we want parsed deterministically
type grammarMarker struct {
	kind     string
	patterns []*regexp.Regexp
}

func multiline(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?m)` + p)
	}
	return out
}

var grammarMarkers = []grammarMarker{
	{KindABNF, multiline(
		`\bALPHA\b`, `\bDIGIT\b`, `\bSP\b`, `\bCRLF\b`,
		`^\s*[A-Za-z][A-Za-z0-9\-]*\s*=\s*.+`,
		`^\s*[A-Za-z][A-Za-z0-9\-]*\s*=\s*/\s*.+`,
	)},
	{KindCDDL, multiline(
		`^\s*\w[\w\-]*\s*=\s*\{`, `^\s*\w[\w\-]*\s*=\s*\[`,
		`\buint\b`, `\bint\b`, `\btstr\b`, `\bbstr\b`, `\bfloat\b`,
		`=>`, `\b\*\s*\w`,
	)},
	{KindYANG, multiline(
		`^\s*module\s+\w+\s*\{`, `^\s*container\s+\w+\s*\{`,
		`^\s*leaf\s+\w+\s*\{`, `\bnamespace\b`, `\bprefix\b`,
	)},
	{KindASN1, multiline(
		`::=`, `\bSEQUENCE\b`, `\bCHOICE\b`, `\bINTEGER\b`, `\bOCTET STRING\b`,
	)},
	{KindJSON, multiline(
		`"\s*[^"]+\s*"\s*:`,
		`\btrue\b|\bfalse\b|\bnull\b`,
	)},
}

// fenceHints are fenced-code language tags that name a kind outright
var fenceHints = []struct {
	kind  string
	hints []string
}{
	{KindABNF, []string{"```abnf"}},
	{KindCDDL, []string{"```cddl"}},
	{KindYANG, []string{"```yang"}},
	{KindASN1, []string{"```asn1", "```asn.1"}},
	{KindJSON, []string{"```json"}},
}

// DetectGrammarKinds returns the grammar kinds present in a section, in
// first-seen order. Fence hints win outright; otherwise a kind needs
// at least two distinct markers to match.
func DetectGrammarKinds(lines []string) []string {
	text := strings.Join(lines, "\n")
	lower := strings.ToLower(text)

	kinds := []string{}
	for _, fh := range fenceHints {
		for _, hint := range fh.hints {
			if strings.Contains(lower, hint) {
				kinds = append(kinds, fh.kind)
				break
			}
		}
	}

	for _, gm := range grammarMarkers {
		hits := 0
		for _, re := range gm.patterns {
			if re.MatchString(text) {
				hits++
			}
		}
		if hits >= minMarkerHits && !contains(kinds, gm.kind) {
			kinds = append(kinds, gm.kind)
		}
	}

	return kinds
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
