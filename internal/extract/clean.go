package extract

import (
	"regexp"
	"strings"

	"github.com/pthm/draftscan/internal/parser"
)

// IETF page furniture
var (
	pageHeaderRe      = regexp.MustCompile(`(?i)^\s*(?:Internet-Draft|IETF|RFC)\b.*\s{2,}\S.*$`)
	pageFooterRe      = regexp.MustCompile(`(?i)^\s*.*\[\s*Page\s+\d+\s*\]\s*$`)
	dashRuleRe        = regexp.MustCompile(`^-{5,}$`)
	trailingPageRefRe = regexp.MustCompile(`\s+\[Page\s+\d+\]$`)
)

// Clean removes page headers, footers, form feeds and separator rules,
// collapses runs of blank lines and trims blank lines at both ends
func Clean(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, ln := range lines {
		if ln == "\f" {
			continue
		}
		if pageHeaderRe.MatchString(ln) || pageFooterRe.MatchString(ln) {
			continue
		}
		if dashRuleRe.MatchString(strings.TrimSpace(ln)) {
			continue
		}
		cleaned = append(cleaned, trailingPageRefRe.ReplaceAllString(ln, ""))
	}

	normalized := make([]string, 0, len(cleaned))
	prevBlank := false
	for _, ln := range cleaned {
		blank := parser.IsBlank(ln)
		if blank && prevBlank {
			continue
		}
		normalized = append(normalized, ln)
		prevBlank = blank
	}

	for len(normalized) > 0 && parser.IsBlank(normalized[0]) {
		normalized = normalized[1:]
	}
	for len(normalized) > 0 && parser.IsBlank(normalized[len(normalized)-1]) {
		normalized = normalized[:len(normalized)-1]
	}

	return normalized
}
