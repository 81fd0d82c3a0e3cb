// Package filter rewrites a draft with its hard sections removed.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pthm/draftscan/internal/analyzer"
	"github.com/pthm/draftscan/internal/rules"
)

// DefaultSeverityThreshold is the severity at which a section is removed
const DefaultSeverityThreshold = 25

// alwaysRemove are flags that mark a section as bad regardless of severity
var alwaysRemove = []string{
	rules.FlagRouteToParser,
	rules.FlagWireFormatOrSyntax,
	rules.FlagIANARegistry,
}

// Options configures the filter behavior
type Options struct {
	SeverityThreshold int
	ReplaceWithMarker bool
}

// Filter removes bad sections from a draft
type Filter struct {
	opts Options
}

// New creates a new Filter
func New(opts Options) *Filter {
	return &Filter{opts: opts}
}

// IsBad reports whether a section should be removed
func (f *Filter) IsBad(r analyzer.SectionReport) bool {
	if r.Severity >= f.opts.SeverityThreshold {
		return true
	}
	for _, flag := range alwaysRemove {
		if rules.HasFlag(r.Flags, flag) {
			return true
		}
	}
	return false
}

// span is a 0-based inclusive line range scheduled for removal
type span struct {
	start, end int
	report     analyzer.SectionReport
}

// Removed returns the reports of the sections Apply would remove, in line order
func (f *Filter) Removed(reports []analyzer.SectionReport) []analyzer.SectionReport {
	spans := f.spans(reports)
	out := make([]analyzer.SectionReport, len(spans))
	for i, s := range spans {
		out[i] = s.report
	}
	return out
}

func (f *Filter) spans(reports []analyzer.SectionReport) []span {
	var spans []span
	for _, r := range reports {
		if f.IsBad(r) {
			spans = append(spans, span{start: r.StartLine - 1, end: r.EndLine - 1, report: r})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})
	return spans
}

// Apply returns the draft text with bad sections dropped, or replaced by a
// marker block when ReplaceWithMarker is set. raw holds the lines with
// their terminators; everything outside a bad section is copied verbatim.
func (f *Filter) Apply(raw []string, reports []analyzer.SectionReport) string {
	var sb strings.Builder
	i := 0

	for _, s := range f.spans(reports) {
		for i < s.start && i < len(raw) {
			sb.WriteString(raw[i])
			i++
		}

		if f.opts.ReplaceWithMarker {
			sb.WriteString(Marker(s.report))
		}

		i = s.end + 1
	}

	for i < len(raw) {
		sb.WriteString(raw[i])
		i++
	}

	return sb.String()
}

// Marker returns the block that stands in for a removed section
func Marker(r analyzer.SectionReport) string {
	return fmt.Sprintf("\n[REMOVED SECTION %s: %s]\n[severity=%d, flags=%s]\n\n",
		r.Number, r.Title, r.Severity, strings.Join(r.Flags, ","))
}
