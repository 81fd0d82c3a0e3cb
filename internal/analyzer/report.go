// Package analyzer builds section reports and the document report for a draft.
package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pthm/draftscan/internal/parser"
	"github.com/pthm/draftscan/internal/rules"
	"github.com/pthm/draftscan/internal/signals"
)

const (
	// MaxHotspots caps the number of hotspots in the summary
	MaxHotspots = 12
	// HotspotMinSeverity is the lowest severity reported as a hotspot
	HotspotMinSeverity = 20
	// PreviewMaxChars caps a section preview, ellipsis included
	PreviewMaxChars = 300
)

var trailingSpaceRe = regexp.MustCompile(`\s+\n`)

// SectionReport is the read-only analysis result of one section.
// Line numbers are 1-based and inclusive.
type SectionReport struct {
	Number    string          `json:"number" yaml:"number"`
	Title     string          `json:"title" yaml:"title"`
	StartLine int             `json:"start_line" yaml:"start_line"`
	EndLine   int             `json:"end_line" yaml:"end_line"`
	LineCount int             `json:"line_count" yaml:"line_count"`
	CharCount int             `json:"char_count" yaml:"char_count"`
	Severity  int             `json:"severity" yaml:"severity"`
	Flags     []string        `json:"flags" yaml:"flags"`
	Metrics   signals.Metrics `json:"metrics" yaml:"metrics"`
	Preview   string          `json:"preview" yaml:"preview"`
}

// Hotspot is the summary view of a high-severity section
type Hotspot struct {
	Number    string   `json:"number" yaml:"number"`
	Title     string   `json:"title" yaml:"title"`
	Severity  int      `json:"severity" yaml:"severity"`
	Flags     []string `json:"flags" yaml:"flags"`
	StartLine int      `json:"start_line" yaml:"start_line"`
	EndLine   int      `json:"end_line" yaml:"end_line"`
}

// Input identifies the analyzed document
type Input struct {
	Path    string `json:"path" yaml:"path"`
	Docname string `json:"docname,omitempty" yaml:"docname,omitempty"`
}

// Summary is the document-level part of a report
type Summary struct {
	Input        Input     `json:"input" yaml:"input"`
	SectionCount int       `json:"section_count" yaml:"section_count"`
	Hotspots     []Hotspot `json:"hotspots" yaml:"hotspots"`
}

// Report is the full analysis of a document
type Report struct {
	Summary  Summary         `json:"summary" yaml:"summary"`
	Sections []SectionReport `json:"sections" yaml:"sections"`
}

// Analyzer scores sections with a rule registry
type Analyzer struct {
	registry *rules.Registry
}

// New creates an analyzer. A nil registry means the default rules.
func New(registry *rules.Registry) *Analyzer {
	if registry == nil {
		registry = rules.DefaultRegistry()
	}
	return &Analyzer{registry: registry}
}

// AnalyzeSection computes metrics, then flags, then severity for a section
func (a *Analyzer) AnalyzeSection(sec parser.Section) SectionReport {
	m := signals.Extract(sec.Title, sec.Lines)
	flags := a.registry.BuildFlags(m)

	return SectionReport{
		Number:    sec.Number,
		Title:     sec.Title,
		StartLine: sec.StartLine + 1,
		EndLine:   sec.EndLine + 1,
		LineCount: m.LineCount,
		CharCount: m.CharCount,
		Severity:  rules.ComputeSeverity(m, flags),
		Flags:     flags,
		Metrics:   m,
		Preview:   Preview(sec.Lines),
	}
}

// AnalyzeSections reports every section in document order
func (a *Analyzer) AnalyzeSections(sections []parser.Section) []SectionReport {
	reports := make([]SectionReport, 0, len(sections))
	for _, sec := range sections {
		reports = append(reports, a.AnalyzeSection(sec))
	}
	return reports
}

// Analyze splits and reports a whole document
func (a *Analyzer) Analyze(doc *parser.Document) *Report {
	return NewReport(doc, a.AnalyzeSections(doc.Sections()))
}

// NewReport assembles the document report from section reports
func NewReport(doc *parser.Document, reports []SectionReport) *Report {
	if reports == nil {
		reports = []SectionReport{}
	}
	return &Report{
		Summary: Summary{
			Input:        Input{Path: doc.Path, Docname: doc.Docname()},
			SectionCount: len(reports),
			Hotspots:     Hotspots(reports),
		},
		Sections: reports,
	}
}

// Hotspots returns up to MaxHotspots sections by descending severity,
// keeping those at or above HotspotMinSeverity. Equal severities keep
// document order.
func Hotspots(reports []SectionReport) []Hotspot {
	ranked := make([]SectionReport, len(reports))
	copy(ranked, reports)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Severity > ranked[j].Severity
	})
	if len(ranked) > MaxHotspots {
		ranked = ranked[:MaxHotspots]
	}

	hotspots := []Hotspot{}
	for _, r := range ranked {
		if r.Severity < HotspotMinSeverity {
			continue
		}
		hotspots = append(hotspots, Hotspot{
			Number:    r.Number,
			Title:     r.Title,
			Severity:  r.Severity,
			Flags:     r.Flags,
			StartLine: r.StartLine,
			EndLine:   r.EndLine,
		})
	}
	return hotspots
}

// Preview returns the section text with whitespace before line breaks
// collapsed, cut to PreviewMaxChars characters
func Preview(lines []string) string {
	txt := strings.TrimSpace(strings.Join(lines, "\n"))
	txt = trailingSpaceRe.ReplaceAllString(txt, "\n")

	runes := []rune(txt)
	if len(runes) <= PreviewMaxChars {
		return txt
	}
	return string(runes[:PreviewMaxChars-3]) + "..."
}
