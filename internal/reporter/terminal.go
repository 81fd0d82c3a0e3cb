package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pthm/draftscan/internal/analyzer"
	"github.com/pthm/draftscan/internal/ui"
)

// TerminalReporter outputs the report for humans, styled when interactive
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	return &TerminalReporter{w: w, styles: styles}
}

// Report prints every section that scored or raised a flag, then a summary.
// Clean sections are counted but not listed.
func (r *TerminalReporter) Report(report *analyzer.Report) error {
	s := r.styles
	input := report.Summary.Input

	fmt.Fprintln(r.w)
	name := filepath.Base(input.Path)
	if input.Docname != "" {
		name = input.Docname
	}
	fmt.Fprintln(r.w, s.Header.Render(name))
	fmt.Fprintln(r.w, s.Path.Render("  "+input.Path))

	clean := 0
	for _, sec := range report.Sections {
		if sec.Severity == 0 && len(sec.Flags) == 0 {
			clean++
			continue
		}
		r.printSection(sec)
	}

	r.printSummary(report, clean)
	return nil
}

func (r *TerminalReporter) printSection(sec analyzer.SectionReport) {
	s := r.styles
	band := analyzer.Band(sec.Severity)
	style := s.Band(band)

	fmt.Fprintf(r.w, "  %s %s %s",
		style.Render(s.BandIcon(band)),
		style.Render(fmt.Sprintf("%3d", sec.Severity)),
		fmt.Sprintf("%s %s", sec.Number, sec.Title))
	fmt.Fprintln(r.w, s.Subheader.Render(fmt.Sprintf(" [lines %d-%d]", sec.StartLine, sec.EndLine)))

	if len(sec.Flags) > 0 {
		fmt.Fprintf(r.w, "      %s\n", s.Flag.Render(strings.Join(sec.Flags, ", ")))
	}
}

func (r *TerminalReporter) printSummary(report *analyzer.Report, clean int) {
	s := r.styles
	stats := analyzer.ComputeStats(report)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	fmt.Fprintf(r.w, "Scanned %d sections, %d lines: %s, %s, %s\n",
		stats.TotalSections, stats.TotalLines,
		s.High.Render(fmt.Sprintf("%d high", stats.SectionsByBand[analyzer.BandHigh])),
		s.Medium.Render(fmt.Sprintf("%d medium", stats.SectionsByBand[analyzer.BandMedium])),
		s.Low.Render(fmt.Sprintf("%d low", stats.SectionsByBand[analyzer.BandLow])))
	fmt.Fprintf(r.w, "Max severity %d, mean %.1f, %d normative keywords, %d cross-references\n",
		stats.MaxSeverity, stats.MeanSeverity, stats.NormativeTotal, stats.CrossRefTotal)

	if len(stats.GrammarKinds) > 0 {
		fmt.Fprintf(r.w, "Grammar: %s (%d sections for a parser)\n",
			strings.Join(stats.GrammarKinds, ", "), stats.RoutedToParser)
	}

	if len(stats.FlagsByFrequency) > 0 {
		fmt.Fprintf(r.w, "Flags: %s\n", s.Flag.Render(formatFrequencies(stats.FlagsByFrequency)))
	}

	if clean > 0 {
		fmt.Fprintln(r.w, s.Subheader.Render(fmt.Sprintf("%d clean sections not shown", clean)))
	}

	hotspots := report.Summary.Hotspots
	if len(hotspots) == 0 {
		fmt.Fprintln(r.w, s.Success.Render(s.IconSuccess+" No hotspots found"))
		return
	}
	numbers := make([]string, len(hotspots))
	for i, h := range hotspots {
		numbers[i] = h.Number
	}
	fmt.Fprintf(r.w, "Hotspots: %s\n", s.High.Render(strings.Join(numbers, ", ")))
}

// formatFrequencies renders "flag×n" pairs, most frequent first
func formatFrequencies(freq map[string]int) string {
	flags := make([]string, 0, len(freq))
	for f := range freq {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool {
		if freq[flags[i]] != freq[flags[j]] {
			return freq[flags[i]] > freq[flags[j]]
		}
		return flags[i] < flags[j]
	})

	parts := make([]string, len(flags))
	for i, f := range flags {
		parts[i] = fmt.Sprintf("%s×%d", f, freq[f])
	}
	return strings.Join(parts, ", ")
}
