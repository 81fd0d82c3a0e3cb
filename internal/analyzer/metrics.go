package analyzer

import (
	"github.com/pthm/draftscan/internal/rules"
)

// Severity bands used by the human-readable reporters
const (
	BandLow    = "low"
	BandMedium = "medium"
	BandHigh   = "high"
)

// Band buckets a severity score
func Band(severity int) string {
	switch {
	case severity >= 40:
		return BandHigh
	case severity >= HotspotMinSeverity:
		return BandMedium
	default:
		return BandLow
	}
}

// Stats contains document-wide totals derived from a report
type Stats struct {
	TotalSections    int
	TotalLines       int
	TotalChars       int
	NormativeTotal   int
	CrossRefTotal    int
	RoutedToParser   int
	SectionsByBand   map[string]int
	GrammarKinds     []string
	MaxSeverity      int
	MeanSeverity     float64
	FlagsByFrequency map[string]int
}

// ComputeStats computes totals for a report
func ComputeStats(report *Report) *Stats {
	s := &Stats{
		SectionsByBand:   make(map[string]int),
		FlagsByFrequency: make(map[string]int),
		GrammarKinds:     []string{},
	}

	seenKinds := make(map[string]bool)
	severitySum := 0

	for _, sec := range report.Sections {
		s.TotalSections++
		s.TotalLines += sec.LineCount
		s.TotalChars += sec.CharCount
		s.NormativeTotal += sec.Metrics.RFC2119.Total()
		s.CrossRefTotal += sec.Metrics.CrossrefCount
		s.SectionsByBand[Band(sec.Severity)]++

		if sec.Severity > s.MaxSeverity {
			s.MaxSeverity = sec.Severity
		}
		severitySum += sec.Severity

		if rules.HasFlag(sec.Flags, rules.FlagRouteToParser) {
			s.RoutedToParser++
		}
		for _, f := range sec.Flags {
			s.FlagsByFrequency[f]++
		}
		for _, k := range sec.Metrics.GrammarKinds {
			if !seenKinds[k] {
				seenKinds[k] = true
				s.GrammarKinds = append(s.GrammarKinds, k)
			}
		}
	}

	if s.TotalSections > 0 {
		s.MeanSeverity = float64(severitySum) / float64(s.TotalSections)
	}

	return s
}
