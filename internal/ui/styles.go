package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/draftscan/internal/analyzer"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	// Severity band styles
	High    lipgloss.Style
	Medium  lipgloss.Style
	Low     lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Flag      lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconHigh    string
	IconMedium  string
	IconLow     string
	IconSuccess string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{}

	if enabled {
		s.High = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
		s.Medium = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))  // Yellow
		s.Low = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))     // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Flag = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.IconHigh = "\u2717"    // ✗
		s.IconMedium = "\u26a0"  // ⚠
		s.IconLow = "\u00b7"     // ·
		s.IconSuccess = "\u2713" // ✓
	} else {
		s.High = lipgloss.NewStyle()
		s.Medium = lipgloss.NewStyle()
		s.Low = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Flag = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		s.IconHigh = "HIGH:"
		s.IconMedium = "MED:"
		s.IconLow = "LOW:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Band returns the style for a severity band
func (s *Styles) Band(band string) lipgloss.Style {
	switch band {
	case analyzer.BandHigh:
		return s.High
	case analyzer.BandMedium:
		return s.Medium
	default:
		return s.Low
	}
}

// BandIcon returns the icon for a severity band
func (s *Styles) BandIcon(band string) string {
	switch band {
	case analyzer.BandHigh:
		return s.IconHigh
	case analyzer.BandMedium:
		return s.IconMedium
	default:
		return s.IconLow
	}
}
