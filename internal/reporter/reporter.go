package reporter

import (
	"fmt"
	"io"

	"github.com/pthm/draftscan/internal/analyzer"
	"github.com/pthm/draftscan/internal/ui"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatTerminal = ui.FormatTerminal
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Formats lists every supported output format
var Formats = []string{FormatJSON, FormatYAML, FormatTerminal, FormatMarkdown, FormatHTML}

// Reporter defines the interface for outputting scan reports
type Reporter interface {
	// Report writes the document report
	Report(report *analyzer.Report) error
}

// IsKnownFormat reports whether format names a reporter
func IsKnownFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// New returns the reporter for format writing to w. Styles are only used
// by the terminal reporter and may be nil.
func New(format string, w io.Writer, styles *ui.Styles) (Reporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONReporter(w), nil
	case FormatYAML:
		return NewYAMLReporter(w), nil
	case FormatTerminal:
		if styles == nil {
			styles = ui.NewStyles(false)
		}
		return NewTerminalReporter(w, styles), nil
	case FormatMarkdown:
		return NewMarkdownReporter(w), nil
	case FormatHTML:
		return NewHTMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
