package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/draftscan/internal/analyzer"
)

// JSONReporter outputs the report as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Report writes the report as indented JSON. Keys keep struct order.
func (r *JSONReporter) Report(report *analyzer.Report) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}
