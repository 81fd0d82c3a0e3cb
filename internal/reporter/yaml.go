package reporter

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pthm/draftscan/internal/analyzer"
)

// YAMLReporter outputs the report as YAML
type YAMLReporter struct {
	w io.Writer
}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(w io.Writer) *YAMLReporter {
	return &YAMLReporter{w: w}
}

// Report writes the report as YAML with the same keys as the JSON report
func (r *YAMLReporter) Report(report *analyzer.Report) error {
	encoder := yaml.NewEncoder(r.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return encoder.Close()
}
