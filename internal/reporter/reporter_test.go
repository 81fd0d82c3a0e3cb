package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm/draftscan/internal/analyzer"
	"github.com/pthm/draftscan/internal/rules"
	"github.com/pthm/draftscan/internal/signals"
	"github.com/pthm/draftscan/internal/ui"
)

func sampleReport() *analyzer.Report {
	flags := []string{rules.FlagFormatDiagrams, rules.FlagRouteToParser}
	sections := []analyzer.SectionReport{
		{
			Number: "1", Title: "Introduction", StartLine: 1, EndLine: 4,
			LineCount: 4, Flags: []string{},
			Metrics: signals.Extract("Introduction", []string{"1.  Introduction", "", "   Prose.", ""}),
			Preview: "1.  Introduction\n\n   Prose.",
		},
		{
			Number: "2", Title: "Wire <Format> | Syntax", StartLine: 5, EndLine: 9,
			LineCount: 5, Severity: 45, Flags: flags,
			Metrics: signals.Extract("Wire", []string{"2.  Wire", "", "   A sender MUST NOT do this.", "", "   msg = ALPHA"}),
			Preview: "2.  Wire\n\n   msg = ```ALPHA```",
		},
	}
	return &analyzer.Report{
		Summary: analyzer.Summary{
			Input:        analyzer.Input{Path: "drafts/draft-x.txt", Docname: "draft-ietf-x-00"},
			SectionCount: len(sections),
			Hotspots:     analyzer.Hotspots(sections),
		},
		Sections: sections,
	}
}

func render(t *testing.T, format string) string {
	t.Helper()
	var buf bytes.Buffer
	r, err := New(format, &buf, nil)
	if err != nil {
		t.Fatalf("New(%q): %v", format, err)
	}
	if err := r.Report(sampleReport()); err != nil {
		t.Fatalf("Report(%q): %v", format, err)
	}
	return buf.String()
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		if !IsKnownFormat(format) {
			t.Errorf("IsKnownFormat(%q) = false", format)
		}
		if r, err := New(format, &bytes.Buffer{}, ui.NewStyles(false)); err != nil || r == nil {
			t.Errorf("New(%q) = %v, %v", format, r, err)
		}
	}

	if _, err := New("xml", &bytes.Buffer{}, nil); err == nil {
		t.Error("expected error for unknown format")
	}
	if IsKnownFormat("xml") {
		t.Error("IsKnownFormat(xml) = true")
	}
}

func TestJSONReporter(t *testing.T) {
	out := render(t, FormatJSON)

	var decoded struct {
		Summary struct {
			Input struct {
				Path    string `json:"path"`
				Docname string `json:"docname"`
			} `json:"input"`
			SectionCount int `json:"section_count"`
			Hotspots     []struct {
				Number string `json:"number"`
			} `json:"hotspots"`
		} `json:"summary"`
		Sections []map[string]json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if decoded.Summary.SectionCount != 2 || len(decoded.Sections) != 2 {
		t.Errorf("section count = %d, sections = %d", decoded.Summary.SectionCount, len(decoded.Sections))
	}
	if decoded.Summary.Input.Docname != "draft-ietf-x-00" {
		t.Errorf("docname = %q", decoded.Summary.Input.Docname)
	}
	if len(decoded.Summary.Hotspots) != 1 || decoded.Summary.Hotspots[0].Number != "2" {
		t.Errorf("hotspots = %+v", decoded.Summary.Hotspots)
	}

	if !strings.Contains(out, "Wire <Format> | Syntax") {
		t.Error("HTML characters should not be escaped")
	}
	if strings.Index(out, `"summary"`) > strings.Index(out, `"sections"`) {
		t.Error("summary should precede sections")
	}
	if strings.Index(out, `"MUST NOT"`) > strings.Index(out, `"TOTAL"`) {
		t.Error("rfc2119 keys out of order")
	}
	if !strings.HasPrefix(out, "{\n  \"summary\"") {
		t.Errorf("expected two-space indent, got %q", out[:20])
	}
}

func TestJSONReporterMatchesSchema(t *testing.T) {
	if err := ValidateJSON([]byte(render(t, FormatJSON))); err != nil {
		t.Errorf("json report: %v", err)
	}

	err := ValidateJSON([]byte(`{"summary": {"input": {}, "section_count": -1, "hotspots": []}, "sections": []}`))
	schemaErr, ok := err.(*SchemaError)
	if !ok {
		t.Fatalf("ValidateJSON(bad) = %v, want *SchemaError", err)
	}
	if len(schemaErr.Problems) != 2 {
		t.Errorf("problems = %q, want missing path and negative count", schemaErr.Problems)
	}

	if err := ValidateJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestYAMLReporter(t *testing.T) {
	out := render(t, FormatYAML)

	var decoded map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	summary, ok := decoded["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing summary: %v", decoded)
	}
	if summary["section_count"] != 2 {
		t.Errorf("section_count = %v", summary["section_count"])
	}

	if !strings.Contains(out, "rfc2119:\n") {
		t.Error("missing rfc2119 mapping")
	}
	if !strings.Contains(out, "MUST NOT: 1") {
		t.Error("missing MUST NOT count")
	}
	if strings.Index(out, "MUST NOT:") > strings.Index(out, "TOTAL:") {
		t.Error("rfc2119 keys out of order")
	}
}

func TestTerminalReporter(t *testing.T) {
	out := render(t, FormatTerminal)

	for _, want := range []string{
		"draft-ietf-x-00",
		"drafts/draft-x.txt",
		"HIGH:  45 2 Wire <Format> | Syntax [lines 5-9]",
		rules.FlagFormatDiagrams + ", " + rules.FlagRouteToParser,
		"Scanned 2 sections, 9 lines: 1 high, 0 medium, 1 low",
		"1 clean sections not shown",
		"Hotspots: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Introduction") {
		t.Error("clean sections should not be listed")
	}
}

func TestTerminalReporter_NoHotspots(t *testing.T) {
	report := sampleReport()
	report.Sections = report.Sections[:1]
	report.Summary.Hotspots = analyzer.Hotspots(report.Sections)

	var buf bytes.Buffer
	if err := NewTerminalReporter(&buf, ui.NewStyles(false)).Report(report); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "OK: No hotspots found") {
		t.Errorf("expected success line:\n%s", buf.String())
	}
}

func TestMarkdownReporter(t *testing.T) {
	out := render(t, FormatMarkdown)

	for _, want := range []string{
		"# Draft scan: draft-ietf-x-00\n",
		"- Sections: 2\n",
		"## Hotspots\n",
		`| 2 | Wire \<Format\> \| Syntax | 45 |`,
		`| 1 | Introduction | 1-4 | 0 | low |  |`,
		"### 2 Wire",
		"- Normative keywords: 1\n",
		"````\n2.  Wire\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "### 1 Introduction") {
		t.Error("only hotspots get a detail block")
	}
}

func TestHTMLReporter(t *testing.T) {
	out := render(t, FormatHTML)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Draft scan: draft-ietf-x-00</title>",
		"<h1>Draft scan: draft-ietf-x-00</h1>",
		"<table>",
		"Wire &lt;Format&gt; | Syntax",
		"</body>\n</html>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q", want)
		}
	}
	if strings.Contains(out, "<Format>") {
		t.Error("title should be escaped")
	}
}

func TestFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "```"},
		{"a ``` b", "````"},
		{"a ````` b", "``````"},
	}
	for _, tt := range tests {
		if got := fence(tt.in); got != tt.want {
			t.Errorf("fence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
