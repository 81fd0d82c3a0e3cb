package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/draftscan/internal/analyzer"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

// MarkdownReporter outputs the report as a markdown document
type MarkdownReporter struct {
	w io.Writer
}

// NewMarkdownReporter creates a new markdown reporter
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{w: w}
}

// Report writes the markdown rendering of the report
func (r *MarkdownReporter) Report(report *analyzer.Report) error {
	_, err := io.WriteString(r.w, RenderMarkdown(report))
	return err
}

// RenderMarkdown renders a report as markdown: a summary, a hotspot table,
// a table of every section and a detail block per hotspot
func RenderMarkdown(report *analyzer.Report) string {
	var sb strings.Builder
	stats := analyzer.ComputeStats(report)
	input := report.Summary.Input

	title := input.Path
	if input.Docname != "" {
		title = input.Docname
	}
	fmt.Fprintf(&sb, "# Draft scan: %s\n\n", mdEscaper.Replace(title))

	fmt.Fprintf(&sb, "- Path: `%s`\n", input.Path)
	fmt.Fprintf(&sb, "- Sections: %d\n", report.Summary.SectionCount)
	fmt.Fprintf(&sb, "- Hotspots: %d\n", len(report.Summary.Hotspots))
	fmt.Fprintf(&sb, "- Max severity: %d\n", stats.MaxSeverity)
	if len(stats.GrammarKinds) > 0 {
		fmt.Fprintf(&sb, "- Grammar: %s\n", strings.Join(stats.GrammarKinds, ", "))
	}
	sb.WriteString("\n")

	if len(report.Summary.Hotspots) > 0 {
		sb.WriteString("## Hotspots\n\n")
		sb.WriteString("| Section | Title | Severity | Flags |\n")
		sb.WriteString("|---|---|---:|---|\n")
		for _, h := range report.Summary.Hotspots {
			fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n",
				h.Number, mdEscaper.Replace(h.Title), h.Severity, codeList(h.Flags))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Sections\n\n")
	sb.WriteString("| Section | Title | Lines | Severity | Band | Flags |\n")
	sb.WriteString("|---|---|---|---:|---|---|\n")
	for _, sec := range report.Sections {
		fmt.Fprintf(&sb, "| %s | %s | %d-%d | %d | %s | %s |\n",
			sec.Number, mdEscaper.Replace(sec.Title), sec.StartLine, sec.EndLine,
			sec.Severity, analyzer.Band(sec.Severity), codeList(sec.Flags))
	}

	hot := make(map[string]bool, len(report.Summary.Hotspots))
	for _, h := range report.Summary.Hotspots {
		hot[h.Number+"\x00"+h.Title] = true
	}
	for _, sec := range report.Sections {
		if !hot[sec.Number+"\x00"+sec.Title] {
			continue
		}
		m := sec.Metrics
		fmt.Fprintf(&sb, "\n### %s %s\n\n", sec.Number, mdEscaper.Replace(sec.Title))
		fmt.Fprintf(&sb, "- Severity: %d\n", sec.Severity)
		fmt.Fprintf(&sb, "- Lines: %d (%d long)\n", m.LineCount, m.LongLineCount)
		fmt.Fprintf(&sb, "- Normative keywords: %d\n", m.RFC2119.Total())
		fmt.Fprintf(&sb, "- Cross-references: %d, URLs: %d\n", m.CrossrefCount, m.URLCount)
		if len(m.GrammarKinds) > 0 {
			fmt.Fprintf(&sb, "- Grammar: %s\n", strings.Join(m.GrammarKinds, ", "))
		}
		if sec.Preview != "" {
			f := fence(sec.Preview)
			fmt.Fprintf(&sb, "\n%s\n%s\n%s\n", f, sec.Preview, f)
		}
	}

	return sb.String()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "`" + strings.Join(items, "`, `") + "`"
}

// fence returns a backtick fence longer than any backtick run in s
func fence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}
