package reporter

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/draftscan/internal/analyzer"
)

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
`

const htmlTail = `</body>
</html>
`

// HTMLReporter outputs the markdown report rendered as a standalone HTML page
type HTMLReporter struct {
	w  io.Writer
	md goldmark.Markdown
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(w io.Writer) *HTMLReporter {
	return &HTMLReporter{
		w:  w,
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Report writes the HTML page
func (r *HTMLReporter) Report(report *analyzer.Report) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(RenderMarkdown(report)), &body); err != nil {
		return fmt.Errorf("rendering html report: %w", err)
	}

	title := report.Summary.Input.Path
	if report.Summary.Input.Docname != "" {
		title = report.Summary.Input.Docname
	}

	if _, err := fmt.Fprintf(r.w, htmlHead, html.EscapeString("Draft scan: "+title)); err != nil {
		return err
	}
	if _, err := body.WriteTo(r.w); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, htmlTail)
	return err
}
