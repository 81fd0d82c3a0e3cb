package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	// kramdown-rfc part separators: "--- abstract", "--- middle", "--- back"
	kramdownPartRe = regexp.MustCompile(`^---\s+(abstract|middle|back|note_\S*)\s*$`)
	// trailing IAL like "{#intro}" or "{:numbered="false"}"
	headingAttrRe = regexp.MustCompile(`\s*\{[:#][^}]*\}\s*$`)
)

type mdHeading struct {
	level int
	title string
	line  int
	attrs string
}

// FindMarkdownHeadings numbers the headings of a kramdown-rfc source the
// way the rendered draft would. Headings before "--- middle" are notes and
// stay unnumbered; headings after "--- back" are appendices lettered A, B, ...
// Headings marked numbered="false" are skipped. Line numbers index doc.Lines.
func FindMarkdownHeadings(doc *Document) []Heading {
	middleAt, backAt := -1, -1
	for i, ln := range doc.Lines {
		m := kramdownPartRe.FindStringSubmatch(strings.TrimSpace(ln))
		if m == nil {
			continue
		}
		switch m[1] {
		case "middle":
			middleAt = i
		case "back":
			backAt = i
		}
	}

	var body, back []mdHeading
	for _, h := range walkMarkdownHeadings(doc) {
		if strings.Contains(h.attrs, `numbered="false"`) {
			continue
		}
		switch {
		case middleAt >= 0 && h.line < middleAt:
			continue
		case backAt >= 0 && h.line > backAt:
			back = append(back, h)
		default:
			body = append(body, h)
		}
	}

	headings := numberHeadings(body, strconv.Itoa)
	return append(headings, numberHeadings(back, appendixLetter)...)
}

// walkMarkdownHeadings returns every heading of the document body,
// front matter excluded
func walkMarkdownHeadings(doc *Document) []mdHeading {
	content := []byte(strings.Join(doc.Raw, ""))
	_, source := ParseFrontmatter(content)
	offset := bytes.Count(content[:len(content)-len(source)], []byte("\n"))

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var headings []mdHeading
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		node, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		raw := string(node.Text(source))
		attrs := headingAttrRe.FindString(raw)
		title := strings.TrimSpace(strings.TrimSuffix(raw, attrs))

		line := 0
		if node.Lines().Len() > 0 {
			seg := node.Lines().At(0)
			line = bytes.Count(source[:seg.Start], []byte("\n"))
		}

		headings = append(headings, mdHeading{
			level: node.Level,
			title: title,
			line:  line + offset,
			attrs: attrs,
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}

// numberHeadings assigns dotted numbers by heading level. The shallowest
// level present is the top level; first formats top-level counters.
func numberHeadings(headings []mdHeading, first func(int) string) []Heading {
	if len(headings) == 0 {
		return nil
	}

	top := headings[0].level
	for _, h := range headings {
		top = min(top, h.level)
	}

	out := make([]Heading, 0, len(headings))
	var counters []int
	for _, h := range headings {
		depth := h.level - top + 1
		for len(counters) < depth {
			counters = append(counters, 0)
		}
		counters = counters[:depth]
		counters[depth-1]++

		parts := make([]string, depth)
		for i, c := range counters {
			if i == 0 {
				parts[i] = first(c)
			} else {
				parts[i] = strconv.Itoa(c)
			}
		}

		out = append(out, Heading{Number: strings.Join(parts, "."), Title: h.title, Line: h.line})
	}
	return out
}

func appendixLetter(n int) string {
	if n >= 1 && n <= 26 {
		return string(rune('A' + n - 1))
	}
	return strconv.Itoa(n)
}
