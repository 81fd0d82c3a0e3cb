package extract

import (
	"fmt"
	"strings"
)

// FormatTOC renders headings as "<number>  <title>" lines, numbers padded
// to the widest one
func FormatTOC(headings []Heading) string {
	width := 4
	if len(headings) > 0 {
		width = 0
		for _, h := range headings {
			width = max(width, len(h.Number))
		}
	}

	var sb strings.Builder
	for _, h := range headings {
		fmt.Fprintf(&sb, "%-*s  %s\n", width, h.Number, h.Title)
	}
	return sb.String()
}
