package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters.
// kramdown-rfc draft sources carry their metadata (docname, title, author) this way.
// Returns the parsed frontmatter and the remaining content without frontmatter.
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	frontmatterStr := strings.TrimSpace(rest[:endIdx])

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(frontmatterStr), &frontmatter); err != nil {
		return nil, content
	}

	remaining := rest[endIdx+4:] // +4 for "\n---"
	remaining = strings.TrimPrefix(remaining, "\n")

	return frontmatter, []byte(remaining)
}
