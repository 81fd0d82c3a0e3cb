package signals

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keywords are the RFC 2119 normative keywords. Two-word phrases come
// first so the alternation consumes them before their one-word prefix.
var Keywords = []string{
	"MUST NOT", "SHALL NOT", "SHOULD NOT",
	"MUST", "SHALL", "SHOULD", "REQUIRED", "RECOMMENDED", "MAY", "OPTIONAL",
}

// TotalKey holds the sum of all keyword counts
const TotalKey = "TOTAL"

var keywordRe = func() *regexp.Regexp {
	quoted := make([]string, len(Keywords))
	for i, k := range Keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}()

// KeywordCounts maps each keyword, plus TotalKey, to its number of occurrences.
// It serializes in keyword order rather than sorted key order.
type KeywordCounts map[string]int

// CountRFC2119 counts normative keywords. "MUST NOT" counts once, never
// also as "MUST".
func CountRFC2119(text string) KeywordCounts {
	counts := make(KeywordCounts, len(Keywords)+1)
	for _, k := range Keywords {
		counts[k] = 0
	}

	total := 0
	for _, m := range keywordRe.FindAllString(text, -1) {
		counts[m]++
		total++
	}
	counts[TotalKey] = total
	return counts
}

// Total returns the TOTAL entry
func (c KeywordCounts) Total() int {
	return c[TotalKey]
}

func (c KeywordCounts) orderedKeys() []string {
	return append(append([]string{}, Keywords...), TotalKey)
}

// MarshalJSON writes the counts as an object in keyword order
func (c KeywordCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.orderedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(c[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the counts as a mapping in keyword order
func (c KeywordCounts) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range c.orderedKeys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(c[k])},
		)
	}
	return node, nil
}
