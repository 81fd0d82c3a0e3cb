package signals

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCountRFC2119_NoDoubleCounting(t *testing.T) {
	counts := CountRFC2119("MUST NOT MUST SHOULD NOT SHOULD")

	assert.Equal(t, 1, counts["MUST NOT"])
	assert.Equal(t, 1, counts["MUST"])
	assert.Equal(t, 1, counts["SHOULD NOT"])
	assert.Equal(t, 1, counts["SHOULD"])
	assert.Equal(t, 4, counts["TOTAL"])
	assert.Equal(t, 4, counts.Total())
}

func TestCountRFC2119_WordBoundaries(t *testing.T) {
	counts := CountRFC2119("MUSTARD is not MAYBE, must is lowercase, OPTIONAL. REQUIRED!")

	assert.Equal(t, 0, counts["MUST"])
	assert.Equal(t, 0, counts["MAY"])
	assert.Equal(t, 1, counts["OPTIONAL"])
	assert.Equal(t, 1, counts["REQUIRED"])
	assert.Equal(t, 2, counts.Total())
}

func TestCountRFC2119_AllKeysPresent(t *testing.T) {
	counts := CountRFC2119("")
	for _, k := range Keywords {
		v, ok := counts[k]
		assert.True(t, ok, "missing key %q", k)
		assert.Zero(t, v)
	}
	assert.Equal(t, 0, counts[TotalKey])
}

func TestKeywordCounts_MarshalJSONKeepsKeywordOrder(t *testing.T) {
	b, err := json.Marshal(CountRFC2119("MUST"))
	require.NoError(t, err)

	want := `{"MUST NOT":0,"SHALL NOT":0,"SHOULD NOT":0,"MUST":1,"SHALL":0,"SHOULD":0,` +
		`"REQUIRED":0,"RECOMMENDED":0,"MAY":0,"OPTIONAL":0,"TOTAL":1}`
	assert.Equal(t, want, string(b))
}

func TestKeywordCounts_MarshalYAMLKeepsKeywordOrder(t *testing.T) {
	b, err := yaml.Marshal(CountRFC2119("MAY MAY"))
	require.NoError(t, err)

	out := string(b)
	assert.Less(t, strings.Index(out, "MUST NOT"), strings.Index(out, "OPTIONAL"))
	assert.Less(t, strings.Index(out, "OPTIONAL"), strings.Index(out, "TOTAL"))

	var back map[string]int
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, 2, back["MAY"])
	assert.Equal(t, 2, back["TOTAL"])
}

func TestDetectGrammarKinds(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "json object",
			lines: []string{`{ "key": true, "x": 1 }`},
			want:  []string{KindJSON},
		},
		{
			name:  "abnf rules",
			lines: []string{"   token = 1*tchar", "   rule  = ALPHA *DIGIT"},
			want:  []string{KindABNF},
		},
		{
			name:  "fence hint is case insensitive",
			lines: []string{"```CDDL", "foo = { a: uint }", "```"},
			want:  []string{KindCDDL},
		},
		{
			name:  "asn.1 fence hint",
			lines: []string{"```asn.1", "```"},
			want:  []string{KindASN1},
		},
		{
			name:  "yang module",
			lines: []string{"module example {", `  namespace "urn:x";`, "  prefix ex;", "}"},
			want:  []string{KindYANG},
		},
		{
			name:  "asn1 definitions",
			lines: []string{"Foo ::= SEQUENCE {", "  a INTEGER,", "  b OCTET STRING }"},
			want:  []string{KindASN1},
		},
		{
			name:  "hints come before inferred kinds",
			lines: []string{"```json", "a = b", "b = c ALPHA"},
			want:  []string{KindJSON, KindABNF},
		},
		{
			name:  "single marker is not enough",
			lines: []string{"uses ALPHA only"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectGrammarKinds(tt.lines))
		})
	}
}

func TestDetectTables(t *testing.T) {
	row := "| a | b |"
	rule := "   +--------+"
	dashes := "   ----------"

	assert.True(t, DetectTables([]string{row, row, row}))
	assert.False(t, DetectTables([]string{row, row, "text"}))
	assert.True(t, DetectTables([]string{dashes, "x", dashes, "y", "==========="}))
	assert.False(t, DetectTables([]string{"-------", "-------", "-------"}))
	assert.False(t, DetectTables([]string{rule, rule}))
}

func TestDetectASCIIArt(t *testing.T) {
	wide := "+--------+" + strings.Repeat(" ", 70)
	narrow := "+--------+"

	assert.True(t, DetectASCIIArt([]string{wide, wide, wide}))
	assert.False(t, DetectASCIIArt([]string{wide, wide}))
	assert.False(t, DetectASCIIArt([]string{narrow, narrow, narrow}))
	assert.False(t, DetectASCIIArt([]string{
		strings.Repeat("x", 90), strings.Repeat("x", 90), strings.Repeat("x", 90),
	}))
}

func TestDetectFormatDiagrams(t *testing.T) {
	assert.True(t, DetectFormatDiagrams([]string{"Example Frame {", "}", "Figure 3: Example Frame Format"}))
	assert.True(t, DetectFormatDiagrams([]string{"   Transport Parameters {", "   Long Header Packet {"}))
	assert.True(t, DetectFormatDiagrams([]string{"figure 1: a", "FIGURE 2: b"}))
	assert.False(t, DetectFormatDiagrams([]string{"Example Frame {"}))
	assert.False(t, DetectFormatDiagrams([]string{"See Figure 3: above", "Frame { x }"}))
}

func TestHasHexDump(t *testing.T) {
	assert.True(t, HasHexDump("00 01 02 03 04 05 06 07 08"))
	assert.True(t, HasHexDump("   0x1a 2b 3c 4d 5e 6f 70 81 92"))
	assert.True(t, HasHexDump("C3 FF\n00 01 02 03 04 05 06"))
	assert.False(t, HasHexDump("00 01 02 03 04 05 06 07"))
	assert.False(t, HasHexDump("no hex here"))
}

func TestCountLongLines(t *testing.T) {
	lines := []string{
		strings.Repeat("a", 100),
		strings.Repeat("a", 99),
		strings.Repeat("é", 100),
		strings.Repeat("é", 60),
	}
	assert.Equal(t, 2, CountLongLines(lines))
}

func TestCountCrossRefsAndURLs(t *testing.T) {
	text := "See [RFC9000], [I-D.ietf-quic-http], [RFC2119] and [STD96].\n" +
		"Docs at https://example.com/a and http://x.org."

	assert.Equal(t, 3, CountCrossRefs(text))
	assert.Equal(t, 2, CountURLs(text))
}

func TestExtract(t *testing.T) {
	lines := []string{"ab", "é", "The client MUST NOT retry [RFC9000]."}

	m := Extract("Retries", lines)

	assert.Equal(t, "Retries", m.Title)
	assert.Equal(t, 3, m.LineCount)
	assert.Equal(t, 2+1+1+1+len(lines[2]), m.CharCount)
	assert.Equal(t, 1, m.RFC2119["MUST NOT"])
	assert.Equal(t, 1, m.CrossrefCount)
	assert.NotNil(t, m.GrammarKinds)
	assert.False(t, m.HasTables)
}

func TestMetrics_MarshalJSONOmitsTitle(t *testing.T) {
	b, err := json.Marshal(Extract("Secret Title", []string{"x"}))
	require.NoError(t, err)

	out := string(b)
	assert.NotContains(t, out, "Secret Title")
	assert.True(t, strings.HasPrefix(out, `{"line_count":1,"char_count":1,"long_line_count":0,"grammar_kinds":[]`), out)
	assert.Less(t, strings.Index(out, "url_count"), strings.Index(out, "rfc2119"))
}
