// Package rules turns section metrics into flags and a severity score.
package rules

import (
	"strings"

	"github.com/pthm/draftscan/internal/signals"
)

// Flags emitted by the default rules
const (
	FlagGrammarBlocksPrefix = "contains_grammar_blocks:"
	FlagRouteToParser       = "route_to_deterministic_parser"
	FlagTables              = "contains_tables"
	FlagASCIIArt            = "contains_ascii_diagrams_or_state_machines"
	FlagFormatDiagrams      = "contains_wire_format_diagrams"
	FlagHexDump             = "contains_hex_dump_or_binary_example"
	FlagHighNormative       = "high_normative_density"
	FlagModerateNormative   = "moderate_normative_density"
	FlagHeavyCrossRefs      = "heavy_cross_references"
	FlagModerateCrossRefs   = "moderate_cross_references"
	FlagManyLongLines       = "many_long_lines_formatting_sensitive"
	FlagSomeLongLines       = "some_long_lines_formatting_sensitive"
	FlagSecurityPrivacy     = "security_privacy_reasoning_section"
	FlagIANARegistry        = "iana_registry_section"
	FlagWireFormatOrSyntax  = "wire_format_or_syntax_section"
)

// Rule derives flags from the metrics of one section
type Rule interface {
	// Name returns the unique identifier for this rule
	Name() string

	// Description returns a human-readable description
	Description() string

	// Flags returns the flags this rule raises, in emission order
	Flags(m signals.Metrics) []string
}

// GrammarBlocksRule flags sections carrying grammars or schemas
type GrammarBlocksRule struct{}

func (r *GrammarBlocksRule) Name() string { return "grammar-blocks" }

func (r *GrammarBlocksRule) Description() string {
	return "Flags ABNF, CDDL, YANG, ASN.1 and JSON blocks for deterministic parsing"
}

func (r *GrammarBlocksRule) Flags(m signals.Metrics) []string {
	if len(m.GrammarKinds) == 0 {
		return nil
	}
	return []string{
		FlagGrammarBlocksPrefix + strings.Join(m.GrammarKinds, ","),
		FlagRouteToParser,
	}
}

// PresenceRule raises fixed flags when a boolean signal is set
type PresenceRule struct {
	ID      string
	Summary string
	Present func(m signals.Metrics) bool
	Raise   []string
}

func (r *PresenceRule) Name() string        { return r.ID }
func (r *PresenceRule) Description() string { return r.Summary }

func (r *PresenceRule) Flags(m signals.Metrics) []string {
	if !r.Present(m) {
		return nil
	}
	return r.Raise
}

// FlagTier raises Flag when a count reaches Min
type FlagTier struct {
	Min  int
	Flag string
}

// DensityRule raises the flag of the highest tier a count reaches.
// Tiers are ordered highest first and are mutually exclusive.
type DensityRule struct {
	ID      string
	Summary string
	Value   func(m signals.Metrics) int
	Tiers   []FlagTier
}

func (r *DensityRule) Name() string        { return r.ID }
func (r *DensityRule) Description() string { return r.Summary }

func (r *DensityRule) Flags(m signals.Metrics) []string {
	v := r.Value(m)
	for _, tier := range r.Tiers {
		if v >= tier.Min {
			return []string{tier.Flag}
		}
	}
	return nil
}

// TitleRule raises Flag when the section title contains any keyword
type TitleRule struct {
	ID       string
	Flag     string
	Keywords []string
}

func (r *TitleRule) Name() string { return r.ID }

func (r *TitleRule) Description() string {
	return "Flags sections titled like " + strings.Join(r.Keywords, ", ")
}

func (r *TitleRule) Flags(m signals.Metrics) []string {
	title := strings.ToLower(m.Title)
	for _, k := range r.Keywords {
		if strings.Contains(title, k) {
			return []string{r.Flag}
		}
	}
	return nil
}
