package rules

import "github.com/pthm/draftscan/internal/signals"

// Registry holds rules in evaluation order
type Registry struct {
	rules []Rule
}

// NewRegistry creates a new rule registry
func NewRegistry() *Registry {
	return &Registry{
		rules: make([]Rule, 0),
	}
}

// Register adds a rule to the registry
func (r *Registry) Register(rule Rule) {
	r.rules = append(r.rules, rule)
}

// Get returns a rule by name
func (r *Registry) Get(name string) Rule {
	for _, rule := range r.rules {
		if rule.Name() == name {
			return rule
		}
	}
	return nil
}

// BuildFlags runs every rule in order and concatenates their flags.
// Flags are never deduplicated.
func (r *Registry) BuildFlags(m signals.Metrics) []string {
	flags := []string{}
	for _, rule := range r.rules {
		flags = append(flags, rule.Flags(m)...)
	}
	return flags
}

// titleRules are the title keywords that mark commonly hard sections
var titleRules = []*TitleRule{
	{ID: "security-privacy-title", Flag: FlagSecurityPrivacy, Keywords: []string{"security considerations", "privacy considerations"}},
	{ID: "iana-title", Flag: FlagIANARegistry, Keywords: []string{"iana considerations", "iana"}},
	{ID: "wire-format-title", Flag: FlagWireFormatOrSyntax, Keywords: []string{"formal", "syntax", "encoding", "message format", "wire"}},
}

// DefaultRegistry returns a registry with all default rules
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Structural rules
	r.Register(&GrammarBlocksRule{})
	r.Register(&PresenceRule{
		ID:      "tables",
		Summary: "Flags ASCII tables",
		Present: func(m signals.Metrics) bool { return m.HasTables },
		Raise:   []string{FlagTables},
	})
	r.Register(&PresenceRule{
		ID:      "ascii-art",
		Summary: "Flags ASCII diagrams and state machines",
		Present: func(m signals.Metrics) bool { return m.HasASCIIArt },
		Raise:   []string{FlagASCIIArt},
	})
	r.Register(&PresenceRule{
		ID:      "format-diagrams",
		Summary: "Flags wire format diagrams for deterministic parsing",
		Present: func(m signals.Metrics) bool { return m.HasFormatDiagrams },
		Raise:   []string{FlagFormatDiagrams, FlagRouteToParser},
	})
	r.Register(&PresenceRule{
		ID:      "hex-dump",
		Summary: "Flags hex dumps and binary examples",
		Present: func(m signals.Metrics) bool { return m.HasHexDump },
		Raise:   []string{FlagHexDump},
	})

	// Density rules
	r.Register(&DensityRule{
		ID:      "normative-density",
		Summary: "Flags sections dense in RFC 2119 keywords",
		Value:   func(m signals.Metrics) int { return m.RFC2119.Total() },
		Tiers:   []FlagTier{{10, FlagHighNormative}, {5, FlagModerateNormative}},
	})
	r.Register(&DensityRule{
		ID:      "cross-references",
		Summary: "Flags sections dense in citations",
		Value:   func(m signals.Metrics) int { return m.CrossrefCount },
		Tiers:   []FlagTier{{12, FlagHeavyCrossRefs}, {6, FlagModerateCrossRefs}},
	})
	r.Register(&DensityRule{
		ID:      "long-lines",
		Summary: "Flags sections whose layout depends on long lines",
		Value:   func(m signals.Metrics) int { return m.LongLineCount },
		Tiers:   []FlagTier{{10, FlagManyLongLines}, {4, FlagSomeLongLines}},
	})

	// Title rules
	for _, tr := range titleRules {
		r.Register(tr)
	}

	return r
}

var defaultRegistry = DefaultRegistry()

// BuildFlags derives flags from metrics with the default rules
func BuildFlags(m signals.Metrics) []string {
	return defaultRegistry.BuildFlags(m)
}

// HasFlag reports whether flags contains flag
func HasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}
