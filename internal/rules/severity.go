package rules

import "github.com/pthm/draftscan/internal/signals"

// ScoreTier awards Points when a count reaches Min
type ScoreTier struct {
	Min    int
	Points int
}

// Structural signal weights
const (
	TablePoints         = 12
	ASCIIArtPoints      = 10
	FormatDiagramPoints = 14
	GrammarPoints       = 18
	ExtraGrammarPoints  = 6
	HexDumpPoints       = 12

	// Flags beyond freeFlags add one point each, up to maxFlagBonus
	freeFlags    = 2
	maxFlagBonus = 8

	MinSeverity = 0
	MaxSeverity = 100
)

// Tiered weights, highest tier first. Only the first tier reached counts.
var (
	NormativeTiers = []ScoreTier{{10, 14}, {5, 9}, {2, 4}}
	CrossRefTiers  = []ScoreTier{{12, 10}, {6, 6}}
	URLTiers       = []ScoreTier{{8, 4}}
	LongLineTiers  = []ScoreTier{{10, 8}, {4, 4}}
	SizeTiers      = []ScoreTier{{250, 8}, {150, 5}}
)

func tierPoints(tiers []ScoreTier, v int) int {
	for _, t := range tiers {
		if v >= t.Min {
			return t.Points
		}
	}
	return 0
}

// ComputeSeverity scores a section from 0 to 100. It depends only on
// its arguments.
func ComputeSeverity(m signals.Metrics, flags []string) int {
	score := 0

	if m.HasTables {
		score += TablePoints
	}
	if m.HasASCIIArt {
		score += ASCIIArtPoints
	}
	if m.HasFormatDiagrams {
		score += FormatDiagramPoints
	}
	if n := len(m.GrammarKinds); n > 0 {
		score += GrammarPoints + ExtraGrammarPoints*(n-1)
	}
	if m.HasHexDump {
		score += HexDumpPoints
	}

	score += tierPoints(NormativeTiers, m.RFC2119.Total())
	score += tierPoints(CrossRefTiers, m.CrossrefCount)
	score += tierPoints(URLTiers, m.URLCount)
	score += tierPoints(LongLineTiers, m.LongLineCount)
	score += tierPoints(SizeTiers, m.LineCount)

	score += min(maxFlagBonus, max(0, len(flags)-freeFlags))

	return max(MinSeverity, min(MaxSeverity, score))
}
