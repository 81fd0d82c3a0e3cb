package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/draftscan/internal/analyzer"
	"github.com/pthm/draftscan/internal/config"
	"github.com/pthm/draftscan/internal/filter"
	"github.com/pthm/draftscan/internal/parser"
	"github.com/pthm/draftscan/internal/reporter"
	"github.com/pthm/draftscan/internal/ui"
)

// filterFormat is the ui format for filtered text; it is never styled
const filterFormat = "text"

var scanCmd = &cobra.Command{
	Use:   "scan <draft>",
	Short: "Score every section of a draft, or filter out the hard ones",
	Long: `Scan splits a draft into sections and reports, for each one, its
metrics, difficulty flags and a severity score from 0 to 100. Plain-text
drafts are split on their numbered headings; .md sources are split on
their markdown headings the way kramdown-rfc numbers them.

Modes:
  analyze  Write the report (JSON by default, see --format)
  filter   Write the draft with hard sections removed. A section is
           removed when its severity reaches --severity-threshold or
           it is flagged for a parser, wire syntax or IANA registries.

Examples:
  draftscan scan draft-ietf-quic-transport-34.txt
  draftscan scan -f terminal draft.txt
  draftscan scan --mode filter --replace-with-marker draft.txt > easy.txt`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("mode", config.DefaultMode, "Scan mode (analyze, filter)")
	scanCmd.Flags().Int("severity-threshold", config.DefaultSeverityThreshold, "Severity at which filter mode removes a section (0-100)")
	scanCmd.Flags().Bool("replace-with-marker", false, "Leave a marker block where filter mode removed a section")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())
	path := args[0]

	uiFormat := cfg.Format
	if cfg.Mode == config.ModeFilter {
		uiFormat = filterFormat
	}
	u := GetUI(cmd, uiFormat)

	progress := u.StartProgress()
	progress.SetStage(ui.StageRead)
	progress.SetOperation("Reading " + path)

	doc, err := parser.Load(path)
	if err != nil {
		progress.Done(err)
		return fmt.Errorf("failed to read draft: %w", err)
	}
	logger.Debug().Str("path", path).Int("lines", len(doc.Lines)).Msg("draft loaded")

	progress.SetStage(ui.StageSplit)
	sections := doc.Sections()
	logger.Debug().Int("sections", len(sections)).Msg("sections split")

	progress.SetStage(ui.StageAnalyze)
	progress.SetSectionCount(len(sections))

	a := analyzer.New(nil)
	reports := make([]analyzer.SectionReport, 0, len(sections))
	for _, sec := range sections {
		progress.SectionStart(sec.Number, sec.Title)
		reports = append(reports, a.AnalyzeSection(sec))
		progress.SectionDone()
	}
	report := analyzer.NewReport(doc, reports)
	logger.Debug().Int("hotspots", len(report.Summary.Hotspots)).Msg("sections scored")

	progress.SetStage(ui.StageEmit)
	// The progress display must be gone before anything reaches stdout
	progress.Done(nil)

	if cfg.Mode == config.ModeFilter {
		return writeFiltered(cmd.OutOrStdout(), logger, doc, report)
	}

	rep, err := reporter.New(cfg.Format, cmd.OutOrStdout(), u.Styles)
	if err != nil {
		return err
	}
	if err := rep.Report(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeFiltered(w io.Writer, logger *zerolog.Logger, doc *parser.Document, report *analyzer.Report) error {
	f := filter.New(filter.Options{
		SeverityThreshold: cfg.SeverityThreshold,
		ReplaceWithMarker: cfg.ReplaceWithMarker,
	})

	removed := f.Removed(report.Sections)
	numbers := make([]string, len(removed))
	for i, r := range removed {
		numbers[i] = r.Number
	}
	logger.Debug().
		Int("removed", len(removed)).
		Str("sections", strings.Join(numbers, ",")).
		Msg("filtering draft")

	if _, err := io.WriteString(w, f.Apply(doc.Raw, report.Sections)); err != nil {
		return fmt.Errorf("failed to write filtered draft: %w", err)
	}
	return nil
}
