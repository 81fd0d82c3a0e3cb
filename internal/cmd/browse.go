package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/draftscan/internal/analyzer"
	"github.com/pthm/draftscan/internal/parser"
	"github.com/pthm/draftscan/internal/ui"
)

var (
	browsePrint      bool
	browseBySeverity bool
)

var browseCmd = &cobra.Command{
	Use:   "browse <draft>",
	Short: "Explore the scored sections of a draft interactively",
	Long: `Displays the sections of a draft as a tree nested by section number,
colored by severity, with each section's flags as leaves.

Controls:
  ↑/k, ↓/j    Navigate up/down
  ←/h, →/l    Collapse/expand sections
  Enter/Space Toggle expand/collapse
  f           Toggle flag display
  s           Toggle document/severity order
  q           Quit

Examples:
  draftscan browse draft.txt
  draftscan browse --print --by-severity draft.txt`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVarP(&browsePrint, "print", "p", false, "Print the tree to stdout instead of interactive mode")
	browseCmd.Flags().BoolVarP(&browseBySeverity, "by-severity", "s", false, "Order sections by severity (toggle with s in interactive mode)")
	RootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())
	u := GetUI(cmd, ui.FormatTerminal)

	if !browsePrint && !u.IsInteractive() {
		return errors.New("browse requires an interactive terminal (TTY). Use --print for non-interactive output")
	}

	doc, err := parser.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to read draft: %w", err)
	}
	report := analyzer.New(nil).Analyze(doc)
	logger.Debug().Int("sections", len(report.Sections)).Msg("sections scored")

	if browsePrint {
		return ui.WriteSectionTree(cmd.OutOrStdout(), report, browseBySeverity)
	}

	p := tea.NewProgram(ui.NewBrowserModel(report, browseBySeverity), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running section browser: %w", err)
	}
	return nil
}
