package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/draftscan/internal/extract"
)

var (
	extractTOC       bool
	extractJSON      bool
	extractClean     bool
	extractFullClean bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <draft> [query]",
	Short: "Print sections or the table of contents of a draft",
	Long: `Extract prints the sections matching a query. A query is a
comma-separated list where each item is a section number ("4.1" or
"4.1."), a parent number matching its first subsection, or a piece of a
section title.

Examples:
  draftscan extract draft.txt --toc
  draftscan extract draft.txt "3, security" --clean
  draftscan extract draft.txt 4.2 --json
  draftscan extract draft.txt --full-clean > clean.txt`,
	Args: usageArgs(cobra.RangeArgs(1, 2)),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractTOC, "toc", false, "Print the detected section headings")
	extractCmd.Flags().BoolVarP(&extractJSON, "json", "j", false, "Write JSON instead of text")
	extractCmd.Flags().BoolVar(&extractClean, "clean", false, "Strip page headers, footers and form feeds from extracted sections")
	extractCmd.Flags().BoolVar(&extractFullClean, "full-clean", false, "Print the whole draft without page furniture")
	RootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := zerolog.Ctx(cmd.Context())
	w := cmd.OutOrStdout()

	query := ""
	if len(args) > 1 {
		query = args[1]
	}

	if extractFullClean && (extractTOC || query != "" || extractJSON) {
		return newUsageError(cmd, errors.New("--full-clean cannot be combined with --toc, a query or --json"))
	}
	if !extractFullClean && !extractTOC && query == "" {
		return newUsageError(cmd, errors.New("a query is required unless --toc or --full-clean is given"))
	}

	lines, err := extract.ReadLines(args[0])
	if err != nil {
		return err
	}
	logger.Debug().Str("path", args[0]).Int("lines", len(lines)).Msg("draft loaded")

	switch {
	case extractFullClean:
		_, err := io.WriteString(w, strings.Join(extract.Clean(lines), "\n")+"\n")
		return err

	case extractTOC:
		headings := extract.FindHeadings(lines)
		logger.Debug().Int("headings", len(headings)).Msg("headings found")
		if extractJSON {
			if headings == nil {
				headings = []extract.Heading{}
			}
			return writeJSON(w, headings)
		}
		_, err := io.WriteString(w, extract.FormatTOC(headings))
		return err
	}

	queries := extract.SplitQueries(query)
	if len(queries) == 0 {
		return newUsageError(cmd, fmt.Errorf("empty query %q", query))
	}

	sections, err := extract.Extract(lines, queries, extract.Options{Clean: extractClean})
	if err != nil {
		return err
	}

	if extractJSON {
		return writeJSON(w, sections)
	}

	chunks := make([]string, len(sections))
	for i, s := range sections {
		chunks[i] = s.Content
	}
	_, err = io.WriteString(w, strings.Join(chunks, "\n\n")+"\n")
	return err
}
