package cmd

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/draftscan/internal/config"
	"github.com/pthm/draftscan/internal/ui"
)

var (
	// Global flags
	verbose    bool
	format     string
	configPath string

	// cfg is resolved from flags, environment and config file before any command runs
	cfg *config.Config
)

var RootCmd = &cobra.Command{
	Use:   "draftscan",
	Short: "Find the parts of an IETF draft that are hard to read",
	Long: `draftscan splits an Internet-Draft or RFC, in plain text or as a
kramdown-rfc markdown source, into numbered sections and scores each one for reading difficulty: grammar blocks,
wire-format diagrams, tables, dense normative language and heavy
cross-referencing.

The report marks hotspots worth routing to a dedicated parser or a
careful reader, and filter mode rewrites the draft without them.

Settings can also come from DRAFTSCAN_* environment variables or a
YAML file given with --config.`,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVarP(&format, "format", "f", config.DefaultFormat, "Report format (json, yaml, terminal, markdown, html)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (YAML)")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return newUsageError(cmd, err)
	})
}

// setup loads the configuration and stores a logger in the command context
func setup(cmd *cobra.Command, args []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	c, err := config.Load(v, configPath)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			return newUsageError(cmd, err)
		}
		return err
	}
	cfg = c

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	cmd.SetContext(logger.WithContext(cmd.Context()))

	logger.Debug().
		Str("command", cmd.Name()).
		Str("mode", cfg.Mode).
		Str("format", cfg.Format).
		Int("severity_threshold", cfg.SeverityThreshold).
		Msg("configuration loaded")

	return nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: w, NoColor: !ui.IsTerminal(w)}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
