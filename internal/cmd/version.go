package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/draftscan/internal/reporter"
	"github.com/pthm/draftscan/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		w := cmd.OutOrStdout()

		// Structured output only when asked for; the default format is json
		if !cmd.Flags().Changed("format") {
			_, err := fmt.Fprintln(w, info.String())
			return err
		}

		switch cfg.Format {
		case reporter.FormatJSON:
			return writeJSON(w, info)
		case reporter.FormatYAML:
			enc := yaml.NewEncoder(w)
			if err := enc.Encode(info); err != nil {
				return err
			}
			return enc.Close()
		default:
			_, err := fmt.Fprintln(w, info.String())
			return err
		}
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
