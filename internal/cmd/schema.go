package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pthm/draftscan/internal/reporter"
)

var schemaValidate string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the json report, or check a report against it",
	Long: `Schema prints the JSON Schema (draft-07) that every json report follows.
With --validate it checks a saved report instead, listing each mismatch
and exiting non-zero when there is any.

Examples:
  draftscan schema > report.schema.json
  draftscan scan draft.txt > report.json && draftscan schema --validate report.json`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&schemaValidate, "validate", "", "Check the json report at this path against the schema")
	RootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if schemaValidate == "" {
		_, err := io.WriteString(w, reporter.Schema)
		return err
	}

	data, err := os.ReadFile(schemaValidate)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	err = reporter.ValidateJSON(data)
	var schemaErr *reporter.SchemaError
	if errors.As(err, &schemaErr) {
		for _, p := range schemaErr.Problems {
			fmt.Fprintln(w, p)
		}
		return fmt.Errorf("%s does not match the report schema: %d problem(s)", schemaValidate, len(schemaErr.Problems))
	}
	if err != nil {
		return err
	}

	zerolog.Ctx(cmd.Context()).Debug().Str("path", schemaValidate).Msg("report matches schema")
	_, err = fmt.Fprintf(w, "%s: valid\n", schemaValidate)
	return err
}
