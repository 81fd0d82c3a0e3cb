package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UsageError reports a bad invocation. main exits with status 2 for it.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%v\n\nUsage:\n  %s", e.Err, e.Usage)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func newUsageError(cmd *cobra.Command, err error) error {
	return &UsageError{Err: err, Usage: cmd.UseLine()}
}

// usageArgs turns argument validation failures into usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return newUsageError(cmd, err)
		}
		return nil
	}
}
