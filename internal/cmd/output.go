package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/pthm/draftscan/internal/ui"
)

// GetUI returns the UI for a command's output streams and format
func GetUI(cmd *cobra.Command, format string) *ui.UI {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
