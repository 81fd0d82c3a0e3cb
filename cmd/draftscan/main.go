package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/pthm/draftscan/internal/cmd"
	"github.com/pthm/draftscan/internal/version"
)

func main() {
	// DRAFTSCAN_* settings may live in a .env file
	_ = godotenv.Load()

	info := version.Get()
	err := fang.Execute(context.Background(), cmd.RootCmd,
		fang.WithVersion(info.Version),
		fang.WithCommit(info.Commit),
	)
	if err != nil {
		var usageErr *cmd.UsageError
		if errors.As(err, &usageErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
