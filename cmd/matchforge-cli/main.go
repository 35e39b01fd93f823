// Command matchforge-cli is the operator entrypoint: run the engine
// in-process, or inspect and edit the tuning config without a running
// server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "matchforge-cli",
		Short: "Operate the multi-region matchmaking engine",
	}

	root.AddCommand(runCmd())
	root.AddCommand(configCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
