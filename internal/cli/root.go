// Package cli implements the codetrack command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codetrack/internal"
	"codetrack/internal/di"
	"codetrack/internal/structures"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:   "codetrack",
	Short: "CodeTrack keeps daily LeetCode and GFG progress",
	Long: `CodeTrack fetches solved-problem statistics from LeetCode and GeeksforGeeks,
normalizes them and keeps a local day-by-day ledger of your progress.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "log to the console as well")
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withConsole builds the dashboard for one-shot commands and releases it
// afterwards.
func withConsole(fn func(c *internal.Console) error) error {
	console, cleanup, err := di.InitDashboard(&flags)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(console)
}
