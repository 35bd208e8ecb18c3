package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codetrack/internal"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(clearHistoryCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recorded daily snapshots",
	RunE:  runHistory,
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear-history",
	Short: "Delete every recorded snapshot",
	RunE:  runClearHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withConsole(func(c *internal.Console) error {
		deltas, err := c.Dashboard.DailyDeltas()
		if err != nil {
			return err
		}
		return renderHistory(cmd.OutOrStdout(), deltas)
	})
}

func runClearHistory(cmd *cobra.Command, args []string) error {
	return withConsole(func(c *internal.Console) error {
		if err := c.Dashboard.ClearHistory(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	})
}
