package cli

import (
	"github.com/spf13/cobra"

	"codetrack/internal"
)

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch both platforms now and record today's progress",
	RunE:  runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	return withConsole(func(c *internal.Console) error {
		result, err := c.Dashboard.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		return renderRefresh(cmd.OutOrStdout(), result)
	})
}
