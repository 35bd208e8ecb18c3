package cli

import (
	"github.com/spf13/cobra"

	"codetrack/internal/di"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API on the loopback address",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, cleanup, err := di.InitApp(&flags)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(cmd.Context())
}
