package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"codetrack/internal"
)

var (
	configLC  string
	configGFG string
)

func init() {
	configCmd.Flags().StringVar(&configLC, "lc", "", "LeetCode username to store")
	configCmd.Flags().StringVar(&configGFG, "gfg", "", "GeeksforGeeks handle to store")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the tracked usernames",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	return withConsole(func(c *internal.Console) error {
		cfg, err := c.Dashboard.Config()
		if err != nil {
			return err
		}
		changed := false
		if cmd.Flags().Changed("lc") {
			cfg.LC = configLC
			changed = true
		}
		if cmd.Flags().Changed("gfg") {
			cfg.GFG = configGFG
			changed = true
		}
		if changed {
			if cfg, err = c.Dashboard.SetConfig(cfg); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "LeetCode: %s\nGFG:      %s\n", orUnset(cfg.LC), orUnset(cfg.GFG))
		return nil
	})
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
