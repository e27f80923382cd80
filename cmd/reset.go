package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptquest/promptquest/internal/app"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this erases points, streak and every best score; re-run with --yes to confirm")
		}
		return withApp(cmd, func(a *app.App) error {
			if err := a.Session.Reset(cmd.Context()); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
}
