package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptquest/promptquest/internal/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, streak, rank and per-challenge bests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			renderStats(cmd.OutOrStdout(), a.Session.Summary(), a.Catalog, a.Session.State())
			return nil
		})
	},
}
