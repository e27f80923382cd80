package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptquest/promptquest/internal/app"
)

var challengeCmd = &cobra.Command{
	Use:     "challenge",
	Aliases: []string{"show"},
	Short:   "Show the current challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChallenge(cmd)
	},
}

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "List every challenge with its status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			renderChallengeList(cmd.OutOrStdout(), a.Catalog, a.Session.State())
			return nil
		})
	},
}

func runChallenge(cmd *cobra.Command) error {
	return withApp(cmd, func(a *app.App) error {
		ch, idx := a.Session.Current()
		renderChallenge(cmd.OutOrStdout(), ch, idx, a.Catalog.Len(), a.Session.State())
		if !a.Remote.Configured() {
			renderJudgeNotice(cmd.ErrOrStderr())
		}
		return nil
	})
}
