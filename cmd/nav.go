package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/promptquest/promptquest/internal/app"
	"github.com/promptquest/promptquest/internal/catalog"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Move to the next challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd, func(a *app.App) catalog.Challenge {
			return a.Session.Next(cmd.Context())
		})
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Move to the previous challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return navigate(cmd, func(a *app.App) catalog.Challenge {
			return a.Session.Prev(cmd.Context())
		})
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <number>",
	Short: "Jump to a challenge by its number (1-based)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid challenge number %q: %w", args[0], err)
		}
		return navigate(cmd, func(a *app.App) catalog.Challenge {
			return a.Session.GoTo(cmd.Context(), n-1)
		})
	},
}

func navigate(cmd *cobra.Command, move func(a *app.App) catalog.Challenge) error {
	return withApp(cmd, func(a *app.App) error {
		ch := move(a)
		_, idx := a.Session.Current()
		renderChallenge(cmd.OutOrStdout(), ch, idx, a.Catalog.Len(), a.Session.State())
		return nil
	})
}
