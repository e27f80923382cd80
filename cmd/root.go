package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptquest/promptquest/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "promptquest",
	Short: "Practice writing better prompts",
	Long: `PromptQuest is a prompt-writing tutor. Work through a ladder of challenges,
submit prompts, and get a score with feedback from an LLM judge (or a local
rubric when no judge is configured).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChallenge(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PROMPTQUEST_DB env var)")
	rootCmd.PersistentFlags().String("store", "", "Progress store: sqlite, badger, redis or memory (overrides PROMPTQUEST_STORE env var)")

	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(gotoCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies --db and --store.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	cfg, err := app.ConfigFromEnv()
	if err != nil {
		return app.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if s, _ := cmd.Flags().GetString("store"); s != "" {
		cfg.Store = s
	}
	return cfg, cfg.Validate()
}

// withApp builds the app, runs fn and closes the app.
func withApp(cmd *cobra.Command, fn func(a *app.App) error) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(cmd.Context(), cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer func() {
		if cerr := a.Close(context.WithoutCancel(cmd.Context())); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return fn(a)
}
