package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptquest/promptquest/internal/app"
	"github.com/promptquest/promptquest/internal/session"
)

var submitCmd = &cobra.Command{
	Use:   "submit [prompt]",
	Short: "Submit a prompt for the current challenge",
	Long: `Submit a prompt for the current challenge and receive a score with feedback.

The prompt is taken from the arguments, or read from stdin when none are given:

  promptquest submit "You are a science tutor. Explain photosynthesis..."
  promptquest submit < prompt.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := submissionText(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			out, err := a.Session.Submit(cmd.Context(), text)
			switch {
			case errors.Is(err, session.ErrEmptySubmission):
				return fmt.Errorf("nothing to submit: write a prompt first")
			case err != nil:
				return err
			}
			renderOutcome(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func submissionText(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}
	return string(raw), nil
}
