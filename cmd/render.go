package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/promptquest/promptquest/internal/catalog"
	"github.com/promptquest/promptquest/internal/evaluate"
	"github.com/promptquest/promptquest/internal/progress"
	"github.com/promptquest/promptquest/internal/session"
	"github.com/promptquest/promptquest/internal/ui/theme"
)

// bestPractices is shown under every challenge.
var bestPractices = []string{
	"Be clear about the task, audience, and desired format.",
	"Add relevant context and, if helpful, define a role.",
	"Constrain length, tone, and structure as needed.",
	"Iterate: improve based on feedback and examples.",
}

func renderChallenge(w io.Writer, ch catalog.Challenge, idx, total int, st progress.State) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", theme.Subtitle.Render(fmt.Sprintf("Challenge %d of %d · Level %d · %s",
		idx+1, total, ch.Level, progress.RankTitle(ch.Level))))
	fmt.Fprintf(&b, "%s\n\n", theme.Title.Render(ch.Title))
	fmt.Fprintf(&b, "%s\n", ch.Description)

	b.WriteString("\n" + theme.Label.Render("Criteria") + "\n")
	for _, c := range ch.Criteria {
		fmt.Fprintf(&b, "  • %s\n", c)
	}
	if ch.Hint != "" {
		fmt.Fprintf(&b, "\n%s %s\n", theme.Label.Render("Hint"), theme.Hint.Render(ch.Hint))
	}
	if ch.Example != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", theme.Label.Render("Example"), ch.Example)
	}
	if r, ok := st.Records[ch.ID]; ok {
		fmt.Fprintf(&b, "\n%s %s %s\n", theme.Label.Render("Your best"),
			theme.Stars(progress.Stars(r.BestScore)), theme.Score(r.BestScore, progress.Passed(r.BestScore)))
	}

	lipgloss.Fprintln(w, theme.Card.Render(strings.TrimRight(b.String(), "\n")))

	lipgloss.Fprintln(w, theme.Label.Render("Prompt-writing best practices"))
	for _, p := range bestPractices {
		lipgloss.Fprintln(w, "  • "+p)
	}
}

func renderOutcome(w io.Writer, out session.Outcome) {
	res := out.Result

	source := "local rubric"
	if res.Source == evaluate.SourceRemote {
		source = "LLM judge"
	}
	lipgloss.Fprintf(w, "%s %s %s\n",
		theme.Score(res.Score, out.Passed), theme.Stars(out.Stars), theme.Subtitle.Render("("+source+")"))

	if out.Improved {
		lipgloss.Fprintln(w, theme.Pass.Render("New personal best!"))
	}
	if res.Feedback != "" {
		lipgloss.Fprintln(w, "\n"+res.Feedback)
	}
	if len(res.Suggestions) > 0 {
		lipgloss.Fprintln(w, "\n"+theme.Label.Render("Suggestions"))
		for _, s := range res.Suggestions {
			lipgloss.Fprintln(w, "  • "+s)
		}
	}

	lipgloss.Fprintln(w)
	lipgloss.Fprintln(w, summaryLine(out.Summary))
}

func renderStats(w io.Writer, sum progress.Summary, cat *catalog.Catalog, st progress.State) {
	lipgloss.Fprintln(w, theme.Title.Render("Progress"))
	lipgloss.Fprintln(w, summaryLine(sum))
	lipgloss.Fprintf(w, "Completed %d of %d (attempted %d)\n\n", sum.Completed, sum.Total, sum.Attempted)
	renderChallengeList(w, cat, st)
}

func renderChallengeList(w io.Writer, cat *catalog.Catalog, st progress.State) {
	for i, ch := range cat.All() {
		cursor := " "
		if i == st.CurrentIndex {
			cursor = theme.Title.Render(">")
		}
		best := ""
		if r, ok := st.Records[ch.ID]; ok {
			best = fmt.Sprintf("  %s %d", theme.Stars(progress.Stars(r.BestScore)), r.BestScore)
		}
		lipgloss.Fprintf(w, "%s %s %d. %s %s%s\n",
			cursor,
			theme.Marker(st.Attempted(ch.ID), st.Completed(ch.ID)),
			i+1,
			ch.Title,
			theme.Subtitle.Render(fmt.Sprintf("(level %d)", ch.Level)),
			best,
		)
	}
}

func summaryLine(sum progress.Summary) string {
	return fmt.Sprintf("Points %d · Streak %d · Level %d %s",
		sum.Points, sum.Streak, sum.Level, theme.Label.Render(sum.Rank))
}

func renderJudgeNotice(w io.Writer) {
	lipgloss.Fprintln(w, theme.Hint.Render(
		"No LLM judge configured (set GEMINI_API_KEY or PROMPTQUEST_LLM_PROVIDER); submissions are scored with the local rubric."))
}
