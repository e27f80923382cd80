package evaluate

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/promptquest/promptquest/internal/catalog"
)

const (
	heuristicBase       = 40
	heuristicCueWeight  = 10
	heuristicBonusTopic = "photosynthesis"
	heuristicBonus      = 10

	// lengthLimit is counted in code points.
	lengthLimit   = 600
	lengthPenalty = 10
)

// LocalFeedback is the fixed feedback sentence of every local result.
const LocalFeedback = "Local evaluation used. Your prompt shows promise. Consider tightening clarity, adding concrete constraints, and specifying audience, role, and format where helpful."

const (
	tipRole    = "Define a role for the AI to follow (e.g., “You are a maths teacher”)."
	tipFormat  = "Specify the exact format you want (e.g., “3 bullet points”)."
	tipConcise = "Keep it concise; trim any unnecessary detail."
	tipVerb    = "Use a clear verb such as “Explain” or “Describe”."
)

var (
	cueVerb     = regexp.MustCompile(`explain|describe|define`)
	cueAudience = regexp.MustCompile(`10\s?-?year|year\s?8|pupil|student|general audience|audience`)
	cueFormat   = regexp.MustCompile(`bullet|list|checklist|points|format`)
	cueExample  = regexp.MustCompile(`example|worked example|riddle`)
	cueRole     = regexp.MustCompile(`you are a|act as|role`)

	// The format tip looks for a narrower set than the format check.
	cueExplicitFormat = regexp.MustCompile(`bullet|list|checklist`)
)

// HeuristicEvaluator scores a submission offline by looking for cue words.
// It is deterministic and never fails.
type HeuristicEvaluator struct{}

// NewHeuristicEvaluator returns a HeuristicEvaluator.
func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{}
}

// Evaluate implements Evaluator. The error is always nil.
func (h *HeuristicEvaluator) Evaluate(_ context.Context, submission string, ch catalog.Challenge) (Result, error) {
	return h.Judge(submission, ch), nil
}

// Judge scores submission against ch.
func (h *HeuristicEvaluator) Judge(submission string, ch catalog.Challenge) Result {
	// Casers carry state, so each call gets its own.
	text := cases.Lower(language.Und).String(submission)
	tooLong := utf8.RuneCountInString(submission) > lengthLimit

	score := heuristicBase
	for _, cue := range []*regexp.Regexp{cueVerb, cueAudience, cueFormat, cueExample, cueRole} {
		if cue.MatchString(text) {
			score += heuristicCueWeight
		}
	}
	if tooLong {
		score -= lengthPenalty
	}
	// Tied to the photosynthesis challenge's title.
	title := cases.Lower(language.Und).String(ch.Title)
	if strings.Contains(title, heuristicBonusTopic) && strings.Contains(text, heuristicBonusTopic) {
		score += heuristicBonus
	}

	var tips []string
	if !cueRole.MatchString(text) && ch.HasTag("context") {
		tips = append(tips, tipRole)
	}
	if !cueExplicitFormat.MatchString(text) && ch.HasTag("format") {
		tips = append(tips, tipFormat)
	}
	if tooLong {
		tips = append(tips, tipConcise)
	}
	if !cueVerb.MatchString(text) {
		tips = append(tips, tipVerb)
	}
	if tips == nil {
		tips = []string{}
	}

	return Result{
		Score:       ClampScore(score),
		Feedback:    LocalFeedback,
		Suggestions: tips[:min(len(tips), MaxSuggestions)],
		Source:      SourceLocal,
	}
}
