package evaluate

import (
	"fmt"
	"strings"

	"github.com/promptquest/promptquest/internal/catalog"
)

const rubricInstruction = `You are evaluating a student's prompt for a prompt-engineering lesson. Score from 0 to 100 using these criteria with British English:
- Clarity: clear and unambiguous
- Specificity: includes necessary detail
- Context: relevant background and role if applicable
- Structure: well organised; format instructions if required
- Effectiveness: likely to produce the desired output

Return a strict JSON object with keys: score (0-100 integer), feedback (short paragraph), suggestions (array of concise improvement tips).`

// buildEvalRequest embeds the challenge rubric and the raw submission.
func buildEvalRequest(submission string, ch catalog.Challenge) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Challenge: %s\n", ch.Title)
	fmt.Fprintf(&b, "Description: %s\n", ch.Description)
	fmt.Fprintf(&b, "Criteria: %s\n", strings.Join(ch.Criteria, "; "))
	b.WriteString("\nStudent prompt:\n")
	b.WriteString(submission)

	return b.String()
}
