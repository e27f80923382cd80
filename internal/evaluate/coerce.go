package evaluate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// coerceResult maps a parsed judge object onto the Result contract.
// Out-of-contract values degrade to defaults instead of failing:
//   - score: a number or numeric string, rounded and clamped; else 0
//   - feedback: a string, or a scalar formatted as text; else ""
//   - suggestions: array elements formatted as text, nulls and objects
//     skipped, capped at MaxSuggestions; a non-array gives none
func coerceResult(obj map[string]any) Result {
	return Result{
		Score:       coerceScore(obj["score"]),
		Feedback:    coerceText(obj["feedback"]),
		Suggestions: coerceSuggestions(obj["suggestions"]),
	}
}

func coerceScore(v any) int {
	switch s := v.(type) {
	case json.Number:
		f, err := s.Float64()
		if err != nil {
			return 0
		}
		return roundClamp(f)
	case float64:
		return roundClamp(s)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return roundClamp(f)
	default:
		return 0
	}
}

func coerceText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	}
}

func coerceSuggestions(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, min(len(items), MaxSuggestions))
	for _, item := range items {
		if len(out) == MaxSuggestions {
			break
		}
		switch item.(type) {
		case nil, map[string]any, []any:
			continue
		}
		if s := strings.TrimSpace(coerceText(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
