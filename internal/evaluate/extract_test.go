package evaluate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		score string
	}{
		{"bare object", `{"score": 72}`, "72"},
		{"prose around", `Sure! Here is my verdict: {"score": 64, "feedback": "ok"} Hope it helps.`, "64"},
		{"code fence", "```json\n{\"score\": 90,\n \"suggestions\": []}\n```", "90"},
		{"nested object", `{"score": 55, "meta": {"a": {"b": 1}}}`, "55"},
		{"braces inside strings", `{"score": 81, "feedback": "use {curly} braces } wisely {"}`, "81"},
		{"multiline", "{\n  \"score\": 12\n}\n", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ExtractJSONObject(tt.text)
			require.NoError(t, err)
			assert.Equal(t, json.Number(tt.score), obj["score"])
		})
	}
}

func TestExtractJSONObject_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no braces", "The prompt is great, 90/100."},
		{"only opening brace", `{"score": 90`},
		{"truncated nested", `{"score": 90, "feedback": {"a": 1}`},
		{"two objects", `first {"score": 10} then {"score": 20}`},
		{"not json inside", `{score: 90}`},
		{"reversed braces", `} nothing {`},
		{"extra closing brace", `{"score": 1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSONObject(tt.text)
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}
