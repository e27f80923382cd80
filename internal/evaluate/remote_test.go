package evaluate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptquest/promptquest/internal/llm"
)

func TestRemote_ParsesReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: "Here you go:\n```json\n{\"score\": 77.6, \"feedback\": \"Clear and focused.\", \"suggestions\": [\"Name the audience.\"]}\n```",
	})
	r := NewRemoteEvaluator(mock, 0)

	res, err := r.Evaluate(context.Background(), "Explain photosynthesis.", challenge(t, "l1c1"))
	require.NoError(t, err)
	assert.Equal(t, Result{
		Score:       78,
		Feedback:    "Clear and focused.",
		Suggestions: []string{"Name the audience."},
		Source:      SourceRemote,
	}, res)
}

func TestRemote_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"score": 50}`})
	r := NewRemoteEvaluator(mock, 0)
	ch := challenge(t, "l1c2")

	_, err := r.Evaluate(context.Background(), "Summarise this.", ch)
	require.NoError(t, err)
	require.Equal(t, 1, mock.CallCount())

	req := mock.Calls[0]
	assert.Empty(t, req.System)
	assert.InDelta(t, 0.2, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[0].Content, "Clarity")
	assert.Contains(t, req.Messages[0].Content, "Effectiveness")
	assert.Contains(t, req.Messages[0].Content, "score (0-100 integer)")
	assert.Equal(t,
		"Challenge: Summarise a news article\n"+
			"Description: "+ch.Description+"\n"+
			"Criteria: Requests a summary; Specifies 3 bullet points; Mentions general audience or similar; Asks for neutrality/clear tone\n"+
			"\nStudent prompt:\nSummarise this.",
		req.Messages[1].Content)
}

func TestRemote_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		kind error
	}{
		{"transport error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{StatusCode: 503}}, ErrRemoteUnavailable},
		{"rate limited", llm.MockResponse{Err: &llm.ErrRateLimit{}}, ErrRemoteUnavailable},
		{"missing key", llm.MockResponse{Err: llm.ErrMissingAPIKey}, ErrConfigurationMissing},
		{"no text payload", llm.MockResponse{}, ErrMalformedResponse},
		{"no JSON", llm.MockResponse{Text: "I would give this 80."}, ErrMalformedResponse},
		{"truncated JSON", llm.MockResponse{Text: `{"score": 80, "feedback": "Go`}, ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRemoteEvaluator(llm.NewMockProvider(tt.resp), 0)
			_, err := r.Evaluate(context.Background(), "x", challenge(t, "l1c1"))

			var remoteErr *RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestRemote_Unconfigured(t *testing.T) {
	r := NewRemoteEvaluator(nil, 0)
	assert.False(t, r.Configured())

	_, err := r.Evaluate(context.Background(), "x", challenge(t, "l1c1"))
	require.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestRemote_KeepsUnderlyingError(t *testing.T) {
	cause := &llm.ErrProviderUnavailable{StatusCode: 500, Err: errors.New("boom")}
	r := NewRemoteEvaluator(llm.NewMockProvider(llm.MockResponse{Err: cause}), 0)

	_, err := r.Evaluate(context.Background(), "x", challenge(t, "l1c1"))
	var unavail *llm.ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Equal(t, 500, unavail.StatusCode)
}

// newHTTPJudge returns an OpenAI-compatible provider backed by handler.
func newHTTPJudge(t *testing.T, handler http.HandlerFunc) llm.Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	require.NoError(t, err)
	return p
}

func TestRemote_HTTP500(t *testing.T) {
	p := newHTTPJudge(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": "server_error", "message": "Internal server error"},
		})
	})

	_, err := NewRemoteEvaluator(p, 0).Evaluate(context.Background(), "x", challenge(t, "l1c1"))
	require.ErrorIs(t, err, ErrRemoteUnavailable)
}
