package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"score":70}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: "no json here"},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.Equal(t, `{"score":70}`, resp1.Text)
	assert.Equal(t, 10, resp1.Usage.InputTokens)
	assert.Equal(t, "end", resp1.StopReason)

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	require.NoError(t, err)
	assert.Equal(t, "no json here", resp2.Text)
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
}

func TestMockProvider_EmptyTextIsInvalid(t *testing.T) {
	mock := NewMockProvider(MockResponse{})
	_, err := mock.Generate(context.Background(), Request{})
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "{}"})

	req := Request{
		Messages:    []Message{{Role: RoleUser, Content: "hello"}},
		Temperature: 0.2,
	}
	_, _ = mock.Generate(context.Background(), req)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "hello", mock.Calls[0].Messages[0].Content)
	assert.InDelta(t, 0.2, mock.Calls[0].Temperature, 1e-9)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, time.Second, rl.RetryAfter)
}

func TestMockProvider_ModelID(t *testing.T) {
	assert.Equal(t, "mock", NewMockProvider().ModelID())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))

	ctx = WithPurpose(ctx, "prompt-eval")
	assert.Equal(t, "prompt-eval", PurposeFrom(ctx))
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		Messages:    []Message{{Role: RoleUser, Content: "rubric"}, {Role: RoleUser, Content: "prompt"}},
		Temperature: 0.2,
	})
	assert.Equal(t, "[user]\nrubric\n\n[user]\nprompt\n\n[temperature: 0.20]\n", got)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantErr    bool
		missingKey bool
	}{
		{name: "gemini without key", cfg: Config{Provider: "gemini"}, wantErr: true, missingKey: true},
		{name: "gemini with key", cfg: Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}}},
		{name: "anthropic without key", cfg: Config{Provider: "anthropic"}, wantErr: true, missingKey: true},
		{name: "anthropic with key", cfg: Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}},
		{name: "openai without key", cfg: Config{Provider: "openai"}, wantErr: true, missingKey: true},
		{name: "openai with key", cfg: Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}},
		{name: "openrouter without key", cfg: Config{Provider: "openrouter"}, wantErr: true, missingKey: true},
		{name: "mock needs no key", cfg: Config{Provider: "mock"}},
		{name: "unknown provider", cfg: Config{Provider: "unknown"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.missingKey, errors.Is(err, ErrMissingAPIKey))
		})
	}
}

func TestConfigFromMap_Defaults(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfigFromMap_StandardKeyFallback(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]string{
		"GEMINI_API_KEY":                "vendor-key",
		"ANTHROPIC_API_KEY":             "vendor-anthropic",
		"PROMPTQUEST_ANTHROPIC_API_KEY": "project-anthropic",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendor-key", cfg.Gemini.APIKey)
	assert.Equal(t, "project-anthropic", cfg.Anthropic.APIKey)
}

func TestConfigFromMap_Overrides(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]string{
		"PROMPTQUEST_LLM_PROVIDER": "openai",
		"PROMPTQUEST_OPENAI_MODEL": "gpt-4o",
		"PROMPTQUEST_LLM_TIMEOUT":  "5s",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestConfigFromMap_BadTimeout(t *testing.T) {
	_, err := ConfigFromMap(map[string]string{"PROMPTQUEST_LLM_TIMEOUT": "soon"})
	require.Error(t, err)
}

func TestNewProvider_MissingKey(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}
