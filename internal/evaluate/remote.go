package evaluate

import (
	"context"
	"errors"
	"time"

	"github.com/promptquest/promptquest/internal/catalog"
	"github.com/promptquest/promptquest/internal/llm"
)

const (
	// EvalPurpose labels judge requests in the LLM event log.
	EvalPurpose = "prompt-eval"

	judgeTemperature = 0.2
	judgeMaxTokens   = 1024
)

// RemoteEvaluator asks an external model to judge a submission.
type RemoteEvaluator struct {
	provider llm.Provider
	timeout  time.Duration
}

// NewRemoteEvaluator returns a RemoteEvaluator using provider. A nil
// provider yields an evaluator that fails every call with
// ErrConfigurationMissing. A positive timeout bounds each call.
func NewRemoteEvaluator(provider llm.Provider, timeout time.Duration) *RemoteEvaluator {
	return &RemoteEvaluator{provider: provider, timeout: timeout}
}

// Configured reports whether a judge provider is available.
func (r *RemoteEvaluator) Configured() bool {
	return r.provider != nil
}

// Evaluate sends the rubric and submission to the judge and coerces its
// reply into a Result. Every failure is a *RemoteError.
func (r *RemoteEvaluator) Evaluate(ctx context.Context, submission string, ch catalog.Challenge) (Result, error) {
	if r.provider == nil {
		return Result{}, &RemoteError{Kind: ErrConfigurationMissing}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, EvalPurpose)

	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: rubricInstruction},
			{Role: llm.RoleUser, Content: buildEvalRequest(submission, ch)},
		},
		MaxTokens:   judgeMaxTokens,
		Temperature: judgeTemperature,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return Result{}, &RemoteError{Kind: classify(err), Err: err}
	}

	obj, err := ExtractJSONObject(resp.Text)
	if err != nil {
		return Result{}, &RemoteError{Kind: ErrMalformedResponse, Err: err}
	}

	res := coerceResult(obj)
	res.Source = SourceRemote
	return res, nil
}

// classify maps a provider error onto a failure kind.
func classify(err error) error {
	var invalid *llm.ErrInvalidResponse
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		return ErrConfigurationMissing
	case errors.As(err, &invalid):
		return ErrMalformedResponse
	default:
		return ErrRemoteUnavailable
	}
}
