package llm

import "context"

// Provider is the core abstraction for talking to an external
// text-generation service. Consumers call Generate with a Request and
// receive the model's primary text payload.
type Provider interface {
	// Generate sends the request to the service and returns the first
	// completion's first text segment. An absent or empty payload is
	// reported as *ErrInvalidResponse.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the service.
type Request struct {
	// System is an optional system prompt. The prompt judge leaves it
	// empty and sends its rubric as the first user message instead.
	System string

	// Messages are sent in order. Consecutive user messages are allowed.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero leaves the provider default in place.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the service's output.
type Response struct {
	// Text is the primary text payload, verbatim. Models are free to wrap
	// structured output in prose, so callers parse it themselves.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
