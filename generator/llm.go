package generator

import "context"

// LLMClient abstracts the completion service so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Sampling holds the fixed request parameters. Zero or nil values are left to the service.
type Sampling struct {
	MaxCompletionTokens int64
	Temperature         *float64
	TopP                *float64
}
