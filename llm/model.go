// Package llm defines the text-generation boundary consumed by the
// workflow: a single Complete call over an opaque chat-completion model,
// with OpenAI and langchaingo backed implementations.
package llm

import "context"

// Model is the text-generation collaborator. The workflow assembles the
// prompts; implementations only carry them to a chat-completion service.
type Model interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleteFunc adapts a plain function to the Model interface.
type CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Complete calls the wrapped function.
func (f CompleteFunc) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
