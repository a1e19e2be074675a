package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// LangChainModel adapts a langchaingo llms.Model to the Model interface,
// so any provider langchaingo supports can drive the workflow.
type LangChainModel struct {
	model   llms.Model
	options []llms.CallOption
}

// NewLangChainModel creates an adapter for langchaingo models.
func NewLangChainModel(model llms.Model, options ...llms.CallOption) *LangChainModel {
	return &LangChainModel{
		model:   model,
		options: options,
	}
}

// Complete sends the prompts through the underlying model.
func (m *LangChainModel) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts("system", systemPrompt),
		llms.TextParts("human", userPrompt),
	}

	response, err := m.model.GenerateContent(ctx, messages, m.options...)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("generation returned no choices")
	}
	return response.Choices[0].Content, nil
}

var _ Model = (*LangChainModel)(nil)
