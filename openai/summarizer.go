// Package openai implements linksum.Summarizer against any OpenAI-style
// chat-completions endpoint.
package openai

import (
	"context"

	"github.com/fwojciec/linksum"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// Ensure Summarizer implements linksum.Summarizer at compile time.
var _ linksum.Summarizer = (*Summarizer)(nil)

// Summarizer condenses extracted article text via a chat-completions API.
type Summarizer struct {
	client *openai.Client
	model  string
	prompt string
}

// NewSummarizer creates a Summarizer. baseURL may be empty for the
// default endpoint; model falls back to DefaultModel when empty.
func NewSummarizer(apiKey, baseURL, model, prompt string) *Summarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		prompt: prompt,
	}
}

// Summarize sends the prompt-wrapped article text for completion.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", linksum.Errorf(linksum.EINVALID, "text required")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: s.prompt + "\n\n'''" + text + "'''",
		}},
	})
	if err != nil {
		return "", linksum.WrapError(err, linksum.EUNAVAILABLE, "summarization request failed")
	}
	if len(resp.Choices) == 0 {
		return "", linksum.Errorf(linksum.EINTERNAL, "summarizer returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
