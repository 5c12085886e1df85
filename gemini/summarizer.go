// Package gemini implements linksum.Summarizer using Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/linksum"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements linksum.Summarizer at compile time.
var _ linksum.Summarizer = (*Summarizer)(nil)

// Summarizer condenses extracted article text via the Gemini API.
type Summarizer struct {
	client *genai.Client
	model  string
	prompt string
}

// NewSummarizer creates a Summarizer. The prompt is prepended to the
// article text; model falls back to DefaultModel when empty.
func NewSummarizer(client *genai.Client, model, prompt string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model, prompt: prompt}
}

// Summarize sends the prompt-wrapped article text to Gemini.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", linksum.Errorf(linksum.EINVALID, "text required")
	}

	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: s.prompt + "\n\n'''" + text + "'''"}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", linksum.Errorf(linksum.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}
