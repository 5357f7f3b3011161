// Package anthropic provides a Generator backed by the Anthropic messages API.
package anthropic

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/daybook-ai/daybook-go/generator"
)

// Config configures the Anthropic generator.
type Config struct {
	// APIKey authenticates against the Anthropic API.
	APIKey string

	// Model is the Claude model (default: claude-sonnet-4-20250514).
	Model string
}

type anthropicGenerator struct {
	client *anthropic.Client
	model  anthropic.Model
}

// New creates an Anthropic-backed generator.
func New(cfg Config) generator.Generator {
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	return &anthropicGenerator{
		client: &client,
		model:  anthropic.Model(cfg.Model),
	}
}

func (g *anthropicGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	rsp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range rsp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		return "", errors.New("no response from Anthropic")
	}
	return result, nil
}
