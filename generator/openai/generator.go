// Package openai provides a Generator backed by the OpenAI chat API.
package openai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/daybook-ai/daybook-go/generator"
)

// Config configures the OpenAI generator.
type Config struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string

	// Model is the chat model (default: gpt-3.5-turbo).
	Model string
}

type openAIGenerator struct {
	client *openai.Client
	model  string
}

// New creates an OpenAI-backed generator.
func New(cfg Config) generator.Generator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	return &openAIGenerator{
		client: openai.NewClient(cfg.APIKey),
		model:  cfg.Model,
	}
}

func (g *openAIGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error) {
	rsp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(rsp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return strings.TrimSpace(rsp.Choices[0].Message.Content), nil
}
