// Package chatbot implements the response engine: it retrieves candidate
// records for a query, narrows them by an extracted date constraint,
// answers deterministically from structured fields when possible, falls
// back to a generative collaborator otherwise, appends proactive
// suggestions, and records every interaction in the conversation log.
//
// Respond never fails: every fault reachable from it is converted into a
// user-visible response string, and the interaction is logged on every
// path, including errors.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/daybook-ai/daybook-go/generator"
	"github.com/daybook-ai/daybook-go/memory"
	"github.com/daybook-ai/daybook-go/rag"
)

// DefaultSystemPrompt instructs the generative collaborator.
const DefaultSystemPrompt = "You are a helpful assistant that answers questions based on the provided data. " +
	"Be concise and direct in your responses."

// Config holds chatbot configuration.
type Config struct {
	// TopK is the number of records retrieved per query.
	TopK int

	// HistoryLimit is the number of past interactions injected into the
	// generative context.
	HistoryLimit int

	// MaxTokens bounds the generative response length.
	MaxTokens int

	// Timeout bounds the embedding and generation calls for one query.
	Timeout time.Duration

	// SystemPrompt overrides DefaultSystemPrompt.
	SystemPrompt string
}

// DefaultConfig returns sensible defaults.
var DefaultConfig = &Config{
	TopK:         rag.DefaultTopK,
	HistoryLimit: memory.DefaultHistoryLimit,
	MaxTokens:    150,
	Timeout:      30 * time.Second,
	SystemPrompt: DefaultSystemPrompt,
}

// Chatbot answers queries over the indexed records.
type Chatbot struct {
	retriever *rag.Retriever
	generator generator.Generator // nil runs in limited mode
	memory    *memory.Log
	config    *Config
}

// New creates a Chatbot. A nil generator is allowed: the bot then answers
// only from structured fields and limited-mode text. A nil config uses
// DefaultConfig.
func New(retriever *rag.Retriever, gen generator.Generator, config *Config) *Chatbot {
	if config == nil {
		config = DefaultConfig
	}
	return &Chatbot{
		retriever: retriever,
		generator: gen,
		memory:    memory.NewLog(),
		config:    config,
	}
}

// Memory returns the conversation log.
func (c *Chatbot) Memory() *memory.Log {
	return c.memory
}

// Respond runs the full pipeline for one query and returns the response
// text. It is the only mutator of the conversation log: exactly one
// interaction is recorded per call, whichever path produced the response.
func (c *Chatbot) Respond(ctx context.Context, query string) string {
	response := c.respond(ctx, query)
	c.memory.Add(query, response)
	return response
}

func (c *Chatbot) respond(ctx context.Context, query string) string {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	records, err := c.retriever.Retrieve(ctx, query, c.config.TopK)
	if err != nil {
		if errors.Is(err, rag.ErrEmptyIndex) {
			return "There is no data available yet. Please load some records and try again."
		}
		log.Printf("[CHATBOT] Retrieval failed: %v", err)
		return fmt.Sprintf("I encountered an error: %v. Please try again.", err)
	}

	date := ExtractDate(query)
	filtered := FilterByDate(records, date)
	if date != "" && len(filtered) == 0 {
		return fmt.Sprintf("I couldn't find any data for %s. Please try a different date.", date)
	}

	response, ok := answerFromFields(query, filtered, date)
	if !ok {
		response = c.generate(ctx, query, filtered)
	}

	if suggestions := Suggest(query, filtered); len(suggestions) > 0 {
		response += "\n\nProactive Suggestions:\n" + strings.Join(suggestions, "\n")
	}

	return response
}

// generate invokes the generative collaborator with the filtered records
// and recent history. Collaborator failure degrades to limited-mode text,
// never to an error.
func (c *Chatbot) generate(ctx context.Context, query string, records []rag.Record) string {
	if c.generator == nil {
		return limitedModeAnswer(records)
	}

	prompt := fmt.Sprintf("Context: %s\nQuery: %s\nPlease provide a clear and concise response based on the data.",
		c.buildContext(records), query)

	systemPrompt := c.config.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	response, err := c.generator.Complete(ctx, systemPrompt, prompt, c.config.MaxTokens)
	if err != nil {
		log.Printf("[CHATBOT] Generation failed: %v", err)
		return limitedModeAnswer(records)
	}
	return response
}

// buildContext renders the retrieved records and the recent conversation
// window into the generative context string.
func (c *Chatbot) buildContext(records []rag.Record) string {
	var history strings.Builder
	for _, interaction := range c.memory.History(c.config.HistoryLimit) {
		fmt.Fprintf(&history, "Q: %s\nA: %s\n", interaction.Query, interaction.Response)
	}

	if len(records) == 0 {
		return fmt.Sprintf("No specific data found. Memory Context: %s", history.String())
	}

	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = rec.JSON()
	}
	return fmt.Sprintf("Retrieved Data: [%s]\nMemory Context: %s",
		strings.Join(parts, ", "), history.String())
}
