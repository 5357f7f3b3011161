// Package generator defines the generative collaborator contract: an
// opaque function from a context string to a response string. Calls are
// fallible; the response engine recovers from failures locally and never
// surfaces them to its caller.
package generator

import "context"

// Generator produces a free-text completion for a prompt.
// Implementations: openai (gpt-3.5-turbo), anthropic (Claude).
type Generator interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error)
}
