// Package openai provides an Embedder backed by the OpenAI embeddings API.
package openai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Config configures the OpenAI embedder.
type Config struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string

	// Model is the embedding model (default: text-embedding-3-small).
	Model string

	// Dimensions is the embedding vector size (default: 1536).
	Dimensions int
}

// Embedder calls the OpenAI embeddings endpoint.
type Embedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// New creates an OpenAI embedder.
func New(cfg Config) *Embedder {
	if cfg.Model == "" {
		cfg.Model = string(openai.SmallEmbedding3)
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = 1536
	}

	return &Embedder{
		client:     openai.NewClient(cfg.APIKey),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
	}
}

// Embed converts a single text to an embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch embeds all texts in one API call, preserving input order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	rsp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, err
	}
	if len(rsp.Data) != len(texts) {
		return nil, errors.New("openai: embedding count does not match input count")
	}

	embeddings := make([][]float32, len(texts))
	for _, d := range rsp.Data {
		embeddings[d.Index] = d.Embedding
	}
	for _, emb := range embeddings {
		if len(emb) == 0 {
			return nil, errors.New("openai: empty embedding for input")
		}
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}
