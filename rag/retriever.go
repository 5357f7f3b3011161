package rag

import (
	"context"
	"fmt"
)

// DefaultTopK is the number of candidates retrieved per query.
const DefaultTopK = 5

// Retriever composes an Embedder and an Index: it embeds the query text
// and delegates to the Index's k-NN search. Every call re-embeds the
// query; query embeddings are never cached.
type Retriever struct {
	embedder Embedder
	index    Index
}

// NewRetriever creates a Retriever over the given collaborators.
func NewRetriever(embedder Embedder, index Index) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
	}
}

// Retrieve returns the k records most similar to the query text,
// nearest first. k <= 0 uses DefaultTopK.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Record, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return r.index.Search(ctx, embedding, k)
}

// Index returns the underlying index.
func (r *Retriever) Index() Index {
	return r.index
}
