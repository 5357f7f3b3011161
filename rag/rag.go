package rag

import (
	"context"
	"errors"
)

var (
	// ErrEmptyIndex is returned by Search before any records have been added.
	ErrEmptyIndex = errors.New("rag: index is empty")

	// ErrDimensionMismatch is returned when record and embedding counts
	// disagree, or when a vector does not have the index's dimension.
	ErrDimensionMismatch = errors.New("rag: dimension mismatch")
)

// Embedder converts text to vector embeddings.
// Implementations: mock (testing), openai (API), onnx (local model).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch converts a batch of texts, one vector per input, in order.
	// Used at index-build time.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}

// Index stores records with their embeddings and answers k-NN queries.
//
// Records and embeddings are correlated by position: the i-th embedding
// always belongs to the i-th record. An Index grows by batch insertion and
// never shrinks; records are immutable once added.
//
// Implementations: flat (reference exact scan), chromem (embedded vector DB).
type Index interface {
	// Add appends records and their embeddings in lockstep.
	// len(records) must equal len(embeddings) and every embedding must have
	// the index's dimension; violations return ErrDimensionMismatch.
	Add(ctx context.Context, records []Record, embeddings [][]float32) error

	// Search returns up to k records ordered nearest-first under squared
	// Euclidean distance, ties broken by insertion order (earlier wins).
	// An index holding fewer than k records returns all of them.
	// Searching an empty index returns ErrEmptyIndex.
	Search(ctx context.Context, query []float32, k int) ([]Record, error)

	// Len reports the number of stored records.
	Len() int
}
