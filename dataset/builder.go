package dataset

import (
	"context"
	"fmt"
	"log"

	"github.com/dgraph-io/ristretto"

	"github.com/daybook-ai/daybook-go/rag"
)

// Builder embeds records and inserts them into an index.
//
// Embeddings are cached by the record's serialized form, so rebuilding a
// session from the same collections does not call the embedder again for
// unchanged records. The cache is build-time only; query embeddings are
// computed fresh on every retrieval.
type Builder struct {
	embedder rag.Embedder
	cache    *ristretto.Cache
}

// NewBuilder creates a Builder around the given embedder.
func NewBuilder(embedder rag.Embedder) (*Builder, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     64 << 20, // 64 MiB of vectors
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}

	return &Builder{
		embedder: embedder,
		cache:    cache,
	}, nil
}

// Build embeds the records and adds them to the index in one batch.
func (b *Builder) Build(ctx context.Context, index rag.Index, records []rag.Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	embeddings := make([][]float32, len(records))

	// Serve what we can from the cache; collect the rest for one batch call.
	var missing []int
	for i, rec := range records {
		texts[i] = rec.JSON()
		if cached, ok := b.cache.Get(texts[i]); ok {
			if emb, ok := cached.([]float32); ok {
				embeddings[i] = emb
				continue
			}
		}
		missing = append(missing, i)
	}

	if len(missing) > 0 {
		batch := make([]string, len(missing))
		for i, idx := range missing {
			batch[i] = texts[idx]
		}

		fresh, err := b.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("embed records: %w", err)
		}
		if len(fresh) != len(missing) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missing))
		}

		for i, idx := range missing {
			embeddings[idx] = fresh[i]
			b.cache.Set(texts[idx], fresh[i], int64(4*len(fresh[i])))
		}
	}

	log.Printf("[DATASET] Embedded %d records (%d cached)", len(records), len(records)-len(missing))
	return index.Add(ctx, records, embeddings)
}

// BuildCollections builds every collection into the index, in order.
func (b *Builder) BuildCollections(ctx context.Context, index rag.Index, collections []Collection) error {
	for _, col := range collections {
		if err := b.Build(ctx, index, col.Records); err != nil {
			return fmt.Errorf("build collection %s: %w", col.Name, err)
		}
		log.Printf("[DATASET] Indexed collection %s (%d records)", col.Name, len(col.Records))
	}
	return nil
}

// Close releases the embedding cache.
func (b *Builder) Close() {
	b.cache.Close()
}
