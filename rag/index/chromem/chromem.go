// Package chromem provides an Index backed by chromem-go, a pure Go
// embedded vector database.
//
// chromem-go ranks by cosine similarity. Cosine ordering and squared-L2
// ordering agree for unit-norm vectors, so this index requires embedders
// that normalize their output (all embedders in this module do). The flat
// index remains the reference implementation of the ordering contract.
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/daybook-ai/daybook-go/rag"
)

// Index stores records as chromem documents, one collection per Index.
type Index struct {
	mu         sync.RWMutex
	col        *chromem.Collection
	dimensions int
	count      int
}

// New creates an empty chromem-backed index.
func New(dimensions int) (*Index, error) {
	db := chromem.NewDB()

	col, err := db.CreateCollection(
		"records",
		nil, // no collection metadata
		nil, // embeddings are provided, not computed
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{
		col:        col,
		dimensions: dimensions,
	}, nil
}

// Add appends records and embeddings in lockstep.
func (idx *Index) Add(ctx context.Context, records []rag.Record, embeddings [][]float32) error {
	if len(records) != len(embeddings) {
		return fmt.Errorf("%w: %d records but %d embeddings",
			rag.ErrDimensionMismatch, len(records), len(embeddings))
	}
	for i, emb := range embeddings {
		if len(emb) != idx.dimensions {
			return fmt.Errorf("%w: embedding %d has %d dimensions, want %d",
				rag.ErrDimensionMismatch, i, len(emb), idx.dimensions)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i, rec := range records {
		content, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i, err)
		}

		doc := chromem.Document{
			ID:        uuid.New().String(),
			Content:   string(content),
			Embedding: embeddings[i],
			Metadata: map[string]string{
				// Insertion position, kept for stable tie-breaking.
				"pos": strconv.Itoa(idx.count),
			},
		}
		if err := idx.col.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("add document: %w", err)
		}
		idx.count++
	}

	log.Printf("[CHROMEM] Added %d records (total %d)", len(records), idx.count)
	return nil
}

// Search returns up to k records, nearest first.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]rag.Record, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, want %d",
			rag.ErrDimensionMismatch, len(query), idx.dimensions)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.count == 0 {
		return nil, rag.ErrEmptyIndex
	}

	// chromem requires nResults <= collection size.
	if k > idx.count {
		k = idx.count
	}

	results, err := idx.col.QueryEmbedding(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	// chromem orders by similarity but makes no promise about ties;
	// re-sort so equal-similarity hits keep insertion order.
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Similarity != results[b].Similarity {
			return results[a].Similarity > results[b].Similarity
		}
		return docPos(results[a]) < docPos(results[b])
	})

	records := make([]rag.Record, 0, len(results))
	for i, res := range results {
		var rec rag.Record
		if err := json.Unmarshal([]byte(res.Content), &rec); err != nil {
			log.Printf("[CHROMEM] Skipping result #%d: %v", i+1, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Len reports the number of stored records.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.count
}

func docPos(res chromem.Result) int {
	pos, err := strconv.Atoi(res.Metadata["pos"])
	if err != nil {
		return 0
	}
	return pos
}
