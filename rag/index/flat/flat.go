// Package flat provides the reference Index: an exact brute-force scan
// under squared Euclidean distance over parallel record/embedding slices.
package flat

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/daybook-ai/daybook-go/rag"
)

// Index is an in-memory exact nearest-neighbor index.
//
// Records and embeddings are parallel slices; the i-th embedding belongs
// to the i-th record. Inserts and searches are mutually exclusive; reads
// may run concurrently.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	records    []rag.Record
	embeddings [][]float32
}

// New creates an empty index for vectors of the given dimension.
func New(dimensions int) *Index {
	return &Index{
		dimensions: dimensions,
	}
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

	idx.records = append(idx.records, records...)
	idx.embeddings = append(idx.embeddings, embeddings...)

	log.Printf("[FLAT] Added %d records (total %d)", len(records), len(idx.records))
	return nil
}

// Search scans the full record set and returns up to k records ordered by
// ascending squared L2 distance, ties broken by insertion order.
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

	if len(idx.records) == 0 {
		return nil, rag.ErrEmptyIndex
	}

	type hit struct {
		pos  int
		dist float32
	}
	hits := make([]hit, len(idx.embeddings))
	for i, emb := range idx.embeddings {
		hits[i] = hit{pos: i, dist: squaredL2(query, emb)}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].dist != hits[b].dist {
			return hits[a].dist < hits[b].dist
		}
		return hits[a].pos < hits[b].pos
	})

	if k > len(hits) {
		k = len(hits)
	}

	results := make([]rag.Record, k)
	for i := 0; i < k; i++ {
		results[i] = idx.records[hits[i].pos]
	}
	return results, nil
}

// Len reports the number of stored records.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records)
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
