package chromem_test

import (
	"context"
	"errors"
	"testing"

	"github.com/daybook-ai/daybook-go/rag"
	"github.com/daybook-ai/daybook-go/rag/index/chromem"
)

func TestIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()

	idx, err := chromem.New(3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records := []rag.Record{
		{"topic": "steps"},
		{"topic": "music"},
	}
	// Unit vectors: cosine ordering equals L2 ordering.
	embeddings := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
	}
	if err := idx.Add(ctx, records, embeddings); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", idx.Len())
	}

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].String("topic") != "steps" {
		t.Errorf("expected steps record first, got %v", results[0])
	}
}

func TestIndex_KClampedToSize(t *testing.T) {
	ctx := context.Background()

	idx, err := chromem.New(3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := idx.Add(ctx, []rag.Record{{"id": "a"}}, [][]float32{{1, 0, 0}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := idx.Search(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestIndex_Errors(t *testing.T) {
	ctx := context.Background()

	idx, err := chromem.New(3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := idx.Search(ctx, []float32{1, 0, 0}, 1); !errors.Is(err, rag.ErrEmptyIndex) {
		t.Errorf("expected ErrEmptyIndex, got %v", err)
	}

	err = idx.Add(ctx, []rag.Record{{"id": "a"}}, [][]float32{{1, 0}})
	if !errors.Is(err, rag.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
