package chatbot_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/daybook-ai/daybook-go/chatbot"
	"github.com/daybook-ai/daybook-go/rag"
	"github.com/daybook-ai/daybook-go/rag/index/flat"
)

// stubEmbedder returns a fixed vector for every input. With a small index
// every search returns all records in insertion order, which keeps the
// end-to-end tests deterministic.
type stubEmbedder struct {
	fail bool
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.fail {
		return nil, errors.New("embedder unavailable")
	}
	return []float32{1, 0, 0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		emb, err := s.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = emb
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return 4 }

// stubGenerator returns a canned response or a canned failure.
type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestBot(t *testing.T, records []rag.Record, gen *stubGenerator) *chatbot.Chatbot {
	t.Helper()

	embedder := &stubEmbedder{}
	index := flat.New(embedder.Dimensions())

	if len(records) > 0 {
		embeddings := make([][]float32, len(records))
		for i := range records {
			embeddings[i] = []float32{1, 0, 0, 0}
		}
		if err := index.Add(context.Background(), records, embeddings); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	retriever := rag.NewRetriever(embedder, index)
	if gen == nil {
		return chatbot.New(retriever, nil, nil)
	}
	return chatbot.New(retriever, gen, nil)
}

func TestRespond_StepsOnDate(t *testing.T) {
	records := []rag.Record{
		{"steps": 5000, "timestamp": "2023-01-01T08:00:00"},
		{"steps": 6200, "timestamp": "2023-01-02T08:00:00"},
		{"heart_rate": 72, "timestamp": "2023-01-01T09:00:00"},
	}
	bot := newTestBot(t, records, nil)

	response := bot.Respond(context.Background(), "How many steps did I take on Jan 1?")

	if !strings.HasPrefix(response, "Based on the data, you took 5000 steps on 2023-01-01") {
		t.Errorf("unexpected response: %q", response)
	}
	if strings.Contains(response, "Would you like to know how many steps") {
		t.Error("suggestions must not repeat the queried topic")
	}
	if bot.Memory().Len() != 1 {
		t.Errorf("expected 1 memory entry, got %d", bot.Memory().Len())
	}
}

func TestRespond_NoDataForDate(t *testing.T) {
	records := []rag.Record{
		{"steps": 5000, "timestamp": "2023-01-01T08:00:00"},
	}
	bot := newTestBot(t, records, nil)

	response := bot.Respond(context.Background(), "What did I do on Jan 5?")

	want := "I couldn't find any data for 2023-01-05. Please try a different date."
	if response != want {
		t.Errorf("got %q, want %q", response, want)
	}
	if strings.Contains(response, "Proactive Suggestions") {
		t.Error("no suggestions expected on the no-data path")
	}
	if bot.Memory().Len() != 1 {
		t.Errorf("expected 1 memory entry, got %d", bot.Memory().Len())
	}
}

func TestRespond_GenerativeFallback(t *testing.T) {
	records := []rag.Record{
		{"mood": "good", "timestamp": "2023-01-01T10:00:00"},
	}
	gen := &stubGenerator{response: "You were in a good mood."}
	bot := newTestBot(t, records, gen)

	response := bot.Respond(context.Background(), "how was I feeling?")

	if gen.calls != 1 {
		t.Fatalf("expected 1 generator call, got %d", gen.calls)
	}
	if !strings.HasPrefix(response, "You were in a good mood.") {
		t.Errorf("unexpected response: %q", response)
	}
}

func TestRespond_GenerativeFailure(t *testing.T) {
	records := []rag.Record{
		{"mood": "good", "timestamp": "2023-01-01T10:00:00"},
	}
	gen := &stubGenerator{err: errors.New("service unavailable")}
	bot := newTestBot(t, records, gen)

	response := bot.Respond(context.Background(), "how was I feeling?")

	if response == "" {
		t.Fatal("expected a non-empty fallback response")
	}
	if !strings.Contains(response, "I found some data related to your query") {
		t.Errorf("expected limited-mode text, got %q", response)
	}
	if bot.Memory().Len() != 1 {
		t.Errorf("expected exactly 1 memory entry, got %d", bot.Memory().Len())
	}
}

func TestRespond_DeterministicSkipsGenerator(t *testing.T) {
	records := []rag.Record{
		{"steps": 5000, "timestamp": "2023-01-01T08:00:00"},
	}
	gen := &stubGenerator{response: "should not be used"}
	bot := newTestBot(t, records, gen)

	response := bot.Respond(context.Background(), "how many steps on jan 1?")

	if gen.calls != 0 {
		t.Errorf("deterministic answer must not call the generator, got %d calls", gen.calls)
	}
	if !strings.HasPrefix(response, "Based on the data") {
		t.Errorf("unexpected response: %q", response)
	}
}

func TestRespond_EmptyIndex(t *testing.T) {
	bot := newTestBot(t, nil, nil)

	response := bot.Respond(context.Background(), "how many steps?")

	if !strings.Contains(response, "no data available") {
		t.Errorf("expected a no-data-available message, got %q", response)
	}
	if bot.Memory().Len() != 1 {
		t.Errorf("expected 1 memory entry, got %d", bot.Memory().Len())
	}
}

func TestRespond_EmbedderFailure(t *testing.T) {
	embedder := &stubEmbedder{}
	index := flat.New(embedder.Dimensions())
	if err := index.Add(context.Background(),
		[]rag.Record{{"steps": 5000}}, [][]float32{{1, 0, 0, 0}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	embedder.fail = true
	bot := chatbot.New(rag.NewRetriever(embedder, index), nil, nil)

	response := bot.Respond(context.Background(), "how many steps?")

	if !strings.HasPrefix(response, "I encountered an error:") {
		t.Errorf("expected an error response, got %q", response)
	}
	if bot.Memory().Len() != 1 {
		t.Errorf("error path must still record the interaction, got %d entries", bot.Memory().Len())
	}
}

func TestRespond_SuggestionsAppended(t *testing.T) {
	records := []rag.Record{
		{"steps": 5000, "heart_rate": 72, "timestamp": "2023-01-01T08:00:00"},
	}
	bot := newTestBot(t, records, nil)

	response := bot.Respond(context.Background(), "how many steps on jan 1?")

	if !strings.Contains(response, "Proactive Suggestions:") {
		t.Fatalf("expected a suggestions section, got %q", response)
	}
	if !strings.Contains(response, "heart rate") {
		t.Errorf("expected a heart rate suggestion, got %q", response)
	}
}

func TestRespond_HistoryAccumulates(t *testing.T) {
	records := []rag.Record{
		{"steps": 5000, "timestamp": "2023-01-01T08:00:00"},
	}
	bot := newTestBot(t, records, nil)

	queries := []string{
		"how many steps on jan 1?",
		"where was I?",
		"what is my heart rate?",
	}
	for _, q := range queries {
		bot.Respond(context.Background(), q)
	}

	history := bot.Memory().History(5)
	if len(history) != 3 {
		t.Fatalf("expected 3 interactions, got %d", len(history))
	}
	for i, q := range queries {
		if history[i].Query != q {
			t.Errorf("history[%d].Query = %q, want %q", i, history[i].Query, q)
		}
	}
}
