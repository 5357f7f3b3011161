package chatbot

import (
	"strings"
	"testing"

	"github.com/daybook-ai/daybook-go/rag"
)

func TestAnswerFromFields_Rules(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		records []rag.Record
		want    string
	}{
		{
			name:    "steps with timestamp",
			query:   "How many steps did I take?",
			records: []rag.Record{{"steps": 5000, "timestamp": "2023-01-01T08:00:00"}},
			want:    "Based on the data, you took 5000 steps on 2023-01-01.",
		},
		{
			name:    "steps without any date",
			query:   "how many steps?",
			records: []rag.Record{{"steps": 7500}},
			want:    "Based on the data, you took 7500 steps.",
		},
		{
			name:    "heart rate",
			query:   "What was my heart rate?",
			records: []rag.Record{{"heart_rate": 72, "timestamp": "2023-01-02T09:30:00"}},
			want:    "Your heart rate was 72 on 2023-01-02.",
		},
		{
			name:    "location via where",
			query:   "Where was I?",
			records: []rag.Record{{"place": "Central Park", "date": "2023-01-03"}},
			want:    "You were in Central Park on 2023-01-03.",
		},
		{
			name:  "preferences",
			query: "Tell me about my preferences",
			records: []rag.Record{
				{"name": "Alice", "preferences": []any{"reading", "hiking"}},
			},
			want: "Alice's preferences include: reading, hiking.",
		},
		{
			name:  "movie rating",
			query: "What movie did I rate?",
			records: []rag.Record{
				{"category": "movies", "item": "Inception", "rating": 4.5},
			},
			want: "You have rated Inception with a rating of 4.5.",
		},
		{
			name:    "age and weight",
			query:   "What is my age?",
			records: []rag.Record{{"age": 30, "weight": 70}},
			want:    "Your age is 30 and your weight is 70.",
		},
		{
			name:    "weight only",
			query:   "what's my weight",
			records: []rag.Record{{"weight": 70}},
			want:    "Your weight is 70.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := answerFromFields(tt.query, tt.records, "")
			if !ok {
				t.Fatal("expected a deterministic answer")
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnswerFromFields_FirstRuleWins(t *testing.T) {
	// Query names both steps and heart rate; the steps rule is earlier.
	records := []rag.Record{
		{"steps": 5000, "heart_rate": 72, "timestamp": "2023-01-01T08:00:00"},
	}

	got, ok := answerFromFields("steps and heart rate please", records, "")
	if !ok {
		t.Fatal("expected a deterministic answer")
	}
	if !strings.HasPrefix(got, "Based on the data, you took 5000 steps") {
		t.Errorf("expected the steps rule to win, got %q", got)
	}
}

func TestAnswerFromFields_NoMatch(t *testing.T) {
	records := []rag.Record{{"steps": 5000}}

	// Keyword matches no record field set.
	if _, ok := answerFromFields("where was I?", records, ""); ok {
		t.Error("expected no match when no record has a place field")
	}

	// No rule keyword in the query at all.
	if _, ok := answerFromFields("tell me a joke", records, ""); ok {
		t.Error("expected no match for a query without rule keywords")
	}
}

func TestAnswerFromFields_FallbackDate(t *testing.T) {
	// Record without a date field; the query constraint fills in.
	records := []rag.Record{{"steps": 4200}}

	got, ok := answerFromFields("steps?", records, "2023-01-04")
	if !ok {
		t.Fatal("expected a deterministic answer")
	}
	if got != "Based on the data, you took 4200 steps on 2023-01-04." {
		t.Errorf("unexpected answer %q", got)
	}
}

func TestLimitedModeAnswer(t *testing.T) {
	got := limitedModeAnswer([]rag.Record{{"mood": "good"}})

	if !strings.HasPrefix(got, "I found some data related to your query:") {
		t.Errorf("unexpected prefix in %q", got)
	}
	if !strings.Contains(got, `"mood":"good"`) {
		t.Errorf("expected record content in %q", got)
	}
}
