// Package memory provides the conversation log: an append-only record of
// past query/response pairs. Storage is unbounded; reads are windowed to
// the most recent interactions.
package memory

import "sync"

// DefaultHistoryLimit is the read window used when no limit is given.
const DefaultHistoryLimit = 5

// Interaction is one query/response pair.
type Interaction struct {
	Query    string
	Response string
}

// Log is an insertion-ordered interaction history. Created empty per
// session; appended on every response; may be cleared explicitly.
type Log struct {
	mu           sync.Mutex
	interactions []Interaction
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Add appends a query/response pair. No deduplication.
func (l *Log) Add(query string, response string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interactions = append(l.interactions, Interaction{Query: query, Response: response})
}

// History returns the last limit interactions in chronological order
// (most recent last). limit <= 0 uses DefaultHistoryLimit.
func (l *Log) History(limit int) []Interaction {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	start := len(l.interactions) - limit
	if start < 0 {
		start = 0
	}

	out := make([]Interaction, len(l.interactions)-start)
	copy(out, l.interactions[start:])
	return out
}

// Clear resets the log to empty.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interactions = nil
}

// Len reports the number of stored interactions.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.interactions)
}
