package chatbot

import (
	"fmt"
	"strings"

	"github.com/daybook-ai/daybook-go/rag"
)

// maxSuggestions caps the proactive suggestion list.
const maxSuggestions = 3

// Suggest proposes up to three follow-up questions from the retrieved
// records. A topic the query already names by keyword is never suggested.
// When the query carried a date constraint, a suggestion for the following
// calendar day is appended (and may be cut by the cap).
func Suggest(query string, records []rag.Record) []string {
	q := strings.ToLower(query)
	date := ExtractDate(q)
	candidates := FilterByDate(records, date)

	var suggestions []string
	for _, rec := range candidates {
		if rec.Has("steps") && !strings.Contains(q, "steps") {
			suggestions = append(suggestions,
				fmt.Sprintf("Would you like to know how many steps you took on %s?", suggestionDate(rec)))
		}
		if rec.Has("heart_rate") && !strings.Contains(q, "heart rate") {
			suggestions = append(suggestions,
				fmt.Sprintf("Would you like to know your heart rate on %s?", suggestionDate(rec)))
		}
		if rec.Has("place") && !containsAny(q, []string{"location", "where"}) {
			suggestions = append(suggestions,
				fmt.Sprintf("Would you like to know where you were on %s?", suggestionDate(rec)))
		}
		if rec.Has("preferences") && !strings.Contains(q, "preferences") {
			name := rec.String("name")
			if name == "" {
				name = "the user"
			}
			suggestions = append(suggestions,
				fmt.Sprintf("Would you like to know about %s's preferences?", name))
		}
		if rec.String("category") == "movies" && !strings.Contains(q, "movie") {
			suggestions = append(suggestions,
				"Would you like to know about your movie ratings?")
		}
	}

	if date != "" {
		if next, err := nextDay(date); err == nil {
			suggestions = append(suggestions,
				fmt.Sprintf("Would you like to know what happened on %s?", next))
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func suggestionDate(rec rag.Record) string {
	if date := rec.Date(); date != "" {
		return date
	}
	return "an unknown date"
}
