package chatbot

import (
	"fmt"
	"strings"

	"github.com/daybook-ai/daybook-go/rag"
)

// answerRule is one entry of the deterministic dispatch table: keywords
// that must appear in the query, a predicate over record fields, and the
// answer sentence for the first record that matches.
type answerRule struct {
	keywords []string
	matches  func(rag.Record) bool
	answer   func(rec rag.Record, fallbackDate string) string
}

// answerRules is evaluated in order; the first rule whose keyword appears
// in the query and whose predicate matches a record wins.
var answerRules = []answerRule{
	{
		keywords: []string{"steps"},
		matches:  func(r rag.Record) bool { return r.Has("steps") },
		answer: func(r rag.Record, fallback string) string {
			steps, _ := r.Scalar("steps")
			if date := recordDate(r, fallback); date != "" {
				return fmt.Sprintf("Based on the data, you took %s steps on %s.", steps, date)
			}
			return fmt.Sprintf("Based on the data, you took %s steps.", steps)
		},
	},
	{
		keywords: []string{"heart rate"},
		matches:  func(r rag.Record) bool { return r.Has("heart_rate") },
		answer: func(r rag.Record, fallback string) string {
			hr, _ := r.Scalar("heart_rate")
			if date := recordDate(r, fallback); date != "" {
				return fmt.Sprintf("Your heart rate was %s on %s.", hr, date)
			}
			return fmt.Sprintf("Your heart rate was %s.", hr)
		},
	},
	{
		keywords: []string{"location", "where"},
		matches:  func(r rag.Record) bool { return r.Has("place") },
		answer: func(r rag.Record, fallback string) string {
			place := r.String("place")
			if date := recordDate(r, fallback); date != "" {
				return fmt.Sprintf("You were in %s on %s.", place, date)
			}
			return fmt.Sprintf("You were in %s.", place)
		},
	},
	{
		keywords: []string{"preferences"},
		matches:  func(r rag.Record) bool { return r.Has("preferences") && r.Has("name") },
		answer: func(r rag.Record, _ string) string {
			return fmt.Sprintf("%s's preferences include: %s.",
				r.String("name"), strings.Join(r.Strings("preferences"), ", "))
		},
	},
	{
		keywords: []string{"movie"},
		matches:  func(r rag.Record) bool { return r.String("category") == "movies" },
		answer: func(r rag.Record, _ string) string {
			item, _ := r.Scalar("item")
			rating, _ := r.Scalar("rating")
			return fmt.Sprintf("You have rated %s with a rating of %s.", item, rating)
		},
	},
	{
		keywords: []string{"age", "weight"},
		matches:  func(r rag.Record) bool { return r.Has("age") || r.Has("weight") },
		answer: func(r rag.Record, _ string) string {
			age, hasAge := r.Scalar("age")
			weight, hasWeight := r.Scalar("weight")
			switch {
			case hasAge && hasWeight:
				return fmt.Sprintf("Your age is %s and your weight is %s.", age, weight)
			case hasAge:
				return fmt.Sprintf("Your age is %s.", age)
			default:
				return fmt.Sprintf("Your weight is %s.", weight)
			}
		},
	},
}

// answerFromFields tries the deterministic rule table against the query
// and the (already date-filtered) records. The second result is false when
// no rule matched, signaling the caller to fall back to generation.
func answerFromFields(query string, records []rag.Record, date string) (string, bool) {
	query = strings.ToLower(query)

	for _, rule := range answerRules {
		if !containsAny(query, rule.keywords) {
			continue
		}
		for _, rec := range records {
			if rule.matches(rec) {
				return rule.answer(rec, date), true
			}
		}
	}
	return "", false
}

// limitedModeAnswer is the best-effort text used when no rule matched and
// the generative collaborator is unavailable.
func limitedModeAnswer(records []rag.Record) string {
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = rec.JSON()
	}
	return fmt.Sprintf("I found some data related to your query: [%s]. "+
		"However, I'm currently operating in a limited mode. "+
		"Please try asking about specific data points like steps, heart rate, or location.",
		strings.Join(parts, ", "))
}

// recordDate returns the record's date, falling back to the query's date
// constraint when the record has none.
func recordDate(rec rag.Record, fallback string) string {
	if date := rec.Date(); date != "" {
		return date
	}
	return fallback
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
