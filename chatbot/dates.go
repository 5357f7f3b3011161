package chatbot

import (
	"strings"
	"time"

	"github.com/daybook-ai/daybook-go/rag"
)

// dateLexicon maps textual date phrases to normalized dates. Matching is
// a closed lookup, not general date parsing: queries outside the lexicon
// never produce a constraint. Order matters; the first matching phrase wins.
var dateLexicon = []struct {
	phrase string
	date   string
}{
	{"january 1st", "2023-01-01"},
	{"jan 1", "2023-01-01"},
	{"january 2nd", "2023-01-02"},
	{"jan 2", "2023-01-02"},
	{"january 3rd", "2023-01-03"},
	{"jan 3", "2023-01-03"},
	{"january 4th", "2023-01-04"},
	{"jan 4", "2023-01-04"},
	{"january 5th", "2023-01-05"},
	{"jan 5", "2023-01-05"},
	{"january 6th", "2023-01-06"},
	{"jan 6", "2023-01-06"},
	{"january 7th", "2023-01-07"},
	{"jan 7", "2023-01-07"},
	{"january 8th", "2023-01-08"},
	{"jan 8", "2023-01-08"},
}

// ExtractDate returns the YYYY-MM-DD constraint named by the query, or ""
// when no lexicon phrase matches. Case-insensitive substring match.
func ExtractDate(query string) string {
	query = strings.ToLower(query)
	for _, entry := range dateLexicon {
		if strings.Contains(query, entry.phrase) {
			return entry.date
		}
	}
	return ""
}

// FilterByDate keeps records whose timestamp (or date) field falls on the
// constraint date. An empty constraint is the identity. Records without a
// date field are dropped when a constraint is present. Order preserved.
func FilterByDate(records []rag.Record, date string) []rag.Record {
	if date == "" {
		return records
	}

	filtered := make([]rag.Record, 0, len(records))
	for _, rec := range records {
		if rec.Date() == date {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// nextDay returns the calendar day after a YYYY-MM-DD date, rolling over
// month and year boundaries.
func nextDay(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02"), nil
}
