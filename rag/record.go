package rag

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one structured fact about the user: a wearable sample, a
// location ping, a profile entry, a rating. Records carry no fixed schema;
// the fields present decide which answer rules apply to them.
type Record map[string]any

// Has reports whether the field is present.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Scalar returns the field rendered as text: strings pass through, JSON
// numbers render without a trailing ".0" (5000, 4.5), booleans as
// true/false. The second result is false when the field is absent.
func (r Record) Scalar(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	return formatScalar(v), true
}

// Strings returns the field as a list of strings. JSON arrays decode as
// []any, so each element is rendered with the scalar rules.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, formatScalar(e))
		}
		return out
	default:
		return nil
	}
}

// Timestamp returns the raw timestamp field, falling back to the date
// field, or "" when the record carries neither.
func (r Record) Timestamp() string {
	if ts := r.String("timestamp"); ts != "" {
		return ts
	}
	return r.String("date")
}

// Date returns the date portion of the record's timestamp: the substring
// before a literal 'T', or the whole field when there is no 'T'.
func (r Record) Date() string {
	ts := r.Timestamp()
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

// JSON returns the record serialized as JSON. Keys are sorted by
// encoding/json, so the same record always produces the same text; this is
// the representation handed to the Embedder.
func (r Record) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}

func formatScalar(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
