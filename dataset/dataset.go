// Package dataset loads record collections and builds the index from them.
//
// Each collection is one JSON array of records (wearable, chat_history,
// user_profile, location, custom). Records are embedded in batches at
// build time; a small in-process cache avoids re-embedding records whose
// serialized form has not changed between builds.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/daybook-ai/daybook-go/rag"
)

// Collection is one named group of records.
type Collection struct {
	Name    string
	Records []rag.Record
}

// Load reads one collection file: a JSON array of record objects.
func Load(path string) ([]rag.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}

	var records []rag.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// LoadDir reads every *.json file in a directory as a collection, named
// after the file without extension, in lexical filename order.
func LoadDir(dir string) ([]Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	collections := make([]Collection, 0, len(names))
	for _, name := range names {
		records, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		collections = append(collections, Collection{
			Name:    strings.TrimSuffix(name, ".json"),
			Records: records,
		})
	}
	return collections, nil
}

// Chunk groups records into fixed-size chunks, preserving order. The last
// chunk may be shorter. size <= 0 returns a single chunk.
func Chunk(records []rag.Record, size int) [][]rag.Record {
	if len(records) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]rag.Record{records}
	}

	chunks := make([][]rag.Record, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}
	return chunks
}
