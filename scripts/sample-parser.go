//go:build ignore

// Baseline discourse parser for exercising the scorer end to end.
// Labels every pair of adjacent sentences as an Implicit
// Expansion.Conjunction relation, dropping the final token of each
// sentence from its argument.
// Usage: go run ./scripts/sample-parser.go INPUT_DATASET INPUT_RUN OUTPUT_DIR
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jamesainslie/go-relalign/relation"
)

// document is the part of a parses.json entry the baseline needs.
type document struct {
	Sentences []struct {
		Words []json.RawMessage `json:"words"`
	} `json:"sentences"`
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: sample-parser INPUT_DATASET INPUT_RUN OUTPUT_DIR")
		os.Exit(1)
	}
	inDir, outDir := os.Args[1], os.Args[3]

	docs, err := readParses(filepath.Join(inDir, "parses.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading parses: %v\n", err)
		os.Exit(1)
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var rels []relation.Relation
	for _, id := range ids {
		rels = append(rels, parseDoc(id, docs[id])...)
	}

	if err := writeOutput(filepath.Join(outDir, "output.json"), rels); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d relations for %d documents\n", len(rels), len(ids))
}

func readParses(path string) (map[string]document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs map[string]document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return docs, nil
}

func parseDoc(id string, doc document) []relation.Relation {
	var out []relation.Relation
	tokenID := 0
	for i := 0; i+1 < len(doc.Sentences); i++ {
		len1 := len(doc.Sentences[i].Words)
		len2 := len(doc.Sentences[i+1].Words)
		tokenID += len1

		out = append(out, relation.Relation{
			DocID:      id,
			Arg1:       relation.Span{TokenList: relation.Tokens(span(tokenID-len1, tokenID-1)...)},
			Arg2:       relation.Span{TokenList: relation.Tokens(span(tokenID, tokenID+len2-1)...)},
			Connective: relation.Span{TokenList: relation.Tokens()},
			Sense:      []string{"Expansion.Conjunction"},
			Type:       relation.TypeImplicit,
		})
	}
	return out
}

// span returns the offsets in [from, to).
func span(from, to int) []int {
	var out []int
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func writeOutput(path string, rels []relation.Relation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := relation.Encode(f, rels); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
