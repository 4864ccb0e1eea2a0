//go:build ignore

// Baseline sense classifier for the sense-only evaluation.
// Reads relations-no-senses.json from the dataset, picks a random sense for
// each relation from the language's inventory, and writes output.json with
// the gold IDs and argument spans. Types are guessed from the connective and
// are overridden by the evaluator.
// Usage: go run ./scripts/sample-sense-classifier.go LANG INPUT_DATASET INPUT_RUN OUTPUT_DIR
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/jamesainslie/go-relalign/relation"
)

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintln(os.Stderr, "usage: sample-sense-classifier LANG INPUT_DATASET INPUT_RUN OUTPUT_DIR")
		os.Exit(1)
	}
	lang, inDir, outDir := os.Args[1], os.Args[2], os.Args[4]

	senses := relation.SensesFor(lang)
	if senses == nil {
		fmt.Fprintf(os.Stderr, "Unknown language %q\n", lang)
		os.Exit(1)
	}

	rels, err := relation.LoadFile(filepath.Join(inDir, "relations-no-senses.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading relations: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(10, 10))
	for i := range rels {
		r := &rels[i]
		r.Sense = []string{senses[rng.IntN(len(senses))]}
		r.Arg1 = bare(r.Arg1)
		r.Arg2 = bare(r.Arg2)
		r.Connective = bare(r.Connective)
		if r.Connective.Len() > 0 {
			r.Type = relation.TypeExplicit
		} else {
			r.Type = relation.TypeImplicit
		}
	}

	if err := writeOutput(filepath.Join(outDir, "output.json"), rels); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Classified %d relations\n", len(rels))
}

// bare keeps only the document offsets of a span's tokens.
func bare(s relation.Span) relation.Span {
	return relation.Span{TokenList: relation.Tokens(s.Positions()...)}
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
