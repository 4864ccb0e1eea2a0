package relation

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors for malformed or invalid input.
var (
	// ErrMalformed indicates a line that is not a decodable relation.
	ErrMalformed = errors.New("relation: malformed record")

	// ErrInvalid indicates a decoded relation that fails validation.
	ErrInvalid = errors.New("relation: invalid record")
)

// maxLineSize bounds a single JSON line; gold relations with long
// arguments run to a few hundred kilobytes.
const maxLineSize = 16 << 20

// Decode reads one relation per line. Blank lines are skipped.
func Decode(r io.Reader) ([]Relation, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var rels []Relation
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rel Relation
		if err := json.Unmarshal(line, &rel); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, lineNo, err)
		}
		rels = append(rels, rel)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan relations: %w", err)
	}
	return rels, nil
}

// LoadFile reads a JSON-lines relation file.
func LoadFile(path string) ([]Relation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open relations: %w", err)
	}
	defer func() { _ = f.Close() }()

	rels, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rels, nil
}

// Encode writes relations one per line.
func Encode(w io.Writer, rels []Relation) error {
	enc := json.NewEncoder(w)
	for i := range rels {
		if err := enc.Encode(&rels[i]); err != nil {
			return fmt.Errorf("encode relation %d: %w", i, err)
		}
	}
	return nil
}
