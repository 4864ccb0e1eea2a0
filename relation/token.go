package relation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TokenAddress locates one token in a document.
//
// Gold files carry the full address as
// [charStart, charEnd, docOffset, sentence, sentOffset]; system output carries
// only the document offset as a bare integer. HasAddress records which form
// was read so that encoding reproduces it.
type TokenAddress struct {
	CharStart  int
	CharEnd    int
	DocOffset  int
	Sentence   int
	SentOffset int
	HasAddress bool
}

// Offset returns a bare token address for system output.
func Offset(docOffset int) TokenAddress {
	return TokenAddress{DocOffset: docOffset}
}

// Tokens builds a bare token list from document offsets.
func Tokens(offsets ...int) []TokenAddress {
	out := make([]TokenAddress, len(offsets))
	for i, o := range offsets {
		out[i] = Offset(o)
	}
	return out
}

// UnmarshalJSON accepts either an integer offset or a five-element address.
func (t *TokenAddress) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("token address: %w", err)
		}
		if len(parts) != 5 {
			return fmt.Errorf("token address: want 5 fields, got %d", len(parts))
		}
		*t = TokenAddress{
			CharStart:  parts[0],
			CharEnd:    parts[1],
			DocOffset:  parts[2],
			Sentence:   parts[3],
			SentOffset: parts[4],
			HasAddress: true,
		}
		return nil
	}

	var offset int
	if err := json.Unmarshal(data, &offset); err != nil {
		return fmt.Errorf("token offset: %w", err)
	}
	*t = Offset(offset)
	return nil
}

// MarshalJSON writes the same form that was read.
func (t TokenAddress) MarshalJSON() ([]byte, error) {
	if !t.HasAddress {
		return json.Marshal(t.DocOffset)
	}
	return json.Marshal([5]int{t.CharStart, t.CharEnd, t.DocOffset, t.Sentence, t.SentOffset})
}
