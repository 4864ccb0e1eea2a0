// Package relation defines shallow discourse relations as they appear in
// CoNLL shared task gold and system output files.
package relation

import (
	"github.com/samber/lo"
)

// Relation types accepted in system output.
const (
	TypeExplicit = "Explicit"
	TypeImplicit = "Implicit"
	TypeAltLex   = "AltLex"
	TypeEntRel   = "EntRel"
	TypeNoRel    = "NoRel"
)

// Relation is one gold or predicted discourse annotation.
type Relation struct {
	ID         int      `json:"ID,omitempty"`
	DocID      string   `json:"DocID"`
	Arg1       Span     `json:"Arg1"`
	Arg2       Span     `json:"Arg2"`
	Connective Span     `json:"Connective"`
	Sense      []string `json:"Sense"`
	Type       string   `json:"Type"`
}

// PrimarySense returns the first sense label, or "" if there is none.
func (r *Relation) PrimarySense() string {
	if len(r.Sense) == 0 {
		return ""
	}
	return r.Sense[0]
}

// HasSense reports whether sense is one of the relation's labels.
func (r *Relation) HasSense(sense string) bool {
	return lo.Contains(r.Sense, sense)
}

// IsExplicit reports whether the relation has an explicit connective.
func (r *Relation) IsExplicit() bool {
	return r.Type == TypeExplicit
}

// Span is a run of tokens covered by an argument or connective.
type Span struct {
	CharacterSpanList [][2]int       `json:"CharacterSpanList,omitempty"`
	RawText           string         `json:"RawText,omitempty"`
	TokenList         []TokenAddress `json:"TokenList"`
}

// Len returns the number of tokens in the span.
func (s Span) Len() int {
	return len(s.TokenList)
}

// First returns the document offset of the first token.
// The span must not be empty.
func (s Span) First() int {
	return s.TokenList[0].DocOffset
}

// Last returns the document offset of the last token.
// The span must not be empty.
func (s Span) Last() int {
	return s.TokenList[len(s.TokenList)-1].DocOffset
}

// Positions returns the document offsets of the span's tokens in order.
func (s Span) Positions() []int {
	out := make([]int, len(s.TokenList))
	for i, t := range s.TokenList {
		out[i] = t.DocOffset
	}
	return out
}

// IndexSet returns the span's TokenIndexSet.
func (s Span) IndexSet() IndexSet {
	return NewIndexSet(s.Positions()...)
}

// Filter returns the relations for which keep reports true.
func Filter(rs []Relation, keep func(r *Relation) bool) []Relation {
	return lo.Filter(rs, func(r Relation, _ int) bool {
		return keep(&r)
	})
}

// Explicit returns only explicit relations.
func Explicit(rs []Relation) []Relation {
	return Filter(rs, (*Relation).IsExplicit)
}

// NonExplicit returns implicit, AltLex and EntRel relations.
func NonExplicit(rs []Relation) []Relation {
	return Filter(rs, func(r *Relation) bool { return !r.IsExplicit() })
}

// GroupByDoc partitions relations by document id, keeping input order
// within each document.
func GroupByDoc(rs []Relation) map[string][]*Relation {
	ptrs := make([]*Relation, len(rs))
	for i := range rs {
		ptrs[i] = &rs[i]
	}
	return lo.GroupBy(ptrs, func(r *Relation) string { return r.DocID })
}
