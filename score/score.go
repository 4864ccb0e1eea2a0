// Package score computes partial-match overlap scores between gold and
// predicted discourse relations.
package score

import (
	"fmt"

	"github.com/jamesainslie/go-relalign/relation"
)

// Scored pairs a relation with the TokenIndexSets of its arguments so that
// the sets are computed once per relation rather than once per pair.
type Scored struct {
	Rel  *relation.Relation
	Arg1 relation.IndexSet
	Arg2 relation.IndexSet
}

// Prepare computes the argument index sets of each relation.
func Prepare(rels []*relation.Relation) []Scored {
	out := make([]Scored, len(rels))
	for i, r := range rels {
		out[i] = Scored{
			Rel:  r,
			Arg1: r.Arg1.IndexSet(),
			Arg2: r.Arg2.IndexSet(),
		}
	}
	return out
}

// Overlaps reports whether the token ranges of two spans intersect, looking
// only at their first and last tokens. It is a cheap filter ahead of F1.
func Overlaps(gold, predicted relation.Span) bool {
	if predicted.Len() == 0 || gold.Len() == 0 {
		return false
	}
	return gold.First() <= predicted.Last() && predicted.First() <= gold.Last()
}

// F1 is the token-level harmonic mean of precision and recall of predicted
// against gold. It is 0 when the sets do not intersect.
func F1(gold, predicted relation.IndexSet) float64 {
	correct := float64(gold.Intersect(predicted))
	if correct == 0 {
		return 0
	}
	precision := correct / float64(predicted.Len())
	recall := correct / float64(gold.Len())
	return 2 * precision * recall / (precision + recall)
}

// Func scores one gold/predicted pair.
type Func func(gold, predicted *Scored) float64

// Arg1Score is the Arg1 F1, or 0 if the Arg1 spans do not overlap.
func Arg1Score(gold, predicted *Scored) float64 {
	if !Overlaps(gold.Rel.Arg1, predicted.Rel.Arg1) {
		return 0
	}
	return F1(gold.Arg1, predicted.Arg1)
}

// Arg2Score is the Arg2 F1, or 0 if the Arg2 spans do not overlap.
func Arg2Score(gold, predicted *Scored) float64 {
	if !Overlaps(gold.Rel.Arg2, predicted.Rel.Arg2) {
		return 0
	}
	return F1(gold.Arg2, predicted.Arg2)
}

// RelationScore is the mean of the Arg1 and Arg2 F1, or 0 unless both
// argument pairs overlap.
func RelationScore(gold, predicted *Scored) float64 {
	if !Overlaps(gold.Rel.Arg1, predicted.Rel.Arg1) || !Overlaps(gold.Rel.Arg2, predicted.Rel.Arg2) {
		return 0
	}
	return (F1(gold.Arg1, predicted.Arg1) + F1(gold.Arg2, predicted.Arg2)) / 2
}

// Criterion selects which part of a relation is aligned.
type Criterion int

const (
	Arg1 Criterion = iota
	Arg2
	Whole
)

// Criteria lists every criterion in evaluation order.
var Criteria = []Criterion{Arg1, Arg2, Whole}

// Func returns the scoring function for the criterion.
func (c Criterion) Func() Func {
	switch c {
	case Arg1:
		return Arg1Score
	case Arg2:
		return Arg2Score
	default:
		return RelationScore
	}
}

func (c Criterion) String() string {
	switch c {
	case Arg1:
		return "arg1"
	case Arg2:
		return "arg2"
	case Whole:
		return "relation"
	default:
		return fmt.Sprintf("criterion(%d)", int(c))
	}
}
