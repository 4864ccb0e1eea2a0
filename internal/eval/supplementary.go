package eval

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-relalign/relation"
)

// ErrMismatch indicates sense-only output that does not pair one to one
// with the gold relations by ID.
var ErrMismatch = errors.New("eval: output does not match gold relations")

// UseGoldTypes prepares a sense classification run: it sorts both sides by
// ID, checks that the IDs pair up, and copies each gold Type onto its
// prediction. Argument spans are taken as given.
func (d *Dataset) UseGoldTypes() error {
	if len(d.Gold) != len(d.Predicted) {
		return fmt.Errorf("%w: gold standard has %d instances; predicted %d instances",
			ErrMismatch, len(d.Gold), len(d.Predicted))
	}

	byID := func(a, b relation.Relation) int { return cmp.Compare(a.ID, b.ID) }
	slices.SortStableFunc(d.Gold, byID)
	slices.SortStableFunc(d.Predicted, byID)

	for i, pair := range lo.Zip2(d.Gold, d.Predicted) {
		if pair.A.ID != pair.B.ID {
			return fmt.Errorf("%w: ID mismatch at position %d (gold %d, predicted %d); copy the ID from the gold standard",
				ErrMismatch, i, pair.A.ID, pair.B.ID)
		}
		d.Predicted[i].Type = pair.A.Type
	}
	return nil
}

// EvaluateExact scores every subset with exact matching only.
func EvaluateExact(d *Dataset, cfg Config) []Report {
	cfg.Language = d.Language(cfg.Language)

	reports := make([]Report, 0, len(Subsets))
	for _, s := range Subsets {
		sub := s.Apply(d)
		reports = append(reports, Report{
			Subset: s.Name,
			Exact:  Exact(sub.Gold, sub.Predicted, cfg),
		})
	}
	return reports
}
