package eval

import (
	"context"
	"math"
	"sort"

	"github.com/jamesainslie/go-relalign/relation"
)

// SweepResult holds partial-match scores for one cutoff value.
type SweepResult struct {
	Cutoff   float64
	Relation Metrics
	Parser   Metrics
}

// SweepCutoffs generates cutoff values from min up to and including max
// with the given step.
func SweepCutoffs(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var cutoffs []float64
	for i := 0; ; i++ {
		c := math.Round((min+float64(i)*step)*1e6) / 1e6
		if c > max+1e-9 {
			break
		}
		cutoffs = append(cutoffs, c)
	}
	return cutoffs
}

// Sweep evaluates multiple cutoffs and returns results sorted by
// whole-relation F1, best first.
func Sweep(ctx context.Context, gold, predicted []relation.Relation, cfg Config, cutoffs []float64) ([]SweepResult, error) {
	cfg.Language = cfg.language(gold)

	results := make([]SweepResult, 0, len(cutoffs))
	for _, cutoff := range cutoffs {
		cfg.Cutoff = cutoff
		pr, err := Partial(ctx, gold, predicted, cfg)
		if err != nil {
			return nil, err
		}
		cfg.logger().Debug("cutoff evaluated", "cutoff", cutoff, "f1", pr.Relation.F1)
		results = append(results, SweepResult{
			Cutoff:   cutoff,
			Relation: pr.Relation,
			Parser:   pr.Parser,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relation.F1 > results[j].Relation.F1
	})
	return results, nil
}
