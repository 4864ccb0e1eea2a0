package eval

import (
	"context"
	"fmt"

	relalign "github.com/jamesainslie/go-relalign"
	"github.com/jamesainslie/go-relalign/relation"
	"github.com/jamesainslie/go-relalign/score"
)

// PartialResult holds scores under partial argument matching.
type PartialResult struct {
	Cutoff   float64
	Arg1     Metrics
	Arg2     Metrics
	Combined Metrics // Arg1 and Arg2 counted together
	Relation Metrics // both arguments above the cutoff
	Sense    *ConfusionMatrix
	Parser   Metrics // micro-averaged sense classification
}

// Partial aligns gold and predicted relations and scores the alignments.
func Partial(ctx context.Context, gold, predicted []relation.Relation, cfg Config) (*PartialResult, error) {
	aligner, err := cfg.Aligner()
	if err != nil {
		return nil, err
	}

	res, err := aligner.Align(ctx, gold, predicted)
	if err != nil {
		return nil, fmt.Errorf("partial evaluation: %w", err)
	}

	pr := &PartialResult{
		Cutoff:   cfg.Cutoff,
		Arg1:     argMatch(res.Arg1, score.Arg1, cfg.Cutoff),
		Arg2:     argMatch(res.Arg2, score.Arg2, cfg.Cutoff),
		Relation: wholeMatch(res.Relation, cfg.Cutoff),
		Sense:    alignedSense(res.Relation, relation.SensesFor(cfg.language(gold))),
	}
	pr.Combined = pr.Arg1.Add(pr.Arg2)
	pr.Parser = pr.Sense.MicroAverage()
	return pr, nil
}

// argF1 is the token F1 of one argument of a matched pair.
func argF1(p relalign.Pair, c score.Criterion) float64 {
	if c == score.Arg1 {
		return score.F1(p.Gold.Arg1.IndexSet(), p.Predicted.Arg1.IndexSet())
	}
	return score.F1(p.Gold.Arg2.IndexSet(), p.Predicted.Arg2.IndexSet())
}

// argMatch counts a matched pair as correct when the argument F1 reaches
// the cutoff.
func argMatch(al relalign.Alignment, c score.Criterion, cutoff float64) Metrics {
	var gold, predicted, correct int
	for _, p := range al {
		if p.Gold != nil {
			gold++
		}
		if p.Predicted != nil {
			predicted++
		}
		if p.Matched() && argF1(p, c) >= cutoff {
			correct++
		}
	}
	return FromCounts(gold, predicted, correct)
}

// wholeMatch counts a matched pair as correct when both argument F1 scores
// reach the cutoff.
func wholeMatch(al relalign.Alignment, cutoff float64) Metrics {
	var gold, predicted, correct int
	for _, p := range al {
		if p.Gold != nil {
			gold++
		}
		if p.Predicted != nil {
			predicted++
		}
		if p.Matched() && argF1(p, score.Arg1) >= cutoff && argF1(p, score.Arg2) >= cutoff {
			correct++
		}
	}
	return FromCounts(gold, predicted, correct)
}

// alignedSense fills a sense confusion matrix from a relation alignment.
// Gold relations whose sense is outside validSenses are not scored.
func alignedSense(al relalign.Alignment, validSenses []string) *ConfusionMatrix {
	var goldSenses []string
	for _, p := range al {
		if p.Gold != nil {
			goldSenses = append(goldSenses, p.Gold.PrimarySense())
		}
	}
	cm := senseMatrix(validSenses, goldSenses)

	for _, p := range al {
		switch {
		case p.Gold == nil:
			cm.Add(p.Predicted.PrimarySense(), NegativeClass)
		case p.Predicted == nil:
			if cm.Alphabet.Has(p.Gold.PrimarySense()) {
				cm.Add(NegativeClass, p.Gold.PrimarySense())
			}
		default:
			scoreSense(cm, p.Gold, p.Predicted)
		}
	}
	return cm
}

// scoreSense records one linked pair. A predicted sense matching any of the
// gold senses counts as correct.
func scoreSense(cm *ConfusionMatrix, gold, predicted *relation.Relation) {
	goldSense := gold.PrimarySense()
	if !cm.Alphabet.Has(goldSense) {
		return
	}
	predSense := predicted.PrimarySense()
	if gold.HasSense(predSense) {
		if !cm.Alphabet.Has(predSense) {
			predSense = goldSense
		}
		cm.Add(predSense, predSense)
		return
	}
	cm.Add(predSense, goldSense)
}
