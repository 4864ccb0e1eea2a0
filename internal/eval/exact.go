package eval

import (
	"slices"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-relalign/relation"
)

// ExactResult holds scores under exact argument matching.
type ExactResult struct {
	Connective Metrics // explicit relations only
	Arg1       Metrics
	Arg2       Metrics
	Combined   Metrics // Arg1 and Arg2 both exact
	Sense      *ConfusionMatrix
	Parser     Metrics
}

// matchFunc reports whether a predicted relation matches a gold one.
type matchFunc func(gold, predicted *relation.Relation) bool

// Exact scores predicted relations against gold with exact span matching.
// A predicted connective also matches when it is a subset of the gold
// connective covering its head.
func Exact(gold, predicted []relation.Relation, cfg Config) *ExactResult {
	g := pointers(gold)
	p := pointers(predicted)
	heads := cfg.heads()

	connective := func(gr, pr *relation.Relation) bool {
		return connectiveMatch(heads, gr, pr)
	}

	res := &ExactResult{
		Connective: binaryMetric(
			lo.Filter(g, func(r *relation.Relation, _ int) bool { return r.IsExplicit() }),
			lo.Filter(p, func(r *relation.Relation, _ int) bool { return r.IsExplicit() }),
			connective),
		Arg1:     binaryMetric(g, p, arg1Match),
		Arg2:     binaryMetric(g, p, arg2Match),
		Combined: binaryMetric(g, p, argsMatch),
		Sense:    linkedSense(g, p, relation.SensesFor(cfg.language(gold))),
	}
	res.Parser = res.Sense.MicroAverage()
	return res
}

func pointers(rs []relation.Relation) []*relation.Relation {
	out := make([]*relation.Relation, len(rs))
	for i := range rs {
		out[i] = &rs[i]
	}
	return out
}

func spanExact(gold, predicted relation.Span) bool {
	return slices.Equal(gold.Positions(), predicted.Positions())
}

func arg1Match(g, p *relation.Relation) bool {
	return g.DocID == p.DocID && spanExact(g.Arg1, p.Arg1)
}

func arg2Match(g, p *relation.Relation) bool {
	return g.DocID == p.DocID && spanExact(g.Arg2, p.Arg2)
}

func argsMatch(g, p *relation.Relation) bool {
	return arg1Match(g, p) && spanExact(g.Arg2, p.Arg2)
}

// connectiveMatch accepts an exact connective, or a subset of the gold
// connective that still covers every head word.
func connectiveMatch(heads *HeadMap, g, p *relation.Relation) bool {
	if g.DocID != p.DocID {
		return false
	}
	goldPos := g.Connective.Positions()
	predPos := p.Connective.Positions()
	if slices.Equal(goldPos, predPos) {
		return true
	}
	if len(predPos) == 0 || !lo.Every(goldPos, predPos) {
		return false
	}

	_, idx := heads.Head(g.Connective.RawText)
	if len(idx) == 0 {
		return false
	}
	for _, i := range idx {
		if i >= len(goldPos) || !slices.Contains(predPos, goldPos[i]) {
			return false
		}
	}
	return true
}

// link pairs each gold relation with the first unclaimed matching
// prediction. The returned slices map indices to the counterpart, -1 when
// unlinked.
func link(gold, predicted []*relation.Relation, match matchFunc) (goldTo, predTo []int) {
	goldTo = make([]int, len(gold))
	predTo = make([]int, len(predicted))
	for i := range predTo {
		predTo[i] = -1
	}
	for gi, g := range gold {
		goldTo[gi] = -1
		for pi, p := range predicted {
			if predTo[pi] < 0 && match(g, p) {
				goldTo[gi], predTo[pi] = pi, gi
				break
			}
		}
	}
	return goldTo, predTo
}

func binaryMetric(gold, predicted []*relation.Relation, match matchFunc) Metrics {
	goldTo, _ := link(gold, predicted, match)
	correct := lo.CountBy(goldTo, func(pi int) bool { return pi >= 0 })
	return FromCounts(len(gold), len(predicted), correct)
}

// linkedSense fills a sense confusion matrix over relations whose arguments
// match exactly.
func linkedSense(gold, predicted []*relation.Relation, validSenses []string) *ConfusionMatrix {
	cm := senseMatrix(validSenses, lo.Map(gold, func(r *relation.Relation, _ int) string {
		return r.PrimarySense()
	}))

	goldTo, predTo := link(gold, predicted, argsMatch)
	for gi, g := range gold {
		if !cm.Alphabet.Has(g.PrimarySense()) {
			continue
		}
		if pi := goldTo[gi]; pi >= 0 {
			scoreSense(cm, g, predicted[pi])
			continue
		}
		cm.Add(NegativeClass, g.PrimarySense())
	}
	for pi, p := range predicted {
		if predTo[pi] < 0 {
			cm.Add(p.PrimarySense(), NegativeClass)
		}
	}
	return cm
}
