package relalign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-relalign/relation"
	"github.com/jamesainslie/go-relalign/score"
)

// Pair is one entry of an alignment. A nil Gold marks a false positive and
// a nil Predicted marks a false negative; both are never nil together.
type Pair struct {
	Gold      *relation.Relation
	Predicted *relation.Relation
}

// Matched reports whether both sides are present.
func (p Pair) Matched() bool {
	return p.Gold != nil && p.Predicted != nil
}

// Alignment is a partial one-to-one correspondence between gold and
// predicted relations.
type Alignment []Pair

// Counts returns the number of matched pairs, gold-only pairs and
// predicted-only pairs.
func (a Alignment) Counts() (matched, goldOnly, predictedOnly int) {
	for _, p := range a {
		switch {
		case p.Matched():
			matched++
		case p.Gold != nil:
			goldOnly++
		default:
			predictedOnly++
		}
	}
	return matched, goldOnly, predictedOnly
}

// Result holds the three alignments of one Align call.
type Result struct {
	Arg1     Alignment
	Arg2     Alignment
	Relation Alignment

	Documents int
	Elapsed   time.Duration
}

// For returns the alignment of criterion c.
func (r *Result) For(c score.Criterion) Alignment {
	switch c {
	case score.Arg1:
		return r.Arg1
	case score.Arg2:
		return r.Arg2
	default:
		return r.Relation
	}
}

// Aligner aligns gold and predicted relations document by document.
// It is safe for concurrent use.
type Aligner struct {
	cutoff  float64
	timeout time.Duration
	workers int
	logger  *slog.Logger
}

// New creates an Aligner.
func New(opts ...Option) (*Aligner, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.cutoff < 0 || cfg.cutoff > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCutoff, cfg.cutoff)
	}

	return &Aligner{
		cutoff:  cfg.cutoff,
		timeout: cfg.timeout,
		workers: cfg.workers,
		logger:  cfg.logger,
	}, nil
}

// Cutoff returns the partial-match cutoff.
func (a *Aligner) Cutoff() float64 {
	return a.cutoff
}

// Align finds the Arg1, Arg2 and whole-relation alignments of every
// document. Relations are only compared within their own document; a
// document present on one side only yields all-unmatched pairs.
//
// The whole call is bounded by the configured timeout. When it expires the
// call fails with ErrDeadlineExceeded and returns no alignment.
func (a *Aligner) Align(ctx context.Context, gold, predicted []relation.Relation) (*Result, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	start := time.Now()

	goldByDoc := relation.GroupByDoc(gold)
	predByDoc := relation.GroupByDoc(predicted)
	docIDs := lo.Union(lo.Keys(goldByDoc), lo.Keys(predByDoc))
	slices.Sort(docIDs)

	perDoc := make([][3]Alignment, len(docIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for di, docID := range docIDs {
		docGold := score.Prepare(goldByDoc[docID])
		docPred := score.Prepare(predByDoc[docID])

		for _, c := range score.Criteria {
			g.Go(func() error {
				al, err := a.alignScored(gctx, docID, docGold, docPred, c)
				if err != nil {
					return err
				}
				perDoc[di][c] = al
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		elapsed := time.Since(start)
		if errors.Is(err, context.DeadlineExceeded) {
			a.logger.Warn("alignment deadline exceeded",
				"timeout", a.timeout,
				"elapsed", elapsed,
				"documents", len(docIDs))
			return nil, fmt.Errorf("%w after %s: %w", ErrDeadlineExceeded, elapsed.Round(time.Millisecond), err)
		}
		return nil, fmt.Errorf("align: %w", err)
	}

	res := &Result{
		Documents: len(docIDs),
		Elapsed:   time.Since(start),
	}
	for _, doc := range perDoc {
		res.Arg1 = append(res.Arg1, doc[score.Arg1]...)
		res.Arg2 = append(res.Arg2, doc[score.Arg2]...)
		res.Relation = append(res.Relation, doc[score.Whole]...)
	}

	a.logger.Debug("alignment complete",
		"documents", res.Documents,
		"gold", len(gold),
		"predicted", len(predicted),
		"elapsed", res.Elapsed)
	return res, nil
}

// AlignDocument aligns the relations of a single document under one
// criterion. It is bounded only by ctx.
func (a *Aligner) AlignDocument(ctx context.Context, gold, predicted []*relation.Relation, c score.Criterion) (Alignment, error) {
	docID := ""
	if len(gold) > 0 {
		docID = gold[0].DocID
	} else if len(predicted) > 0 {
		docID = predicted[0].DocID
	}
	return a.alignScored(ctx, docID, score.Prepare(gold), score.Prepare(predicted), c)
}

func (a *Aligner) alignScored(ctx context.Context, docID string, gold, predicted []score.Scored, c score.Criterion) (Alignment, error) {
	m := score.Build(gold, predicted, c.Func(), a.cutoff)
	s := newSearcher(ctx, m, a.cutoff)
	total, pairs, err := s.run()
	if err != nil {
		return nil, fmt.Errorf("document %s (%s): %w", docID, c, err)
	}

	a.logger.Debug("document aligned",
		"doc", docID,
		"criterion", c.String(),
		"gold", len(gold),
		"predicted", len(predicted),
		"edges", m.Edges(),
		"calls", s.calls,
		"score", total)

	al := make(Alignment, len(pairs))
	for i, p := range pairs {
		if p.gold != absent {
			al[i].Gold = gold[p.gold].Rel
		}
		if p.pred != absent {
			al[i].Predicted = predicted[p.pred].Rel
		}
	}
	return al, nil
}
