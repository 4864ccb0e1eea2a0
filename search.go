package relalign

import (
	"context"

	"github.com/jamesainslie/go-relalign/score"
)

// absent marks the missing side of an unmatched pair.
const absent = -1

// indexPair is one gold/predicted pairing by position within a document.
type indexPair struct {
	gold int
	pred int
}

// trail is an immutable list of pairs shared between search branches.
type trail struct {
	pair indexPair
	next *trail
}

// searcher finds a maximum-total-score partial matching over a score matrix
// by depth-first backtracking. It is not safe for concurrent use; each
// document and criterion gets its own searcher.
type searcher struct {
	m       *score.Matrix
	cutoff  float64
	claimed []bool
	done    <-chan struct{}
	ctx     context.Context
	calls   int
}

func newSearcher(ctx context.Context, m *score.Matrix, cutoff float64) *searcher {
	return &searcher{
		m:       m,
		cutoff:  cutoff,
		claimed: make([]bool, m.NumPredicted()),
		done:    ctx.Done(),
		ctx:     ctx,
	}
}

// run searches from the first gold row and returns the best total score
// and its pairs. Unmatched predicted indices come first in ascending order,
// followed by the gold rows from last to first.
func (s *searcher) run() (float64, []indexPair, error) {
	total, t, err := s.search(0)
	if err != nil {
		return 0, nil, err
	}

	n := 0
	for node := t; node != nil; node = node.next {
		n++
	}
	pairs := make([]indexPair, n)
	for node := t; node != nil; node = node.next {
		n--
		pairs[n] = node.pair
	}
	return total, pairs, nil
}

func (s *searcher) search(gi int) (float64, *trail, error) {
	select {
	case <-s.done:
		return 0, nil, s.ctx.Err()
	default:
	}
	s.calls++

	if gi == s.m.NumGold() {
		var t *trail
		for pi, used := range s.claimed {
			if !used {
				t = &trail{pair: indexPair{gold: absent, pred: pi}, next: t}
			}
		}
		return 0, t, nil
	}

	var (
		best      float64
		bestTrail *trail
		maximal   bool
		tried     bool
	)
	row := s.m.Row(gi)
	for _, c := range row {
		// A perfect match, or a pair that only has eyes for each other,
		// ends the scan even when its predicted side is already claimed.
		maximal = c.Score == 1 || (len(row) == 1 && s.m.Suitors(c.Pred) == 1)

		if c.Score >= s.cutoff && !s.claimed[c.Pred] {
			tried = true
			s.claimed[c.Pred] = true
			sub, t, err := s.search(gi + 1)
			s.claimed[c.Pred] = false
			if err != nil {
				return 0, nil, err
			}

			// Ties go to the candidate tried last.
			if total := c.Score + sub; total >= best {
				best = total
				bestTrail = &trail{pair: indexPair{gold: gi, pred: c.Pred}, next: t}
			}
		}
		if maximal {
			break
		}
	}

	// A cut with nothing tried still needs the skip branch so the row and
	// the rows after it appear in the alignment.
	if !maximal || !tried {
		sub, t, err := s.search(gi + 1)
		if err != nil {
			return 0, nil, err
		}
		if sub >= best {
			best = sub
			bestTrail = &trail{pair: indexPair{gold: gi, pred: absent}, next: t}
		}
	}
	return best, bestTrail, nil
}
