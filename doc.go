// Package relalign aligns predicted shallow discourse relations with gold
// relations under partial argument matching.
//
// # Quick Start
//
//	aligner, err := relalign.New(relalign.WithCutoff(0.7))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := aligner.Align(ctx, gold, predicted)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matched, missed, spurious := res.Relation.Counts()
//
// # Alignment
//
// For every document and for each of three criteria (Arg1 only, Arg2 only,
// whole relation) a sparse score matrix keeps the gold/predicted pairs whose
// overlap F1 reaches the cutoff. A depth-first backtracking search then picks
// a one-to-one partial matching with the largest total score. The search
// takes a perfect match, or a pair with no competing candidates, without
// exploring alternatives for that gold relation; this keeps scoring
// compatible with the CoNLL 2016 partial scorer but is not a global optimum
// in every case.
//
// # Deadline
//
// The search is exponential in the worst case. Align is bounded by
// WithTimeout (default 120s) and fails with ErrDeadlineExceeded, returning
// nothing, when the bound is hit.
//
// # Thread Safety
//
// Aligner is safe for concurrent use. Document searches run on a bounded
// worker group, configurable via WithWorkers.
package relalign
