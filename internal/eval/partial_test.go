package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	relalign "github.com/jamesainslie/go-relalign"
	"github.com/jamesainslie/go-relalign/relation"
)

func partialFixture() (gold, pred []relation.Relation) {
	gold = []relation.Relation{
		mkRel("d1", relation.TypeExplicit, contrast, []int{0, 1, 2}, []int{3, 4, 5}),
		mkRel("d1", relation.TypeImplicit, conjunction, []int{10, 11, 12, 13}, []int{20, 21}),
	}
	pred = []relation.Relation{
		// Arg2 F1 0.8.
		mkRel("d1", relation.TypeExplicit, contrast, []int{0, 1, 2}, []int{3, 4}),
		// Arg1 F1 2/3, relation score 5/6.
		mkRel("d1", relation.TypeImplicit, contrast, []int{12, 13}, []int{20, 21}),
		mkRel("d2", relation.TypeImplicit, synchrony, []int{0}, []int{1}),
	}
	return gold, pred
}

func TestPartial(t *testing.T) {
	gold, pred := partialFixture()

	res, err := Partial(context.Background(), gold, pred, testConfig())
	require.NoError(t, err)

	assert.Equal(t, relalign.DefaultCutoff, res.Cutoff)

	assert.Equal(t, 1, res.Arg1.TruePositives)
	assert.InDelta(t, 1.0/3, res.Arg1.Precision, 1e-9)
	assert.InDelta(t, 0.5, res.Arg1.Recall, 1e-9)

	assert.Equal(t, 2, res.Arg2.TruePositives)
	assert.InDelta(t, 2.0/3, res.Arg2.Precision, 1e-9)
	assert.InDelta(t, 1.0, res.Arg2.Recall, 1e-9)

	assert.InDelta(t, 0.5, res.Combined.Precision, 1e-9)
	assert.InDelta(t, 0.75, res.Combined.Recall, 1e-9)

	// Only the first pair has both arguments above the cutoff; the second
	// matched pair still counts toward both the gold and predicted totals.
	assert.Equal(t, 1, res.Relation.TruePositives)
	assert.InDelta(t, 1.0/3, res.Relation.Precision, 1e-9)
	assert.InDelta(t, 0.5, res.Relation.Recall, 1e-9)

	assert.Equal(t, 1, res.Sense.Count(contrast, contrast))
	assert.Equal(t, 1, res.Sense.Count(contrast, conjunction))
	assert.Equal(t, 1, res.Sense.Count(NegativeClass, NegativeClass))
	assert.InDelta(t, 0.5, res.Parser.Precision, 1e-9)
	assert.InDelta(t, 0.5, res.Parser.Recall, 1e-9)
}

func TestPartial_LowerCutoffAcceptsMore(t *testing.T) {
	gold, pred := partialFixture()
	cfg := testConfig()
	cfg.Cutoff = 0.6

	res, err := Partial(context.Background(), gold, pred, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Arg1.TruePositives)
	assert.Equal(t, 2, res.Relation.TruePositives)
}

func TestPartial_InvalidCutoff(t *testing.T) {
	cfg := testConfig()
	cfg.Cutoff = 2

	_, err := Partial(context.Background(), nil, nil, cfg)
	assert.ErrorIs(t, err, relalign.ErrInvalidCutoff)
}

func TestPartial_Cancelled(t *testing.T) {
	gold, pred := partialFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Partial(ctx, gold, pred, testConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}

func TestPartial_UnknownGoldSenseSkipped(t *testing.T) {
	g := mkRel("d", relation.TypeImplicit, "Not.A.Sense", []int{1, 2}, []int{3, 4})
	p := mkRel("d", relation.TypeImplicit, conjunction, []int{1, 2}, []int{3, 4})
	cfg := testConfig()
	cfg.Language = relation.English

	res, err := Partial(context.Background(), []relation.Relation{g}, []relation.Relation{p}, cfg)
	require.NoError(t, err)
	assert.Zero(t, res.Sense.Total())
	assert.Equal(t, 1, res.Relation.TruePositives)
}
