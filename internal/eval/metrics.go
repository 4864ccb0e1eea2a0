package eval

import (
	"log/slog"
	"time"

	relalign "github.com/jamesainslie/go-relalign"
	"github.com/jamesainslie/go-relalign/relation"
)

// Config holds evaluation parameters.
type Config struct {
	Cutoff   float64       // partial-match cutoff
	Timeout  time.Duration // bound on one alignment call
	Workers  int
	Language string // sense inventory; guessed from gold when empty
	Heads    *HeadMap
	Logger   *slog.Logger
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Cutoff:  relalign.DefaultCutoff,
		Timeout: relalign.DefaultTimeout,
		Heads:   NewHeadMap(nil),
		Logger:  slog.Default(),
	}
}

// Aligner builds an aligner from the configuration.
func (c Config) Aligner() (*relalign.Aligner, error) {
	return relalign.New(
		relalign.WithCutoff(c.Cutoff),
		relalign.WithTimeout(c.Timeout),
		relalign.WithWorkers(c.Workers),
		relalign.WithLogger(c.Logger),
	)
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c Config) language(gold []relation.Relation) string {
	if c.Language != "" {
		return c.Language
	}
	return relation.IdentifyLanguage(gold)
}

func (c Config) heads() *HeadMap {
	if c.Heads == nil {
		return NewHeadMap(nil)
	}
	return c.Heads
}

// Metrics holds evaluation results for one measure.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
}

// FromCounts computes metrics from gold, predicted and correct totals.
// Zero denominators yield zero rather than failing.
func FromCounts(gold, predicted, correct int) Metrics {
	m := Metrics{
		TruePositives:  correct,
		FalsePositives: predicted - correct,
		FalseNegatives: gold - correct,
	}
	if predicted > 0 {
		m.Precision = float64(correct) / float64(predicted)
	}
	if gold > 0 {
		m.Recall = float64(correct) / float64(gold)
	}
	m.F1 = harmonic(m.Precision, m.Recall)
	return m
}

// Gold returns the number of gold items counted.
func (m Metrics) Gold() int {
	return m.TruePositives + m.FalseNegatives
}

// Predicted returns the number of predicted items counted.
func (m Metrics) Predicted() int {
	return m.TruePositives + m.FalsePositives
}

// Add sums the counts of two measures and recomputes the scores.
func (m Metrics) Add(o Metrics) Metrics {
	return FromCounts(m.Gold()+o.Gold(), m.Predicted()+o.Predicted(), m.TruePositives+o.TruePositives)
}

func harmonic(p, r float64) float64 {
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}
