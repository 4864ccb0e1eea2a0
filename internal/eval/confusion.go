package eval

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// NegativeClass labels relations with no counterpart on the other side.
const NegativeClass = "__NEGATIVE_CLASS__"

// Alphabet is a two-way map between labels and matrix indices.
type Alphabet struct {
	labels []string
	index  map[string]int
}

// NewAlphabet returns an alphabet holding labels in order, without duplicates.
func NewAlphabet(labels ...string) *Alphabet {
	a := &Alphabet{index: make(map[string]int)}
	for _, l := range labels {
		a.Add(l)
	}
	return a
}

// Add inserts label if it is new and returns its index.
func (a *Alphabet) Add(label string) int {
	if i, ok := a.index[label]; ok {
		return i
	}
	a.index[label] = len(a.labels)
	a.labels = append(a.labels, label)
	return len(a.labels) - 1
}

// Index returns the index of label and whether it is known.
func (a *Alphabet) Index(label string) (int, bool) {
	i, ok := a.index[label]
	return i, ok
}

// Has reports whether label is known.
func (a *Alphabet) Has(label string) bool {
	_, ok := a.index[label]
	return ok
}

// Label returns the label at index i.
func (a *Alphabet) Label(i int) string { return a.labels[i] }

// Labels returns the labels in index order.
func (a *Alphabet) Labels() []string { return slices.Clone(a.labels) }

// Len returns the number of labels.
func (a *Alphabet) Len() int { return len(a.labels) }

// ConfusionMatrix counts predicted labels (rows) against gold labels
// (columns) over a fixed alphabet that always holds NegativeClass.
type ConfusionMatrix struct {
	Alphabet *Alphabet
	counts   [][]int
}

// NewConfusionMatrix returns an empty matrix over alphabet. NegativeClass is
// added to the alphabet if missing; the alphabet must not grow afterwards.
func NewConfusionMatrix(alphabet *Alphabet) *ConfusionMatrix {
	alphabet.Add(NegativeClass)
	n := alphabet.Len()
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}
	return &ConfusionMatrix{Alphabet: alphabet, counts: counts}
}

// senseMatrix builds a confusion matrix over the gold senses that belong to
// the valid inventory.
func senseMatrix(valid, goldSenses []string) *ConfusionMatrix {
	kept := lo.Filter(goldSenses, func(s string, _ int) bool {
		return slices.Contains(valid, s)
	})
	return NewConfusionMatrix(NewAlphabet(kept...))
}

func (cm *ConfusionMatrix) indexOf(label string) int {
	if i, ok := cm.Alphabet.Index(label); ok {
		return i
	}
	i, _ := cm.Alphabet.Index(NegativeClass)
	return i
}

// Add records one observation. Labels outside the alphabet count as
// NegativeClass.
func (cm *ConfusionMatrix) Add(predicted, gold string) {
	cm.counts[cm.indexOf(predicted)][cm.indexOf(gold)]++
}

// Count returns the number of observations for a predicted/gold pair.
func (cm *ConfusionMatrix) Count(predicted, gold string) int {
	return cm.counts[cm.indexOf(predicted)][cm.indexOf(gold)]
}

// Counts returns a copy of the matrix, rows predicted and columns gold,
// indexed by the alphabet.
func (cm *ConfusionMatrix) Counts() [][]int {
	out := make([][]int, len(cm.counts))
	for i, row := range cm.counts {
		out[i] = slices.Clone(row)
	}
	return out
}

// Total returns the number of observations recorded.
func (cm *ConfusionMatrix) Total() int {
	var n int
	for _, row := range cm.counts {
		n += lo.Sum(row)
	}
	return n
}

func (cm *ConfusionMatrix) rowSum(i int) int {
	return lo.Sum(cm.counts[i])
}

func (cm *ConfusionMatrix) colSum(j int) int {
	var n int
	for i := range cm.counts {
		n += cm.counts[i][j]
	}
	return n
}

// PRF returns precision, recall and F1 for one label. A label never
// predicted has precision 1; a label never in gold has recall 1.
func (cm *ConfusionMatrix) PRF(label string) Metrics {
	i := cm.indexOf(label)
	return classMetrics(cm.rowSum(i), cm.colSum(i), cm.counts[i][i])
}

// MicroAverage pools all labels except NegativeClass.
func (cm *ConfusionMatrix) MicroAverage() Metrics {
	neg := cm.indexOf(NegativeClass)
	var correct, predicted, gold int
	for i := range cm.counts {
		if i == neg {
			continue
		}
		correct += cm.counts[i][i]
		predicted += cm.rowSum(i)
		gold += cm.colSum(i)
	}
	return classMetrics(predicted, gold, correct)
}

// classMetrics is FromCounts with empty denominators scored as perfect.
func classMetrics(predicted, gold, correct int) Metrics {
	m := FromCounts(gold, predicted, correct)
	if predicted == 0 {
		m.Precision = 1
	}
	if gold == 0 {
		m.Recall = 1
	}
	m.F1 = harmonic(m.Precision, m.Recall)
	return m
}

// Summary returns one line per label plus a micro-average line, sorted.
func (cm *ConfusionMatrix) Summary() []string {
	labels := lo.Without(cm.Alphabet.Labels(), NegativeClass)
	const micro = "*Micro-Average"
	width := len(micro)
	for _, l := range labels {
		width = max(width, len(l))
	}

	format := func(label string, m Metrics) string {
		return fmt.Sprintf("%-*s precision %1.4f\trecall %1.4f\tF1 %1.4f",
			width, label, m.Precision, m.Recall, m.F1)
	}

	lines := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		lines = append(lines, format(l, cm.PRF(l)))
	}
	lines = append(lines, format(micro, cm.MicroAverage()))
	slices.Sort(lines)
	return lines
}

// String renders the summary lines.
func (cm *ConfusionMatrix) String() string {
	return strings.Join(cm.Summary(), "\n")
}
