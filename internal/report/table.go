package report

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jamesainslie/go-relalign/internal/eval"
)

func scoreRow(subset, match, measure string, m eval.Metrics) []any {
	return []any{subset, match, measure,
		FormatScore(m.Precision), FormatScore(m.Recall), FormatScore(m.F1)}
}

// WriteSummary renders exact and partial scores for every subset.
func WriteSummary(w io.Writer, reports []eval.Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("Subset", "Match", "Measure", "Precision", "Recall", "F1")

	for _, r := range reports {
		if ex := r.Exact; ex != nil {
			table.Append(scoreRow(r.Subset, "exact", "Explicit connective", ex.Connective)...)
			table.Append(scoreRow(r.Subset, "exact", "Arg1", ex.Arg1)...)
			table.Append(scoreRow(r.Subset, "exact", "Arg2", ex.Arg2)...)
			table.Append(scoreRow(r.Subset, "exact", "Arg1 Arg2", ex.Combined)...)
			table.Append(scoreRow(r.Subset, "exact", "Parser", ex.Parser)...)
		}
		if pa := r.Partial; pa != nil {
			table.Append(scoreRow(r.Subset, "partial", "Arg1", pa.Arg1)...)
			table.Append(scoreRow(r.Subset, "partial", "Arg2", pa.Arg2)...)
			table.Append(scoreRow(r.Subset, "partial", "Arg1 + Arg2 tokens", pa.Combined)...)
			table.Append(scoreRow(r.Subset, "partial", "Arg1 Arg2", pa.Relation)...)
			table.Append(scoreRow(r.Subset, "partial", "Parser", pa.Parser)...)
		}
	}
	return table.Render()
}

// WriteSenses renders per-sense scores of a confusion matrix, ending with
// the micro average.
func WriteSenses(w io.Writer, cm *eval.ConfusionMatrix) error {
	table := tablewriter.NewWriter(w)
	table.Header("Sense", "Precision", "Recall", "F1")

	for _, label := range cm.Alphabet.Labels() {
		if label == eval.NegativeClass {
			continue
		}
		m := cm.PRF(label)
		table.Append(label, FormatScore(m.Precision), FormatScore(m.Recall), FormatScore(m.F1))
	}
	m := cm.MicroAverage()
	table.Append("*Micro-Average", FormatScore(m.Precision), FormatScore(m.Recall), FormatScore(m.F1))
	return table.Render()
}

// WriteConfusion renders the raw matrix; rows are predicted, columns gold.
func WriteConfusion(w io.Writer, cm *eval.ConfusionMatrix) error {
	labels := cm.Alphabet.Labels()
	header := make([]any, 0, len(labels)+1)
	header = append(header, "predicted \\ gold")
	for _, l := range labels {
		header = append(header, l)
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)
	for i, row := range cm.Counts() {
		cells := make([]any, 0, len(row)+1)
		cells = append(cells, labels[i])
		for _, n := range row {
			cells = append(cells, strconv.Itoa(n))
		}
		table.Append(cells...)
	}
	return table.Render()
}

// WriteSweep renders cutoff sweep results in the order given.
func WriteSweep(w io.Writer, results []eval.SweepResult) error {
	table := tablewriter.NewWriter(w)
	table.Header("Cutoff", "Precision", "Recall", "F1", "Parser F1")
	for _, r := range results {
		table.Append(
			FormatScore(r.Cutoff),
			FormatScore(r.Relation.Precision),
			FormatScore(r.Relation.Recall),
			FormatScore(r.Relation.F1),
			FormatScore(r.Parser.F1),
		)
	}
	return table.Render()
}
