package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-relalign/internal/eval"
	"github.com/jamesainslie/go-relalign/internal/report"
	"github.com/jamesainslie/go-relalign/relation"
	"github.com/jamesainslie/go-relalign/score"
)

func (a *app) newEvaluateCmd() *cobra.Command {
	var senses bool

	cmd := &cobra.Command{
		Use:   "evaluate GOLD PREDICTED",
		Short: "Exact and partial scores for all, explicit and non-explicit relations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0], args[1])
			if err != nil {
				return err
			}
			reports, err := eval.Evaluate(cmd.Context(), d, a.cfg)
			if err != nil {
				return err
			}
			if err := report.WriteSummary(a.out, reports); err != nil {
				return err
			}
			if !senses {
				return nil
			}
			for _, r := range reports {
				fmt.Fprintf(a.out, "\nSense classification, %s (partial match)\n", r.Subset)
				if err := report.WriteSenses(a.out, r.Partial.Sense); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&senses, "senses", false, "also print per-sense scores")
	return cmd
}

func (a *app) newPartialCmd() *cobra.Command {
	var matrix bool

	cmd := &cobra.Command{
		Use:   "partial GOLD PREDICTED",
		Short: "Scores with partial argument matching",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0], args[1])
			if err != nil {
				return err
			}
			res, err := eval.Partial(cmd.Context(), d.Gold, d.Predicted, a.cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Partial match cutoff %s\n", report.FormatScore(res.Cutoff))
			printScore(a, "Arg 1 extractor", res.Arg1)
			printScore(a, "Arg 2 extractor", res.Arg2)
			printScore(a, "Arg1 Arg2 tokens combined", res.Combined)
			printScore(a, "Arg1 Arg2 extractor", res.Relation)
			fmt.Fprintln(a.out, "Sense classification--------------")
			fmt.Fprintln(a.out, res.Sense)
			fmt.Fprintln(a.out, "Overall parser performance --------------")
			printScore(a, "Parser", res.Parser)
			if matrix {
				return report.WriteConfusion(a.out, res.Sense)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&matrix, "matrix", false, "print the sense confusion matrix")
	return cmd
}

func (a *app) newExactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exact GOLD PREDICTED",
		Short: "Scores with exact span matching, per relation subset",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := a.load(args[0], args[1])
			if err != nil {
				return err
			}
			cfg := a.cfg
			cfg.Language = d.Language(cfg.Language)

			for _, s := range eval.Subsets {
				sub := s.Apply(d)
				res := eval.Exact(sub.Gold, sub.Predicted, cfg)

				fmt.Fprintln(a.out, "\n================================================")
				fmt.Fprintf(a.out, "Evaluation for %s\n", strings.ToLower(s.Name))
				printScore(a, "Explicit connectives", res.Connective)
				printScore(a, "Arg 1 extractor", res.Arg1)
				printScore(a, "Arg 2 extractor", res.Arg2)
				printScore(a, "Arg1 Arg2 extractor combined", res.Combined)
				fmt.Fprintln(a.out, "Sense classification--------------")
				fmt.Fprintln(a.out, res.Sense)
				fmt.Fprintln(a.out, "Overall parser performance --------------")
				printScore(a, "Parser", res.Parser)
			}
			return nil
		},
	}
}

// alignedPair is one line of alignment output.
type alignedPair struct {
	DocID     string `json:"DocID"`
	Gold      *int   `json:"Gold"`
	Predicted *int   `json:"Predicted"`
}

func (a *app) newAlignCmd() *cobra.Command {
	var criterion string

	cmd := &cobra.Command{
		Use:   "align GOLD PREDICTED",
		Short: "Print the partial alignment as JSON lines of relation line numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCriterion(criterion)
			if err != nil {
				return err
			}
			d, err := a.load(args[0], args[1])
			if err != nil {
				return err
			}

			aligner, err := a.cfg.Aligner()
			if err != nil {
				return err
			}
			res, err := aligner.Align(cmd.Context(), d.Gold, d.Predicted)
			if err != nil {
				return err
			}

			goldLine := lineNumbers(d.Gold)
			predLine := lineNumbers(d.Predicted)
			enc := json.NewEncoder(a.out)
			for _, p := range res.For(c) {
				line := alignedPair{}
				if p.Gold != nil {
					n := goldLine[p.Gold]
					line.DocID, line.Gold = p.Gold.DocID, &n
				}
				if p.Predicted != nil {
					n := predLine[p.Predicted]
					line.DocID, line.Predicted = p.Predicted.DocID, &n
				}
				if err := enc.Encode(line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&criterion, "criterion", score.Whole.String(), "arg1, arg2 or relation")
	return cmd
}

func parseCriterion(name string) (score.Criterion, error) {
	for _, c := range score.Criteria {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown criterion %q", name)
}

// lineNumbers maps each relation to its zero-based line in the input file.
func lineNumbers(rs []relation.Relation) map[*relation.Relation]int {
	m := make(map[*relation.Relation]int, len(rs))
	for i := range rs {
		m[&rs[i]] = i
	}
	return m
}

func (a *app) newSweepCmd() *cobra.Command {
	var from, to, step float64

	cmd := &cobra.Command{
		Use:   "sweep GOLD PREDICTED",
		Short: "Whole-relation partial F1 over a range of cutoffs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.load(args[0], args[1])
			if err != nil {
				return err
			}
			cutoffs := eval.SweepCutoffs(from, to, step)
			if len(cutoffs) == 0 {
				return fmt.Errorf("empty cutoff range %v..%v step %v", from, to, step)
			}

			results, err := eval.Sweep(cmd.Context(), d.Gold, d.Predicted, a.cfg, cutoffs)
			if err != nil {
				return err
			}
			if err := report.WriteSweep(a.out, results); err != nil {
				return err
			}
			best := results[0]
			fmt.Fprintf(a.out, "Optimal: %s (F1 %s)\n", report.FormatScore(best.Cutoff), report.FormatScore(best.Relation.F1))
			return nil
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0.5, "lowest cutoff")
	cmd.Flags().Float64Var(&to, "to", 1.0, "highest cutoff")
	cmd.Flags().Float64Var(&step, "step", 0.05, "cutoff step")
	return cmd
}

func (a *app) newValidateCmd() *cobra.Command {
	var goldPath string

	cmd := &cobra.Command{
		Use:   "validate PREDICTED",
		Short: "Check system output before scoring",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			predicted, err := relation.LoadFile(args[0])
			if err != nil {
				return err
			}

			lang := a.settings.Language
			if lang == "" && goldPath != "" {
				gold, err := relation.LoadFile(goldPath)
				if err != nil {
					return err
				}
				lang = relation.IdentifyLanguage(gold)
			}
			if lang == "" {
				lang = relation.English
			}

			if err := relation.ValidateList(predicted, lang); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d relations valid (%s)\n", len(predicted), lang)
			return nil
		},
	}
	cmd.Flags().StringVar(&goldPath, "gold", "", "gold file used to pick the sense inventory")
	return cmd
}

func (a *app) newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report DIR",
		Short: "Summarise evaluation.prototext files from result zips as TSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rows, err := report.ScanZips(args[0])
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				a.logger.Warn("no evaluations found", "dir", args[0])
				return nil
			}
			return report.WriteTSV(a.out, rows)
		},
	}
}

func printScore(a *app, name string, m eval.Metrics) {
	fmt.Fprintf(a.out, "%-29s: Precision %1.4f Recall %1.4f F1 %1.4f\n", name, m.Precision, m.Recall, m.F1)
}
