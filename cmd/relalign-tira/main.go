// Command relalign-tira is the evaluator run on the TIRA platform:
//
//	relalign-tira INPUT_DATASET INPUT_RUN OUTPUT_DIR
//
// It reads INPUT_DATASET/relations.json and INPUT_RUN/output.json, rejects
// invalid system output, and writes OUTPUT_DIR/evaluation.prototext.
//
// With --supplementary it scores a sense classification run: predictions
// must carry the gold IDs, take their types from the gold standard, and are
// scored with exact matching only.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jamesainslie/go-relalign/internal/config"
	"github.com/jamesainslie/go-relalign/internal/eval"
	"github.com/jamesainslie/go-relalign/internal/report"
)

func main() {
	if err := newRootCmd(os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	v := config.New()
	var supplementary bool

	cmd := &cobra.Command{
		Use:           "relalign-tira INPUT_DATASET INPUT_RUN OUTPUT_DIR",
		Short:         "Evaluate a TIRA run and write evaluation.prototext",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, stderr, supplementary, args[0], args[1], args[2])
		},
	}
	cmd.Flags().BoolVar(&supplementary, "supplementary", false,
		"score a sense classification run against gold IDs and types")
	if err := config.AddFlags(v, cmd.Flags()); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, v *viper.Viper, stderr io.Writer, supplementary bool, datasetDir, runDir, outDir string) error {
	s, err := config.Load(v)
	if err != nil {
		return err
	}
	logger := s.Logger(stderr).With("run", uuid.NewString())
	cfg, err := s.Eval(logger)
	if err != nil {
		return err
	}

	d, err := eval.LoadTIRA(datasetDir, runDir)
	if err != nil {
		return err
	}

	cfg.Language = d.Language(cfg.Language)
	if err := d.Validate(cfg.Language); err != nil {
		logger.Error("system output rejected", "language", cfg.Language, "err", err)
		return fmt.Errorf("invalid system output: %w", err)
	}

	var reports []eval.Report
	if supplementary {
		if err := d.UseGoldTypes(); err != nil {
			return err
		}
		reports = eval.EvaluateExact(d, cfg)
	} else {
		reports, err = eval.Evaluate(ctx, d, cfg)
		if err != nil {
			return err
		}
	}
	for _, r := range reports {
		attrs := []any{
			slog.String("subset", r.Subset),
			slog.Float64("parser_f1", r.Exact.Parser.F1),
		}
		if r.Partial != nil {
			attrs = append(attrs, slog.Float64("partial_parser_f1", r.Partial.Parser.F1))
		}
		logger.Info("evaluated", attrs...)
	}

	if err := report.WriteEvaluation(outDir, report.Measures(reports)); err != nil {
		return err
	}
	logger.Info("wrote evaluation", "dir", outDir)
	return nil
}
