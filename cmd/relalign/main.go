package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	relalign "github.com/jamesainslie/go-relalign"
	"github.com/jamesainslie/go-relalign/internal/config"
	"github.com/jamesainslie/go-relalign/internal/eval"
)

// Set by -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries settings resolved before any subcommand runs.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	logger   *slog.Logger
	cfg      eval.Config
	out      io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, relalign.ErrDeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: config.New(), out: stdout}

	root := &cobra.Command{
		Use:   "relalign",
		Short: "Score shallow discourse parser output against gold relations",
		Long: `relalign scores predicted discourse relations against a gold standard,
with exact span matching and with partial argument matching.

Gold and predicted files hold one JSON relation per line.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(stderr)
		},
	}
	if err := config.AddFlags(a.v, root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.newEvaluateCmd(),
		a.newPartialCmd(),
		a.newExactCmd(),
		a.newAlignCmd(),
		a.newSweepCmd(),
		a.newValidateCmd(),
		a.newReportCmd(),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	s, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.settings = s
	a.logger = s.Logger(stderr).With("run", uuid.NewString())

	a.cfg, err = s.Eval(a.logger)
	if err != nil {
		return err
	}
	a.logger.Debug("configured",
		"cutoff", s.Cutoff,
		"timeout", s.Timeout,
		"workers", s.Workers,
		"language", s.Language)
	return nil
}

func (a *app) load(goldPath, predictedPath string) (*eval.Dataset, error) {
	d, err := eval.LoadDataset(goldPath, predictedPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("loaded relations", "gold", len(d.Gold), "predicted", len(d.Predicted))
	return d, nil
}
