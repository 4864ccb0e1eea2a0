package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-relalign/internal/eval"
	"github.com/jamesainslie/go-relalign/internal/report"
)

const goldJSON = `{"DocID": "wsj_0001", "Arg1": {"TokenList": [[0, 3, 0, 0, 0], [4, 8, 1, 0, 1]]}, "Arg2": {"TokenList": [[10, 14, 3, 0, 3]]}, "Connective": {"RawText": "because", "TokenList": [[9, 10, 2, 0, 2]]}, "Sense": ["Contingency.Cause.Reason"], "Type": "Explicit"}
{"DocID": "wsj_0001", "Arg1": {"TokenList": [[20, 23, 5, 1, 0], [24, 28, 6, 1, 1]]}, "Arg2": {"TokenList": [[30, 34, 8, 2, 0], [35, 38, 9, 2, 1]]}, "Connective": {"TokenList": []}, "Sense": ["Expansion.Conjunction"], "Type": "Implicit"}
`

const outputJSON = `{"DocID": "wsj_0001", "Arg1": {"TokenList": [0, 1]}, "Arg2": {"TokenList": [3]}, "Connective": {"TokenList": [2]}, "Sense": ["Contingency.Cause.Reason"], "Type": "Explicit"}
{"DocID": "wsj_0001", "Arg1": {"TokenList": [5, 6]}, "Arg2": {"TokenList": [8]}, "Connective": {"TokenList": []}, "Sense": ["Expansion.Conjunction"], "Type": "Implicit"}
`

const senseGoldJSON = `{"ID": 10, "DocID": "wsj_0001", "Arg1": {"TokenList": [[0, 3, 0, 0, 0], [4, 8, 1, 0, 1]]}, "Arg2": {"TokenList": [[10, 14, 3, 0, 3]]}, "Connective": {"RawText": "because", "TokenList": [[9, 10, 2, 0, 2]]}, "Sense": ["Contingency.Cause.Reason"], "Type": "Explicit"}
{"ID": 11, "DocID": "wsj_0001", "Arg1": {"TokenList": [[20, 23, 5, 1, 0], [24, 28, 6, 1, 1]]}, "Arg2": {"TokenList": [[30, 34, 8, 2, 0], [35, 38, 9, 2, 1]]}, "Connective": {"TokenList": []}, "Sense": ["Expansion.Conjunction"], "Type": "Implicit"}
`

// Out of ID order, with the types swapped.
const senseOutputJSON = `{"ID": 11, "DocID": "wsj_0001", "Arg1": {"TokenList": [5, 6]}, "Arg2": {"TokenList": [8, 9]}, "Connective": {"TokenList": []}, "Sense": ["Expansion.Conjunction"], "Type": "Explicit"}
{"ID": 10, "DocID": "wsj_0001", "Arg1": {"TokenList": [0, 1]}, "Arg2": {"TokenList": [3]}, "Connective": {"TokenList": [2]}, "Sense": ["Contingency.Cause.Reason"], "Type": "Implicit"}
`

func setup(t *testing.T, output string) (datasetDir, runDir, outDir string) {
	t.Helper()
	return setupWithGold(t, goldJSON, output)
}

func setupWithGold(t *testing.T, gold, output string) (datasetDir, runDir, outDir string) {
	t.Helper()
	root := t.TempDir()
	datasetDir = filepath.Join(root, "dataset")
	runDir = filepath.Join(root, "run")
	outDir = filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(datasetDir, 0o755))
	require.NoError(t, os.MkdirAll(runDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(datasetDir, eval.GoldFile), []byte(gold), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(runDir, eval.OutputFile), []byte(output), 0o600))
	return datasetDir, runDir, outDir
}

func measureMap(t *testing.T, dir string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, report.EvaluationFile))
	require.NoError(t, err)
	ms, err := report.UnmarshalPrototext(data)
	require.NoError(t, err)

	out := make(map[string]string, len(ms))
	for _, m := range ms {
		out[m.Key] = m.Value
	}
	return out
}

func TestRun(t *testing.T) {
	datasetDir, runDir, outDir := setup(t, outputJSON)

	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetArgs([]string{datasetDir, runDir, outDir})
	require.NoError(t, cmd.Execute())

	ms := measureMap(t, outDir)
	assert.Len(t, ms, 3*15+3*12)
	assert.Equal(t, "1", ms["All Explicit connective f1"])
	assert.Equal(t, "1", ms["Explicit only Arg1 extraction f1"])
	// Second relation: Arg2 misses one of two tokens.
	assert.Equal(t, "0.5", ms["All Arg2 extraction recall"])
	assert.Equal(t, "0.5", ms["All Arg 1 Arg2 extraction precision"])
	// Partial: Arg2 F1 2/3 is under the cutoff.
	assert.Equal(t, "0.5", ms["All (partial match) Arg 1 Arg2 extraction f1"])
	assert.Equal(t, "1", ms["Explicit only (partial match) Parser f1"])
	assert.Contains(t, stderr.String(), "wrote evaluation")
}

func TestRun_InvalidOutput(t *testing.T) {
	bad := `{"DocID": "wsj_0001", "Arg1": {"TokenList": [0]}, "Arg2": {"TokenList": [3]}, "Connective": {"TokenList": []}, "Sense": ["Made.Up"], "Type": "Implicit"}` + "\n"
	datasetDir, runDir, outDir := setup(t, bad)

	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetArgs([]string{datasetDir, runDir, outDir})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid system output")
	assert.NoFileExists(t, filepath.Join(outDir, report.EvaluationFile))
}

func TestRun_WrongArgs(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"only-one"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestRun_Supplementary(t *testing.T) {
	datasetDir, runDir, outDir := setupWithGold(t, senseGoldJSON, senseOutputJSON)

	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetArgs([]string{"--supplementary", datasetDir, runDir, outDir})
	require.NoError(t, cmd.Execute())

	ms := measureMap(t, outDir)
	assert.Len(t, ms, 3*15)
	assert.Equal(t, "1", ms["All Parser f1"])
	assert.Equal(t, "1", ms["Explicit only Explicit connective f1"])
	assert.Equal(t, "1", ms["Non-explicit only Arg 1 Arg2 extraction f1"])
	assert.NotContains(t, ms, "All (partial match) Parser f1")
}

func TestRun_SupplementaryMismatch(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wantMsg string
	}{
		{
			name:    "count",
			output:  strings.SplitAfter(senseOutputJSON, "\n")[0],
			wantMsg: "gold standard has 2 instances; predicted 1 instances",
		},
		{
			name:    "id",
			output:  strings.Replace(senseOutputJSON, `"ID": 10`, `"ID": 12`, 1),
			wantMsg: "ID mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			datasetDir, runDir, outDir := setupWithGold(t, senseGoldJSON, tt.output)

			cmd := newRootCmd(&bytes.Buffer{})
			cmd.SetArgs([]string{"--supplementary", datasetDir, runDir, outDir})
			err := cmd.Execute()

			require.Error(t, err)
			assert.ErrorIs(t, err, eval.ErrMismatch)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NoFileExists(t, filepath.Join(outDir, report.EvaluationFile))
		})
	}
}
