package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Settings, error) {
	t.Helper()
	v := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, AddFlags(v, fs))
	require.NoError(t, fs.Parse(args))
	return Load(v)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, 0.7, s.Cutoff)
	assert.Equal(t, 120*time.Second, s.Timeout)
	assert.Zero(t, s.Workers)
	assert.Empty(t, s.Language)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, "relalign.yaml", "cutoff: 0.5\nworkers: 3\nlanguage: zh\ntimeout: 30s\n")
	t.Setenv("RELALIGN_WORKERS", "6")

	s, err := load(t, "--config", path, "--language", "en")
	require.NoError(t, err)

	assert.Equal(t, 0.5, s.Cutoff)             // file over default
	assert.Equal(t, 30*time.Second, s.Timeout) // file over default
	assert.Equal(t, 6, s.Workers)              // env over file
	assert.Equal(t, "en", s.Language)          // flag over file
}

func TestLoad_EnvKeyWithDash(t *testing.T) {
	t.Setenv("RELALIGN_CONNECTIVE_HEADS", "/tmp/heads.yaml")
	t.Setenv("RELALIGN_LOG_FORMAT", "json")

	s, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/heads.yaml", s.ConnectiveHeads)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "cutoff", args: []string{"--cutoff", "1.5"}},
		{name: "timeout", args: []string{"--timeout=-1s"}},
		{name: "workers", args: []string{"--workers=-2"}},
		{name: "language", args: []string{"--language", "fr"}},
		{name: "log level", args: []string{"--log-level", "loud"}},
		{name: "log format", args: []string{"--log-format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.args...)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestSettings_Logger(t *testing.T) {
	var buf bytes.Buffer
	s := &Settings{LogLevel: "warn", LogFormat: "json"}

	logger := s.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestSettings_Eval(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	heads := writeFile(t, "heads.yaml", "heads:\n  two weeks after: after\n")

	s := &Settings{Cutoff: 0.6, Timeout: time.Second, Workers: 2, Language: "en", ConnectiveHeads: heads}
	cfg, err := s.Eval(logger)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Cutoff)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 1, cfg.Heads.Len())

	s.ConnectiveHeads = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = s.Eval(logger)
	assert.Error(t, err)
}
