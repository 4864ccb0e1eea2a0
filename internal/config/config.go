// Package config binds command-line flags, RELALIGN_* environment variables
// and an optional YAML file into evaluation settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	relalign "github.com/jamesainslie/go-relalign"
	"github.com/jamesainslie/go-relalign/internal/eval"
	"github.com/jamesainslie/go-relalign/relation"
)

// EnvPrefix prefixes environment overrides, e.g. RELALIGN_CUTOFF.
const EnvPrefix = "RELALIGN"

// Setting keys, shared by flags, environment and config file.
const (
	KeyConfig          = "config"
	KeyCutoff          = "cutoff"
	KeyTimeout         = "timeout"
	KeyWorkers         = "workers"
	KeyLanguage        = "language"
	KeyConnectiveHeads = "connective-heads"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
)

// ErrInvalid is returned for settings that cannot be used.
var ErrInvalid = errors.New("invalid setting")

// Settings holds the resolved configuration.
type Settings struct {
	Cutoff          float64       `mapstructure:"cutoff"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Workers         int           `mapstructure:"workers"`
	Language        string        `mapstructure:"language"`
	ConnectiveHeads string        `mapstructure:"connective-heads"`
	LogLevel        string        `mapstructure:"log-level"`
	LogFormat       string        `mapstructure:"log-format"`
}

// New returns a viper instance reading RELALIGN_* environment variables.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags registers the shared flags on fs and binds them to v.
func AddFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String(KeyConfig, "", "YAML config file")
	fs.Float64(KeyCutoff, relalign.DefaultCutoff, "partial match cutoff on argument F1")
	fs.Duration(KeyTimeout, relalign.DefaultTimeout, "alignment deadline (0 disables)")
	fs.Int(KeyWorkers, 0, "concurrent document searches (0 uses GOMAXPROCS)")
	fs.String(KeyLanguage, "", "sense inventory: en or zh (guessed from gold when empty)")
	fs.String(KeyConnectiveHeads, "", "YAML file mapping connectives to their heads")
	fs.String(KeyLogLevel, "info", "log level: debug, info, warn, error")
	fs.String(KeyLogFormat, "text", "log format: text or json")
	return v.BindPFlags(fs)
}

// Load reads the config file named by the config key, if any, and resolves
// all settings.
func Load(v *viper.Viper) (*Settings, error) {
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.Cutoff < 0 || s.Cutoff > 1 {
		return fmt.Errorf("%w: cutoff %v outside [0, 1]", ErrInvalid, s.Cutoff)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalid, s.Timeout)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%w: negative workers %d", ErrInvalid, s.Workers)
	}
	switch s.Language {
	case "", relation.English, relation.Chinese:
	default:
		return fmt.Errorf("%w: unknown language %q", ErrInvalid, s.Language)
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, s.LogFormat)
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, level)
	}
	return l, nil
}

// Logger builds a slog logger writing to w.
func (s *Settings) Logger(w io.Writer) *slog.Logger {
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Eval returns the evaluation configuration, loading the connective head
// map if one is configured.
func (s *Settings) Eval(logger *slog.Logger) (eval.Config, error) {
	cfg := eval.DefaultConfig()
	cfg.Cutoff = s.Cutoff
	cfg.Timeout = s.Timeout
	cfg.Workers = s.Workers
	cfg.Language = s.Language
	cfg.Logger = logger

	if s.ConnectiveHeads != "" {
		heads, err := eval.LoadHeadMap(s.ConnectiveHeads)
		if err != nil {
			return eval.Config{}, err
		}
		cfg.Heads = heads
		logger.Debug("loaded connective heads", "path", s.ConnectiveHeads, "entries", heads.Len())
	}
	return cfg, nil
}
