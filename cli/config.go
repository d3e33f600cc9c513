package cli

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
)

// Config holds environment defaults. Command flags override them.
type Config struct {
	// Indent is the indentation used by fmt and set when saving.
	Indent string
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level
	// Color forces coloured diff output on or off. Unset means colour
	// only when stdout is a terminal.
	Color *bool
	// TrimWhitespace drops whitespace-only text when get, set and eval
	// parse their input.
	TrimWhitespace bool
	// Timeout bounds each HTTP fetch.
	Timeout time.Duration
}

// LoadConfig reads XMLNODE_INDENT, XMLNODE_LOG_LEVEL, XMLNODE_COLOR,
// XMLNODE_TRIM and XMLNODE_TIMEOUT.
func LoadConfig() Config {
	cfg := Config{
		Indent:         envOr("XMLNODE_INDENT", "  "),
		LogLevel:       slog.LevelWarn,
		TrimWhitespace: envBool("XMLNODE_TRIM", false),
		Timeout:        envDuration("XMLNODE_TIMEOUT", 30*time.Second),
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if v := os.Getenv("XMLNODE_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = level
		}
	}
	if v := os.Getenv("XMLNODE_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Color = &b
		}
	}
	return cfg
}

// colorFor resolves whether output written to w is coloured.
func (c Config) colorFor(w io.Writer) bool {
	if c.Color != nil {
		return *c.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
