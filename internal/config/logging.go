package config

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/versobench/internal/foundation/normalization"
)

// EnvLogLevel overrides both the configured level and the verbose flag.
const EnvLogLevel = "VERSOBENCH_LOG_LEVEL"

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// Slog converts the level for a slog handler.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveLogLevel picks the effective level: VERSOBENCH_LOG_LEVEL when set, then debug
// when verbose, then the configured level.
func ResolveLogLevel(configured string, verbose bool) slog.Level {
	if env := os.Getenv(EnvLogLevel); env != "" {
		return NormalizeLogLevel(env).Slog()
	}
	if verbose {
		return slog.LevelDebug
	}
	return NormalizeLogLevel(configured).Slog()
}
