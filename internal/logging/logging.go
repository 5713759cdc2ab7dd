// Package logging builds the zerolog loggers shared by the desktop shell
// and the command-line tool.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "GRAPHIDESK_LOG_LEVEL"

// New returns a JSON logger writing to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole returns a human-readable logger writing to stderr.
func NewConsole(level zerolog.Level) zerolog.Logger {
	return NewConsoleTo(os.Stderr, level)
}

// NewConsoleTo returns a human-readable logger writing to w.
func NewConsoleTo(w io.Writer, level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: w != os.Stderr}, level)
}

// Component tags every event of log with the given component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ParseLevel maps a level name to a zerolog level. Besides the names
// zerolog accepts it takes "warning" and "off". Unknown or empty names
// yield fallback.
func ParseLevel(name string, fallback zerolog.Level) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return fallback
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return fallback
	}
	return level
}

// LevelFromEnv reads the level from LevelEnv, defaulting to info.
func LevelFromEnv() zerolog.Level {
	return LevelFromEnvOr(zerolog.InfoLevel)
}

// LevelFromEnvOr reads the level from LevelEnv, defaulting to fallback.
func LevelFromEnvOr(fallback zerolog.Level) zerolog.Level {
	return ParseLevel(os.Getenv(LevelEnv), fallback)
}
