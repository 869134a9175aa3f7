package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"vboard/internal/config"
)

const logLevelEnvKey = "VBOARD_LOG_LEVEL"

// logLevelChoice is the raw level string that won the flag > env > config
// precedence, paired with where it came from so a bad value can be reported
// against its source.
type logLevelChoice struct {
	raw    string
	origin string
}

func pickLogLevel(flagLevel, configLevel string) logLevelChoice {
	candidates := []logLevelChoice{
		{raw: flagLevel, origin: "flag"},
		{raw: os.Getenv(logLevelEnvKey), origin: "env"},
		{raw: configLevel, origin: "config"},
	}
	for _, c := range candidates {
		if strings.TrimSpace(c.raw) != "" {
			return c
		}
	}
	return logLevelChoice{origin: "default"}
}

// configureLoggerForCLI installs the default slog logger. An unparseable
// flag value is a hard error; an unparseable env or config value falls back
// to the default level and returns a warning for the caller to print.
func configureLoggerForCLI(flagLevel, configLevel string) (string, error) {
	choice := pickLogLevel(flagLevel, configLevel)
	level, err := parseLogLevel(choice.raw)
	if err != nil && choice.origin == "flag" {
		return "", fmt.Errorf("invalid --log-level %q", flagLevel)
	}

	// parseLogLevel falls back to the default level on error.
	slog.SetDefault(newLogger(level))

	if err != nil {
		source := "log_level in config"
		if choice.origin == "env" {
			source = logLevelEnvKey
		}
		return fmt.Sprintf("warning: invalid %s value %q; defaulting to %s",
			source, choice.raw, config.DefaultLogLevel), nil
	}
	return "", nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return slog.LevelInfo, nil
	}
	if strings.EqualFold(value, "warning") {
		value = "warn"
	}

	if numeric, err := strconv.Atoi(value); err == nil {
		return slog.Level(numeric), nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", raw)
	}
	return level, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
