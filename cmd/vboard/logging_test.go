package main

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    slog.Level
		wantErr bool
	}{
		{name: "default info", raw: "", want: slog.LevelInfo},
		{name: "debug", raw: "debug", want: slog.LevelDebug},
		{name: "info", raw: "info", want: slog.LevelInfo},
		{name: "warn", raw: "warn", want: slog.LevelWarn},
		{name: "warning alias", raw: "warning", want: slog.LevelWarn},
		{name: "error", raw: "error", want: slog.LevelError},
		{name: "numeric", raw: "-4", want: slog.LevelDebug},
		{name: "invalid", raw: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLogLevel(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse level: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPickLogLevel(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "error")
		choice := pickLogLevel("debug", "warn")
		if choice.raw != "debug" || choice.origin != "flag" {
			t.Fatalf("expected flag precedence, got %#v", choice)
		}
	})

	t.Run("env beats config", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "warn")
		choice := pickLogLevel("", "info")
		if choice.raw != "warn" || choice.origin != "env" {
			t.Fatalf("expected env fallback, got %#v", choice)
		}
	})

	t.Run("config when flag and env empty", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		choice := pickLogLevel("", "error")
		if choice.raw != "error" || choice.origin != "config" {
			t.Fatalf("expected config fallback, got %#v", choice)
		}
	})

	t.Run("default when nothing set", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		choice := pickLogLevel("", "")
		if choice.raw != "" || choice.origin != "default" {
			t.Fatalf("expected default, got %#v", choice)
		}
	})
}

func TestConfigureLoggerForCLI(t *testing.T) {
	t.Run("invalid flag is a hard error", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		if _, err := configureLoggerForCLI("verbose", ""); err == nil {
			t.Fatal("expected error for invalid flag level")
		}
	})

	t.Run("invalid config warns and falls back", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		warning, err := configureLoggerForCLI("", "verbose")
		if err != nil {
			t.Fatalf("configure: %v", err)
		}
		if !strings.Contains(warning, "log_level") || !strings.Contains(warning, "verbose") {
			t.Fatalf("expected warning naming the config value, got %q", warning)
		}
	})

	t.Run("invalid env warns with the env key", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "verbose")
		warning, err := configureLoggerForCLI("", "")
		if err != nil {
			t.Fatalf("configure: %v", err)
		}
		if !strings.Contains(warning, logLevelEnvKey) {
			t.Fatalf("expected warning naming %s, got %q", logLevelEnvKey, warning)
		}
	})

	t.Run("valid level produces no warning", func(t *testing.T) {
		t.Setenv(logLevelEnvKey, "")
		warning, err := configureLoggerForCLI("debug", "")
		if err != nil {
			t.Fatalf("configure: %v", err)
		}
		if warning != "" {
			t.Fatalf("expected no warning, got %q", warning)
		}
	})
}
