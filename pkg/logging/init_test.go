package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/pterm/pterm"
)

func TestInitialize(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	tests := []struct {
		name      string
		logType   string
		level     string
		wantError bool
	}{
		{"json/info", JSON, "info", false},
		{"text/debug", Text, "debug", false},
		{"tint/warn", Tint, "warn", false},
		{"pterm/info", PTerm, "info", false},
		{"json/error", JSON, "error", false},
		{"invalid level", JSON, "bogus", true},
		{"unknown type", "unknown", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Initialize(tt.logType, tt.level, &bytes.Buffer{})
			if (err != nil) != tt.wantError {
				t.Errorf("Initialize(%q, %q) error = %v, wantError = %v", tt.logType, tt.level, err, tt.wantError)
			}
		})
	}
}

func TestInitialize_WritesToGivenWriter(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	if err := Initialize(JSON, "warn", &buf); err != nil {
		t.Fatal(err)
	}
	slog.Info("hidden")
	slog.Warn("shown", "step", "composer-install")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"step":"composer-install"`) {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestPtermLevel(t *testing.T) {
	tests := map[slog.Level]pterm.LogLevel{
		slog.LevelDebug: pterm.LogLevelDebug,
		slog.LevelInfo:  pterm.LogLevelInfo,
		slog.LevelWarn:  pterm.LogLevelWarn,
		slog.LevelError: pterm.LogLevelError,
	}
	for in, want := range tests {
		if got := ptermLevel(in); got != want {
			t.Errorf("ptermLevel(%v) = %v, want %v", in, got, want)
		}
	}
}
