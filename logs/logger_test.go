package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func skipIfService(t *testing.T) {
	t.Helper()
	if p, err := getCgroupPath(); err == nil && isService(p) {
		t.Skip("running as a systemd service, terminal handler is disabled")
	}
}

func TestLogger(t *testing.T) {
	skipIfService(t)

	buf := &bytes.Buffer{}
	logger, closeLog, err := New(Options{Level: slog.LevelInfo, Writer: buf})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closeLog() }()

	logger.Debug("hidden")
	logger.Info("test", "hello", "world!")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug record leaked: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hello=world!") {
		t.Errorf("missing info record: %q", buf.String())
	}

	Level.Set(slog.LevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("level change not applied: %q", buf.String())
	}
}

func TestLoggerFile(t *testing.T) {
	skipIfService(t)

	path := filepath.Join(t.TempDir(), "bf.log")
	logger, closeLog, err := New(Options{Level: slog.LevelWarn, Writer: &bytes.Buffer{}, File: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("skipped")
	logger.Warn("tape grown", "cells", 60000)
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d records, want 1: %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["msg"] != "tape grown" || rec["cells"] != float64(60000) {
		t.Errorf("record = %v", rec)
	}
}

func TestLoggerBadFile(t *testing.T) {
	skipIfService(t)

	_, _, err := New(Options{Writer: &bytes.Buffer{}, File: filepath.Join(t.TempDir(), "missing", "bf.log")})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestParseFlag(t *testing.T) {
	tests := map[string]slog.Level{
		"-log-debug": slog.LevelDebug,
		"-log-info":  slog.LevelInfo,
		"-log-warn":  slog.LevelWarn,
		"-log-error": slog.LevelError,
	}
	for arg, want := range tests {
		got, ok := ParseFlag(arg)
		if !ok || got != want {
			t.Errorf("ParseFlag(%q) = %s, %v", arg, got, ok)
		}
	}
	if _, ok := ParseFlag("-log"); ok {
		t.Error("-log must not be a level flag")
	}
}

func TestIsService(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/system.slice/brainfuck.service\n", true},
		{"/system.slice/brainfuck.service/worker", true},
		{"/user.slice/user-1000.slice/session-2.scope", false},
		{"/", false},
	}
	for _, tt := range tests {
		if got := isService(tt.path); got != tt.want {
			t.Errorf("isService(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("high_water.cells-2"); got != "HIGH_WATER_CELLS_2" {
		t.Errorf("toJournalKey = %q", got)
	}
}
