package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.creack.net/brainfuck/op"
)

func write(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, t.TempDir(), `
[tape]
chunk-size = 512
eof = "zero"

[dump]
per-line = 4

[log]
level = "debug"
file = "bf.log"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Tape.ChunkSize != 512 {
		t.Errorf("chunk size = %d, want 512", c.Tape.ChunkSize)
	}
	if c.Tape.EOF != op.EOFZero {
		t.Errorf("eof = %s, want zero", c.Tape.EOF)
	}
	if c.Dump.PerLine != 4 {
		t.Errorf("per line = %d, want 4", c.Dump.PerLine)
	}
	if c.Log.Level != slog.LevelDebug {
		t.Errorf("level = %s, want DEBUG", c.Log.Level)
	}
	if c.Log.File != "bf.log" {
		t.Errorf("log file = %q, want bf.log", c.Log.File)
	}
	if c.Path != path {
		t.Errorf("path = %q, want %q", c.Path, path)
	}

	vmc := c.VM()
	if vmc.ChunkSize != 512 || vmc.EOF != op.EOFZero || vmc.DumpPerLine != 4 {
		t.Errorf("vm config = %+v", vmc)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := write(t, t.TempDir(), "[tape]\neof = \"max\"\n")
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Tape.EOF != op.EOFMax {
		t.Errorf("eof = %s, want max", c.Tape.EOF)
	}
	if c.Tape.ChunkSize != op.ChunkSize {
		t.Errorf("chunk size = %d, want default %d", c.Tape.ChunkSize, op.ChunkSize)
	}
	if c.Dump.PerLine != op.DumpPerLine {
		t.Errorf("per line = %d, want default", c.Dump.PerLine)
	}
	if c.Log.Level != slog.LevelInfo {
		t.Errorf("level = %s, want INFO", c.Log.Level)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, content, want string
	}{
		{"negative chunk", "[tape]\nchunk-size = -1\n", "chunk-size"},
		{"zero per line", "[dump]\nper-line = 0\n", "per-line"},
		{"bad eof", "[tape]\neof = \"minus-one\"\n", "eof"},
		{"bad level", "[log]\nlevel = \"loud\"\n", "level"},
		{"unknown key", "[tape]\nsize = 3\n", "tape.size"},
		{"not toml", "[tape\n", "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	c, err := FindAndLoad(dir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Path != "" || c.Tape.ChunkSize != op.ChunkSize {
		t.Errorf("expected defaults, got %+v", c)
	}

	write(t, dir, "[tape]\nchunk-size = 7\n")
	c, err = FindAndLoad(dir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Tape.ChunkSize != 7 {
		t.Errorf("chunk size = %d, want 7", c.Tape.ChunkSize)
	}
}
