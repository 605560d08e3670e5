// Package config handles the brainfuck.toml configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"go.creack.net/brainfuck/op"
	"go.creack.net/brainfuck/vm"
)

// FileName is looked up in the current directory when no path is given.
const FileName = "brainfuck.toml"

type Config struct {
	Tape Tape `toml:"tape"`
	Dump Dump `toml:"dump"`
	Log  Log  `toml:"log"`

	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

type Tape struct {
	ChunkSize int        `toml:"chunk-size"`
	EOF       op.EOFMode `toml:"eof"`
}

type Dump struct {
	PerLine int `toml:"per-line"`
}

type Log struct {
	Level slog.Level `toml:"level"`
	File  string     `toml:"file"`
}

func Default() *Config {
	return &Config{
		Tape: Tape{
			ChunkSize: op.ChunkSize,
			EOF:       op.EOFKeep,
		},
		Dump: Dump{
			PerLine: op.DumpPerLine,
		},
		Log: Log{
			Level: slog.LevelInfo,
		},
	}
}

// Load parses the given file. Keys absent from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// FindAndLoad loads FileName from dir, or returns the defaults when there
// is no such file.
func FindAndLoad(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	return Load(path)
}

func (c *Config) Validate() error {
	if c.Tape.ChunkSize < 1 {
		return fmt.Errorf("tape.chunk-size must be positive, got %d", c.Tape.ChunkSize)
	}
	if _, err := c.Tape.EOF.MarshalText(); err != nil {
		return fmt.Errorf("tape.eof: %w", err)
	}
	if c.Dump.PerLine < 1 {
		return fmt.Errorf("dump.per-line must be positive, got %d", c.Dump.PerLine)
	}
	return nil
}

// VM returns the engine settings. I/O and logger are left to the caller.
func (c *Config) VM() vm.Config {
	cfg := vm.DefaultConfig()
	cfg.ChunkSize = c.Tape.ChunkSize
	cfg.EOF = c.Tape.EOF
	cfg.DumpPerLine = c.Dump.PerLine
	return cfg
}
