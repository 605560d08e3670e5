// Package cli provides the functions to parse the non-standard CLI flags
// and load the program to run.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.creack.net/brainfuck/config"
	"go.creack.net/brainfuck/logs"
	"go.creack.net/brainfuck/mindblown"
	"go.creack.net/brainfuck/mindblown/parser"
	"go.creack.net/brainfuck/op"
)

// ErrNoInput is returned when no program file was given.
var ErrNoInput = errors.New("no input file")

// ErrViewerFlag is returned by StdinOnly when -input was given.
var ErrViewerFlag = errors.New("-input is only supported by the viewers, pipe the input on stdin instead")

// Supported source extensions.
var (
	BrainfuckExtensions = []string{".b", ".bf"}
	MindBlownExtensions = []string{mindblown.Extension}
)

// Flags holds the raw command line. Unset values are zero.
type Flags struct {
	Path string // Program file.

	WriteBF      bool        // -b: write the compiled Brainfuck next to a .mb source.
	ConfigPath   string      // -config
	EOF          string      // -eof
	ChunkSize    int         // -chunk
	SnapshotPath string      // -snapshot: CBOR tape snapshot written after the run.
	LogLevel     *slog.Level // -log-debug, -log-info, -log-warn, -log-error
	LogFile      string      // -log-file
	Input        string      // -input: literal input for the viewers.
}

// Program is a loaded source file.
type Program struct {
	PathName  string
	ShortName string // File name without directory nor extension.
	Ext       string
	Source    string // File content.
	Code      string // Brainfuck, compiled for MindBlown sources.

	MindBlown *parser.Program // Only set for MindBlown sources.
}

// StdinOnly rejects the flags that only make sense for the viewers.
func (f *Flags) StdinOnly() error {
	if f.Input != "" {
		return ErrViewerFlag
	}
	return nil
}

// IsMindBlown reports whether the program was compiled from MindBlown.
func (p *Program) IsMindBlown() bool { return p.MindBlown != nil }

// Usage returns the help text for the given binary.
func Usage(binName string) string {
	return fmt.Sprintf(`usage: %s [options] <file.b|file.bf|file.mb>

options:
  -b               write the compiled Brainfuck of a .mb file to <name>.bf
  -config <file>   load the configuration from file (default ./%s when present)
  -eof <mode>      value stored by ',' on end of input: keep, zero or max
  -chunk <n>       tape growth step, in cells
  -snapshot <file> write a CBOR snapshot of the tape after the run
  -log-debug, -log-info, -log-warn, -log-error
                   log level
  -log-file <file> also write logs as JSON to file
  -input <text>    input fed to ',' (bf-viewer and bf-viewer-2 only)
`, binName, config.FileName)
}

// valueFlags take an argument, either as "-flag value" or "-flag=value".
var valueFlags = []string{"-config", "-eof", "-chunk", "-snapshot", "-log-file", "-input"}

func parse(args []string) (*Flags, error) {
	f := &Flags{}

	// Process arguments manually.
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "-b" {
			f.WriteBF = true
			continue
		}
		if lvl, ok := logs.ParseFlag(arg); ok {
			f.LogLevel = &lvl
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if slices.Contains(valueFlags, name) {
			if !hasValue {
				if i+1 >= len(args) {
					return nil, fmt.Errorf("missing value for %s flag", name)
				}
				value = args[i+1]
				i++ // Skip the value.
			}
			if err := f.set(name, value); err != nil {
				return nil, err
			}
			continue
		}

		if arg != "" && arg[0] == '-' {
			return nil, fmt.Errorf("unknown flag %q", arg)
		}
		// If it's not a flag, it's the program.
		if f.Path != "" {
			return nil, fmt.Errorf("only one program can be given, got %q and %q", f.Path, arg)
		}
		f.Path = arg
	}
	return f, nil
}

func (f *Flags) set(name, value string) error {
	switch name {
	case "-config":
		f.ConfigPath = value
	case "-eof":
		if _, err := op.ParseEOFMode(value); err != nil {
			return err
		}
		f.EOF = value
	case "-chunk":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number for -chunk flag: %q", value)
		}
		f.ChunkSize = n
	case "-snapshot":
		f.SnapshotPath = value
	case "-log-file":
		f.LogFile = value
	case "-input":
		f.Input = value
	}
	return nil
}

// Load reads the given file and compiles it when needed, based on its
// extension.
func Load(pathName string) (*Program, error) {
	ext := filepath.Ext(pathName)
	isBF := slices.Contains(BrainfuckExtensions, ext)
	isMB := slices.Contains(MindBlownExtensions, ext)
	if !isBF && !isMB {
		return nil, fmt.Errorf("invalid file extension for %q, must be one of %s", pathName,
			strings.Join(append(append([]string{}, BrainfuckExtensions...), MindBlownExtensions...), ", "))
	}

	data, err := os.ReadFile(pathName)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", pathName, err)
	}

	p := &Program{
		PathName:  pathName,
		ShortName: strings.TrimSuffix(filepath.Base(pathName), ext),
		Ext:       ext,
		Source:    string(data),
		Code:      string(data),
	}
	if isMB {
		code, pr, err := mindblown.Compile(pathName, p.Source)
		if err != nil {
			return nil, err
		}
		p.Code = code
		p.MindBlown = pr
	}
	return p, nil
}

// BFPath is where -b writes the compiled Brainfuck: next to the source,
// with the .bf extension.
func (p *Program) BFPath() string {
	return strings.TrimSuffix(p.PathName, p.Ext) + ".bf"
}

// ParseConfig parses the arguments, loads the configuration with the flags
// applied on top of it and finally loads the program.
// Returns ErrNoInput, with the parsed flags, when no file is given.
func ParseConfig(args []string) (*Flags, *config.Config, *Program, error) {
	f, err := parse(args)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse: %w", err)
	}

	var cfg *config.Config
	if f.ConfigPath != "" {
		cfg, err = config.Load(f.ConfigPath)
	} else {
		cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return f, nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := f.apply(cfg); err != nil {
		return f, nil, nil, err
	}

	if f.Path == "" {
		return f, cfg, nil, ErrNoInput
	}
	p, err := Load(f.Path)
	if err != nil {
		return f, cfg, nil, fmt.Errorf("load program: %w", err)
	}
	return f, cfg, p, nil
}

// apply overrides the config with the flags that were set.
func (f *Flags) apply(cfg *config.Config) error {
	if f.EOF != "" {
		mode, err := op.ParseEOFMode(f.EOF)
		if err != nil {
			return err
		}
		cfg.Tape.EOF = mode
	}
	if f.ChunkSize > 0 {
		cfg.Tape.ChunkSize = f.ChunkSize
	}
	if f.LogLevel != nil {
		cfg.Log.Level = *f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	return cfg.Validate()
}
