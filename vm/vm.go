// Package vm is the Brainfuck execution engine.
package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.creack.net/brainfuck/op"
)

type Config struct {
	ChunkSize   int        // Tape growth step, see NewTape.
	EOF         op.EOFMode // What ',' stores once the input is exhausted.
	DumpPerLine int        // Entries per line for '~'.

	Input  io.Reader // Source for ','. Defaults to an empty input.
	Output io.Writer // Destination for '.' and '~'. Defaults to io.Discard.
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		ChunkSize:   op.ChunkSize,
		EOF:         op.EOFKeep,
		DumpPerLine: op.DumpPerLine,
	}
}

type Brainfuck struct {
	Config Config

	Code  string // Cleaned instruction stream.
	PC    int    // Program counter.
	Tape  *Tape
	Steps int // Number of executed instructions.

	// Messages is an optional channel where the engine reports events.
	// When set, it needs to be consumed otherwise the engine will block.
	Messages chan Message `json:"-"`

	in     io.ByteReader
	out    io.Writer
	logger *slog.Logger
	err    error // Sticky failure.
}

// New creates an engine for the given code. The code is cleaned first.
func New(cfg Config, code string) *Brainfuck {
	var in io.ByteReader
	switch r := cfg.Input.(type) {
	case nil:
		in = strings.NewReader("")
	case io.ByteReader:
		in = r
	default:
		in = bufio.NewReader(r)
	}
	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.DumpPerLine <= 0 {
		cfg.DumpPerLine = op.DumpPerLine
	}

	return &Brainfuck{
		Config: cfg,

		Code: Clean(code),
		Tape: NewTape(cfg.ChunkSize),

		in:     in,
		out:    out,
		logger: logger,
	}
}

// Run executes code with the default config.
func Run(code string, in io.Reader, out io.Writer) error {
	cfg := DefaultConfig()
	cfg.Input = in
	cfg.Output = out
	return New(cfg, code).Run()
}

func (bf *Brainfuck) send(mt MessageType, msg string) {
	if bf.Messages == nil {
		return
	}
	bf.Messages <- NewMessage(mt, bf.PC, bf.Tape.Cursor(), msg)
}

// flush pushes buffered output, if the writer supports it.
func (bf *Brainfuck) flush() error {
	if f, ok := bf.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}
	return nil
}

var ops = func() map[byte]func(bf *Brainfuck) error {
	ops := map[byte]func(bf *Brainfuck) error{}

	ops[op.Right] = func(bf *Brainfuck) error {
		if bf.Tape.MoveRight() {
			bf.logger.Debug("tape grown", "cells", bf.Tape.Len(), "pc", bf.PC)
			bf.send(MsgGrow, fmt.Sprintf("Tape grown to %d cells", bf.Tape.Len()))
		}
		return nil
	}

	ops[op.Left] = func(bf *Brainfuck) error {
		if err := bf.Tape.MoveLeft(); err != nil {
			return &BoundaryError{PC: bf.PC}
		}
		return nil
	}

	ops[op.Inc] = func(bf *Brainfuck) error { bf.Tape.Increment(); return nil }
	ops[op.Dec] = func(bf *Brainfuck) error { bf.Tape.Decrement(); return nil }

	ops[op.Out] = func(bf *Brainfuck) error {
		b := bf.Tape.Get()
		if _, err := bf.out.Write([]byte{b}); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		bf.send(MsgOutput, string([]byte{b}))
		return nil
	}

	ops[op.In] = func(bf *Brainfuck) error {
		// Make sure prompts are visible before blocking on input.
		if err := bf.flush(); err != nil {
			return err
		}
		b, err := bf.in.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("read input: %w", err)
			}
			switch bf.Config.EOF {
			case op.EOFZero:
				bf.Tape.Set(0)
			case op.EOFMax:
				bf.Tape.Set(0xff)
			}
			bf.send(MsgInput, "EOF")
			return nil
		}
		bf.Tape.Set(b)
		bf.send(MsgInput, string([]byte{b}))
		return nil
	}

	// '[' on a zero cell skips forward past the matching ']'.
	ops[op.Open] = func(bf *Brainfuck) error {
		if bf.Tape.Get() != 0 {
			return nil
		}
		start := bf.PC
		for depth := 1; depth > 0; {
			bf.PC++
			if bf.PC >= len(bf.Code) {
				bf.PC = start
				return &MismatchedBracketsError{PC: start, Open: true}
			}
			switch bf.Code[bf.PC] {
			case op.Open:
				depth++
			case op.Close:
				depth--
			}
		}
		return nil
	}

	// ']' on a non-zero cell goes back to the matching '['.
	ops[op.Close] = func(bf *Brainfuck) error {
		if bf.Tape.Get() == 0 {
			return nil
		}
		start := bf.PC
		for depth := 1; depth > 0; {
			bf.PC--
			if bf.PC < 0 {
				bf.PC = start
				return &MismatchedBracketsError{PC: start, Open: false}
			}
			switch bf.Code[bf.PC] {
			case op.Close:
				depth++
			case op.Open:
				depth--
			}
		}
		return nil
	}

	ops[op.Dump] = func(bf *Brainfuck) error {
		s := bf.Tape.Snapshot()
		if err := s.Fprint(bf.out, bf.Config.DumpPerLine); err != nil {
			return fmt.Errorf("write memory dump: %w", err)
		}
		bf.send(MsgDump, s.String())
		return nil
	}

	return ops
}()

// Halted reports whether the program counter reached the end of the code.
func (bf *Brainfuck) Halted() bool {
	return bf.PC >= len(bf.Code)
}

// Err returns the error that stopped the engine, if any.
func (bf *Brainfuck) Err() error { return bf.err }

// Step executes the current instruction.
// Returns io.EOF once the program is over.
func (bf *Brainfuck) Step() error {
	if bf.err != nil {
		return bf.err
	}
	if bf.Halted() {
		return io.EOF
	}

	if f, ok := ops[bf.Code[bf.PC]]; ok {
		if err := f(bf); err != nil {
			bf.err = err
			bf.logger.Debug("execution failed", "pc", bf.PC, "cursor", bf.Tape.Cursor(), "error", err)
			bf.send(MsgError, err.Error())
			return err
		}
	}
	bf.PC++
	bf.Steps++

	if bf.Halted() {
		bf.logger.Debug("program halted", "steps", bf.Steps, "high_water", bf.Tape.HighWater())
		bf.send(MsgHalt, fmt.Sprintf("Halted after %d steps", bf.Steps))
	}
	return nil
}

// Run steps until the program is over or fails.
func (bf *Brainfuck) Run() error {
	for {
		err := bf.Step()
		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) && bf.Halted() && bf.err == nil {
			return bf.flush()
		}
		_ = bf.flush() // Best effort, keep what was printed before the failure.
		return err
	}
}
