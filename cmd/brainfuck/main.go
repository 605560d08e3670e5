package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.creack.net/brainfuck/cli"
	"go.creack.net/brainfuck/config"
	"go.creack.net/brainfuck/logs"
	"go.creack.net/brainfuck/vm"
)

func writeSnapshot(path string, bf *vm.Brainfuck) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := vm.EncodeSnapshot(f, bf.Tape.Snapshot()); err != nil {
		_ = f.Close() // Best effort.
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	return nil
}

func run(logger *slog.Logger, flags *cli.Flags, cfg *config.Config, prog *cli.Program) error {
	if flags.WriteBF && prog.IsMindBlown() {
		if err := os.WriteFile(prog.BFPath(), []byte(prog.Code), 0o644); err != nil {
			return fmt.Errorf("failed to write compiled brainfuck: %w", err)
		}
		logger.Info("compiled brainfuck written", "file", prog.BFPath())
	}

	out := bufio.NewWriter(os.Stdout)
	vmCfg := cfg.VM()
	vmCfg.Input = bufio.NewReader(os.Stdin)
	vmCfg.Output = out
	vmCfg.Logger = logger

	logger.Info("now running", "file", prog.PathName, "instructions", len(vm.Clean(prog.Code)))
	bf := vm.New(vmCfg, prog.Code)
	runErr := bf.Run()
	logger.Debug("run over", "steps", bf.Steps, "cells", bf.Tape.Len(), "high_water", bf.Tape.HighWater())

	if flags.SnapshotPath != "" {
		if err := writeSnapshot(flags.SnapshotPath, bf); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

func main() {
	tmp := strings.Split(os.Args[0], "/")
	binName := tmp[len(tmp)-1]

	flags, cfg, prog, err := cli.ParseConfig(os.Args[1:])
	if errors.Is(err, cli.ErrNoInput) {
		fmt.Print(cli.Usage(binName))
		return
	}
	if err != nil {
		fail(err)
	}
	if err := flags.StdinOnly(); err != nil {
		fail(err)
	}

	logger, closeLog, err := logs.New(logs.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fail(err)
	}
	if cfg.Path != "" {
		logger.Debug("config loaded", "file", cfg.Path)
	}

	err = run(logger, flags, cfg, prog)
	_ = closeLog() // Best effort.
	if err != nil {
		fail(err)
	}
}
