package assets

import (
	_ "embed"
)

// Hand written MindBlown sources for well known Brainfuck programs.
// Each entry is named after the md5 of the cleaned Brainfuck it compiles to.
//
//go:embed known-srcs.tar.gz
var KnownSrcsTargz []byte
