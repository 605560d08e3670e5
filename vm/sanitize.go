package vm

import (
	"strings"

	"go.creack.net/brainfuck/op"
)

// IsInstruction reports whether c is part of the instruction set.
func IsInstruction(c byte) bool {
	return strings.IndexByte(op.InstructionChars, c) != -1
}

// Clean strips everything that is not an instruction, keeping the order.
func Clean(code string) string {
	out := &strings.Builder{}
	out.Grow(len(code))
	for i := 0; i < len(code); i++ {
		if IsInstruction(code[i]) {
			out.WriteByte(code[i])
		}
	}
	return out.String()
}
