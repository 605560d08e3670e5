// Package mindblown compiles MindBlown sources into Brainfuck.
package mindblown

import (
	"fmt"

	"go.creack.net/brainfuck/mindblown/parser"
)

// Extension of MindBlown sources.
const Extension = ".mb"

// Compile lowers MindBlown source into Brainfuck.
func Compile(inputName, inputData string) (string, *parser.Program, error) {
	p := parser.NewProgram(inputName, inputData)
	if err := p.Compile(); err != nil {
		return "", nil, fmt.Errorf("failed to compile %q: %w", inputName, err)
	}
	return p.Code, p, nil
}
