package parser

import "fmt"

// Program is a MindBlown source going through the compilation stages.
type Program struct {
	Name  string
	Input string

	Tokens     []Token // Raw tokens, as returned by Tokenize.
	Classified []Token // Tokens without comments, as returned by Classify.
	Code       string  // Translated Brainfuck.
}

func NewProgram(name, input string) *Program {
	return &Program{
		Name:  name,
		Input: input,
	}
}

// Compile runs the three stages, keeping each intermediate result.
func (p *Program) Compile() error {
	p.Tokens = Tokenize(p.Name, p.Input)

	classified, err := Classify(p.Tokens)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	p.Classified = classified

	code, err := Translate(p.Classified)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}
	p.Code = code
	return nil
}

// PrettyPrint renders the program without its comments.
func (p Program) PrettyPrint() string {
	return Print(p.Classified)
}
