package parser

import "fmt"

// Kind of token.
type Kind int

const (
	KindUnknown      Kind = iota // Run of characters not yet classified.
	KindKeyword                  // One of op.KeywordTable.
	KindRawBrainfuck             // A single instruction character.
	KindFormatting               // One of op.FormattingChars.
	KindConstant                 // Decimal repeat count.
	KindDefinition               // Reserved for macros, never produced.

	kindEOF // End of the input, only used by the lexer and in errors.
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "<unknown>"
	case KindKeyword:
		return "<keyword>"
	case KindRawBrainfuck:
		return "<brainfuck>"
	case KindFormatting:
		return "<formatting>"
	case KindConstant:
		return "<constant>"
	case KindDefinition:
		return "<definition>"
	case kindEOF:
		return "<eof>"
	default:
		return fmt.Sprintf("<unknown kind %d>", k)
	}
}

type Pos int

// Token is a value with its kind and where it was found.
type Token struct {
	Val  string
	Kind Kind
	Pos  Pos // Start offset, in bytes, in the input.
	Line int // 1-based line of the start of the token.
}

func (t Token) String() string {
	switch {
	case t.Kind == kindEOF:
		return "EOF"
	case len(t.Val) > 10:
		return fmt.Sprintf("%s %.10q...", t.Kind, t.Val)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Val)
}
