package parser

import (
	"fmt"
	"strconv"
	"strings"

	"go.creack.net/brainfuck/op"
)

// ErrRepeatTooLarge is wrapped by UnexpectedConstantError when a repeat
// count exceeds op.MaxRepeat.
var ErrRepeatTooLarge = fmt.Errorf("repeat count above %d", op.MaxRepeat)

// repeatCount reads the operand of the keyword at tokens[i].
// Returns the count and how many tokens were consumed.
// The end of the stream counts as a ';'.
func repeatCount(tokens []Token, i int) (int, int, error) {
	kw := tokens[i]
	if i+1 >= len(tokens) {
		return 1, 0, nil
	}
	next := tokens[i+1]
	switch {
	case next.Kind == KindConstant:
		n, err := strconv.Atoi(next.Val)
		if err != nil {
			return 0, 0, &UnexpectedConstantError{Token: next, Err: err}
		}
		if n > op.MaxRepeat {
			return 0, 0, &UnexpectedConstantError{Token: next, Err: ErrRepeatTooLarge}
		}
		return n, 1, nil
	case next.Kind == KindFormatting && next.Val == string(op.Terminator):
		// Valid, the ';' stays in the stream and gets discarded.
		return 1, 0, nil
	default:
		return 0, 0, &UnexpectedTokenError{Keyword: kw, Token: next}
	}
}

// Translate lowers classified tokens into Brainfuck.
func Translate(tokens []Token) (string, error) {
	out := &strings.Builder{}
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case KindKeyword:
			kw, ok := op.LookupKeyword(t.Val)
			if !ok {
				return "", &UnknownTokenError{Token: t}
			}
			if kw.Operand == op.OperandRepeat {
				n, consumed, err := repeatCount(tokens, i)
				if err != nil {
					return "", err
				}
				i += consumed
				out.WriteString(strings.Repeat(string(rune(kw.Char)), n))
				continue
			}
			// 'define' lowers to nothing until macros are supported.
			if kw.Char != 0 {
				out.WriteByte(kw.Char)
			}
		case KindRawBrainfuck:
			out.WriteString(t.Val)
		case KindFormatting:
			// Only used for readability.
		case KindConstant:
			// Constants only follow a keyword, which consumes them.
			return "", &UnexpectedConstantError{Token: t}
		case KindDefinition:
			// Reserved, Classify never produces it.
		default:
			return "", &UnknownTokenError{Token: t}
		}
	}
	return out.String(), nil
}
