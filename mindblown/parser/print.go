package parser

import (
	"strings"

	"go.creack.net/brainfuck/op"
)

// Print renders classified tokens as MindBlown source, one statement per
// line, with loop bodies indented.
func Print(tokens []Token) string {
	out := &strings.Builder{}
	depth := 0
	line := func(s string) {
		out.WriteString(strings.Repeat("\t", depth))
		out.WriteString(s)
		out.WriteString("\n")
	}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case KindKeyword:
			kw, ok := op.LookupKeyword(t.Val)
			if !ok {
				line(t.Val)
				continue
			}
			switch {
			case kw.Operand == op.OperandRepeat:
				stmt := t.Val
				if i+1 < len(tokens) && tokens[i+1].Kind == KindConstant {
					i++
					stmt += " " + tokens[i].Val
				}
				// Fold the terminator, if any.
				if i+1 < len(tokens) && tokens[i+1].Kind == KindFormatting && tokens[i+1].Val == string(op.Terminator) {
					i++
				}
				line(stmt + string(op.Terminator))
			case kw.Char == op.Open:
				line(t.Val)
				depth++
			case kw.Char == op.Close:
				depth = max(depth-1, 0)
				line(t.Val)
			default:
				line(t.Val)
			}
		case KindRawBrainfuck:
			// Group consecutive raw instructions on a single line.
			raw := t.Val
			for i+1 < len(tokens) && tokens[i+1].Kind == KindRawBrainfuck {
				i++
				raw += tokens[i].Val
			}
			line(raw)
		case KindFormatting:
			if t.Val == string(op.Terminator) {
				continue
			}
			line(t.Val)
		default:
			line(t.Val)
		}
	}
	return out.String()
}
