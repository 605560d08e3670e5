package parser

import (
	"strings"

	"go.creack.net/brainfuck/op"
)

func isConstant(val string) bool {
	if val == "" {
		return false
	}
	for _, r := range val {
		if !strings.ContainsRune(op.DigitChars, r) {
			return false
		}
	}
	return true
}

// identify resolves an unknown word into a keyword or a constant.
// Definitions (macros) are not supported yet, so anything else is an error.
func identify(t Token) (Token, error) {
	if _, ok := op.LookupKeyword(t.Val); ok {
		t.Kind = KindKeyword
		return t, nil
	}
	if isConstant(t.Val) {
		t.Kind = KindConstant
		return t, nil
	}
	return Token{}, &UnknownElementError{Token: t}
}

// Classify strips comments and resolves the unknown tokens.
// A comment left open at the end of the input swallows the rest of it.
func Classify(tokens []Token) ([]Token, error) {
	out := make([]Token, 0, len(tokens))
	inComment := false
	var commentOpen Token
	for _, t := range tokens {
		if t.Kind == KindFormatting {
			switch t.Val {
			case string(op.CommentOpen):
				if inComment {
					return nil, &NestedCommentError{Token: t, Open: commentOpen}
				}
				inComment = true
				commentOpen = t
				continue
			case string(op.CommentClose):
				if !inComment {
					return nil, &UnmatchedCommentCloseError{Token: t}
				}
				inComment = false
				continue
			}
		}
		if inComment {
			continue
		}

		if t.Kind == KindUnknown {
			id, err := identify(t)
			if err != nil {
				return nil, err
			}
			t = id
		}
		out = append(out, t)
	}
	return out, nil
}
