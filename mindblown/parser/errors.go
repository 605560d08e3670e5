package parser

import "fmt"

// NestedCommentError is a '(' found inside a comment.
type NestedCommentError struct {
	Token Token
	Open  Token // The '(' that started the current comment.
}

func (e *NestedCommentError) Error() string {
	return fmt.Sprintf("line %d: cannot have a '(' inside a comment block opened on line %d", e.Token.Line, e.Open.Line)
}

// UnmatchedCommentCloseError is a ')' found outside of a comment.
type UnmatchedCommentCloseError struct {
	Token Token
}

func (e *UnmatchedCommentCloseError) Error() string {
	return fmt.Sprintf("line %d: cannot have a ')' outside of a comment block", e.Token.Line)
}

// UnknownElementError is a word that is neither a keyword nor a constant.
type UnknownElementError struct {
	Token Token
}

func (e *UnknownElementError) Error() string {
	return fmt.Sprintf("line %d: unknown element: %s", e.Token.Line, e.Token.Val)
}

// UnexpectedTokenError is a bad token after a keyword expecting a repeat count.
type UnexpectedTokenError struct {
	Keyword Token
	Token   Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("line %d: unexpected token: (%s) after '%s'", e.Token.Line, e.Token.Val, e.Keyword.Val)
}

// UnexpectedConstantError is a constant that is not the operand of a keyword,
// or an operand too large to be used as a repeat count (see op.MaxRepeat).
type UnexpectedConstantError struct {
	Token Token
	Err   error // Set when the value could not be parsed.
}

func (e *UnexpectedConstantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: invalid repeat count %s: %s", e.Token.Line, e.Token.Val, e.Err)
	}
	return fmt.Sprintf("line %d: unexpected constant: %s", e.Token.Line, e.Token.Val)
}

func (e *UnexpectedConstantError) Unwrap() error { return e.Err }

// UnknownTokenError is a token that classification should have rejected.
type UnknownTokenError struct {
	Token Token
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("line %d: unknown token entered the translation step: %s", e.Token.Line, e.Token)
}
