package parser

import (
	"strings"
	"unicode/utf8"

	"go.creack.net/brainfuck/op"
)

type stateFn func(*lexer) stateFn

const eof = -1

// lexer holds the state of the scanner.
type lexer struct {
	name      string // The name of the input; used only for error reports.
	input     string // The string being scanned.
	pos       Pos    // Current position in the input.
	start     Pos    // Start position of this token.
	atEOF     bool   // We have hit the end of input and returned eof.
	line      int    // 1+number of newlines seen.
	startLine int    // Start line of this token.
	item      Token  // Token to return to the caller.
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if int(l.pos) >= len(l.input) {
		l.atEOF = true
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += Pos(w)
	if r == '\n' {
		l.line++
	}
	return r
}

// backup steps back one rune.
func (l *lexer) backup() {
	if !l.atEOF && l.pos > 0 {
		r, w := utf8.DecodeLastRuneInString(l.input[:l.pos])
		l.pos -= Pos(w)
		// Correct newline count.
		if r == '\n' {
			l.line--
		}
	}
}

// thisItem returns the token at the current input point with the specified kind
// and advances the input.
func (l *lexer) thisItem(k Kind) Token {
	t := Token{Val: l.input[l.start:l.pos], Kind: k, Pos: l.start, Line: l.startLine}
	l.start = l.pos
	l.startLine = l.line
	return t
}

// emit passes the pending text as a token back to the caller.
func (l *lexer) emit(k Kind) stateFn {
	l.item = l.thisItem(k)
	return nil
}

// ignore skips over the pending input before this point.
// Newlines were already counted by l.next.
func (l *lexer) ignore() {
	l.start = l.pos
	l.startLine = l.line
}

// acceptRun consumes a run of runes from the valid set.
func (l *lexer) acceptRun(valid string) bool {
	accepted := false
	for strings.ContainsRune(valid, l.next()) {
		accepted = true
	}
	l.backup()
	return accepted
}

// isSeparator reports whether r ends a word.
func isSeparator(r rune) bool {
	return strings.ContainsRune(op.WhitespaceChars, r) ||
		strings.ContainsRune(op.InstructionChars, r) ||
		strings.ContainsRune(op.FormattingChars, r)
}

// lexText skips whitespace and dispatches on the next rune.
func lexText(l *lexer) stateFn {
	l.acceptRun(op.WhitespaceChars)
	l.ignore()
	switch r := l.next(); {
	case r == eof:
		return l.emit(kindEOF)
	case strings.ContainsRune(op.InstructionChars, r):
		return l.emit(KindRawBrainfuck)
	case strings.ContainsRune(op.FormattingChars, r):
		return l.emit(KindFormatting)
	default:
		return lexWord
	}
}

// lexWord accumulates everything up to the next separator.
func lexWord(l *lexer) stateFn {
	for {
		r := l.next()
		if r == eof {
			break
		}
		if isSeparator(r) {
			l.backup()
			break
		}
	}
	return l.emit(KindUnknown)
}

// nextItem returns the next token from the input.
func (l *lexer) nextItem() Token {
	l.item = Token{Val: "EOF", Kind: kindEOF, Pos: l.pos, Line: l.startLine}
	state := lexText
	for {
		state = state(l)
		if state == nil {
			return l.item
		}
	}
}

func newLexer(name, input string) *lexer {
	return &lexer{
		name:      name,
		input:     input,
		line:      1,
		startLine: 1,
	}
}

// Tokenize splits MindBlown source into unclassified tokens.
// Whitespace is dropped, instruction and formatting characters are tokens
// on their own and every other run of characters is a KindUnknown token.
func Tokenize(name, input string) []Token {
	l := newLexer(name, input)
	var tokens []Token
	for {
		t := l.nextItem()
		if t.Kind == kindEOF {
			return tokens
		}
		tokens = append(tokens, t)
	}
}
