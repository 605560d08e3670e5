package parser

import (
	"errors"
	"testing"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestClassify(t *testing.T) {
	tokens, err := Classify(Tokenize("test", "(skip me) right 12; > memdump"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Kind{KindKeyword, KindConstant, KindFormatting, KindRawBrainfuck, KindKeyword}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("kind %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestClassifyCommentDropsEverything(t *testing.T) {
	tokens, err := Classify(Tokenize("test", "up (>>> garbage 12 ; {}) down"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 || tokens[0].Val != "up" || tokens[1].Val != "down" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestClassifyUnclosedComment(t *testing.T) {
	tokens, err := Classify(Tokenize("test", "up (never closed"))
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestClassifyErrors(t *testing.T) {
	t.Run("nested comment", func(t *testing.T) {
		_, err := Classify(Tokenize("test", "(a\n(b))"))
		var e *NestedCommentError
		if !errors.As(err, &e) {
			t.Fatalf("got %v, want NestedCommentError", err)
		}
		if e.Token.Line != 2 || e.Open.Line != 1 {
			t.Errorf("lines = %d/%d, want 2/1", e.Token.Line, e.Open.Line)
		}
	})
	t.Run("stray close", func(t *testing.T) {
		_, err := Classify(Tokenize("test", "up )"))
		var e *UnmatchedCommentCloseError
		if !errors.As(err, &e) {
			t.Fatalf("got %v, want UnmatchedCommentCloseError", err)
		}
	})
	t.Run("unknown word", func(t *testing.T) {
		_, err := Classify(Tokenize("test", "up\nsideways"))
		var e *UnknownElementError
		if !errors.As(err, &e) {
			t.Fatalf("got %v, want UnknownElementError", err)
		}
		if e.Token.Val != "sideways" || e.Token.Line != 2 {
			t.Errorf("token = %q line %d", e.Token.Val, e.Token.Line)
		}
	})
	t.Run("mixed digits", func(t *testing.T) {
		_, err := Classify(Tokenize("test", "right 3a"))
		var e *UnknownElementError
		if !errors.As(err, &e) {
			t.Fatalf("got %v, want UnknownElementError", err)
		}
	})
}
