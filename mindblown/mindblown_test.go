package mindblown

import (
	"bytes"
	"errors"
	"testing"

	"go.creack.net/brainfuck/mindblown/parser"
	"go.creack.net/brainfuck/vm"
)

func TestCompile(t *testing.T) {
	code, p, err := Compile("test.mb", "right 3; up; loop out end")
	if err != nil {
		t.Fatal(err)
	}
	if code != ">>>+[.]" {
		t.Errorf("code = %q, want %q", code, ">>>+[.]")
	}
	if p.Name != "test.mb" || p.Code != code {
		t.Errorf("program = %+v", p)
	}
}

func TestCompileComment(t *testing.T) {
	code, _, err := Compile("test.mb", "(this is a comment) up")
	if err != nil {
		t.Fatal(err)
	}
	if code != "+" {
		t.Errorf("code = %q, want %q", code, "+")
	}
}

func TestCompileStrayCommentClose(t *testing.T) {
	_, p, err := Compile("test.mb", "up; )")
	var e *parser.UnmatchedCommentCloseError
	if !errors.As(err, &e) {
		t.Fatalf("got %v, want UnmatchedCommentCloseError", err)
	}
	if p != nil {
		t.Errorf("program = %+v, want nil", p)
	}
}

const helloMB = `
(Hello World, in MindBlown)
up 8;
loop
	right; up 4;
	loop
		right; up 2;
		right; up 3;
		right; up 3;
		right; up;
		left 4;
		down;
	end
	right; up;
	right; up;
	right; down;
	right 2; up;
	loop left; end
	left; down;
end
right 2; out
right; down 3; out
up 7; out out
up 3; out
right 2; out
left; down; out
left; out
up 3; out
down 6; out
down 8; out
right 2; up; out
right; up 2; out
`

func TestCompileAndRun(t *testing.T) {
	code, _, err := Compile("hello.mb", helloMB)
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err := vm.Run(code, nil, out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Hello World!\n" {
		t.Errorf("output = %q", out.String())
	}
}
