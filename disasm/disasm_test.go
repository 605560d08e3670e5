package disasm

import (
	"strconv"
	"strings"
	"testing"

	"go.creack.net/brainfuck/mindblown"
	"go.creack.net/brainfuck/mindblown/parser"
	"go.creack.net/brainfuck/op"
	"go.creack.net/brainfuck/vm"
)

const helloWorld = `++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.`

func TestDisasmRoundTrip(t *testing.T) {
	for _, code := range []string{
		"",
		"+",
		">>>+[.]",
		"+++[->+<]>.,~",
		"--<<<<-",
		"comments are dropped +++ .",
		helloWorld + "x",
	} {
		t.Run(code, func(t *testing.T) {
			src, err := Disasm("test.bf", code)
			if err != nil {
				t.Fatal(err)
			}
			got, _, err := mindblown.Compile("test.mb", src)
			if err != nil {
				t.Fatalf("compile disassembly: %v\n%s", err, src)
			}
			if want := vm.Clean(code); got != want {
				t.Errorf("round trip = %q, want %q\n%s", got, want, src)
			}
		})
	}
}

func TestDisasmRunLength(t *testing.T) {
	src, err := Disasm("test.bf", ">>>+[.]")
	if err != nil {
		t.Fatal(err)
	}
	want := "right 3;\nup;\nloop\n\tout\nend\n"
	if src != want {
		t.Errorf("Disasm =\n%s\nwant\n%s", src, want)
	}
}

func TestDisasmKnownSource(t *testing.T) {
	tests := []struct {
		name, code, marker string
	}{
		{"hello", helloWorld, "Hello World"},
		{"cat", ",[.,]", "cat"},
		{"reverse", ">,[>,]<[.<]", "reverse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Disasm(tt.name+".bf", "some text "+tt.code)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(src, tt.marker) {
				t.Errorf("expected the known source, got:\n%s", src)
			}
			got, _, err := mindblown.Compile("known.mb", src)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.code {
				t.Errorf("compiled = %q, want %q", got, tt.code)
			}
		})
	}
}

func TestTokensLines(t *testing.T) {
	tokens := Tokens("++>")
	if len(tokens) != 5 {
		t.Fatalf("tokens = %v", tokens)
	}
	if tokens[0].Line != 1 || tokens[3].Line != 2 {
		t.Errorf("lines = %d, %d", tokens[0].Line, tokens[3].Line)
	}
}

func TestTokensSplitLongRun(t *testing.T) {
	code := strings.Repeat("+", op.MaxRepeat+3)
	tokens := Tokens(code)
	// up <MaxRepeat> ; up 3 ;
	if len(tokens) != 6 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	if tokens[1].Val != strconv.Itoa(op.MaxRepeat) || tokens[4].Val != "3" {
		t.Errorf("counts = %s, %s", tokens[1].Val, tokens[4].Val)
	}
	got, err := parser.Translate(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if got != code {
		t.Errorf("round trip lost %d instructions", len(code)-len(got))
	}
}
