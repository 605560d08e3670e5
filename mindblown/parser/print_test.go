package parser

import "testing"

func TestPrint(t *testing.T) {
	tokens, err := Classify(Tokenize("test", "right 3; up; loop out loop down; end end ++>"))
	if err != nil {
		t.Fatal(err)
	}
	want := "right 3;\nup;\nloop\n\tout\n\tloop\n\t\tdown;\n\tend\nend\n++>\n"
	if got := Print(tokens); got != want {
		t.Errorf("Print =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintUnbalancedEnd(t *testing.T) {
	tokens, err := Classify(Tokenize("test", "end end out"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Print(tokens), "end\nend\nout\n"; got != want {
		t.Errorf("Print = %q, want %q", got, want)
	}
}

// Printed sources translate to the same code.
func TestPrintRoundTrip(t *testing.T) {
	src := "(hello) up 8; loop right; up 4; left; down; end right; out { in } memdump"
	p := NewProgram("test", src)
	if err := p.Compile(); err != nil {
		t.Fatal(err)
	}
	p2 := NewProgram("test", p.PrettyPrint())
	if err := p2.Compile(); err != nil {
		t.Fatalf("compile pretty printed: %v\n%s", err, p.PrettyPrint())
	}
	if p.Code != p2.Code {
		t.Errorf("code = %q, want %q", p2.Code, p.Code)
	}
	if p.Code != "++++++++[>++++<-]>.,~" {
		t.Errorf("code = %q", p.Code)
	}
}
