package op

import "testing"

func TestParseEOFMode(t *testing.T) {
	tests := []struct {
		in   string
		want EOFMode
	}{
		{"", EOFKeep},
		{"keep", EOFKeep},
		{"zero", EOFZero},
		{"max", EOFMax},
	}
	for _, tt := range tests {
		got, err := ParseEOFMode(tt.in)
		if err != nil {
			t.Fatalf("ParseEOFMode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEOFMode(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if tt.in != "" && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
	if _, err := ParseEOFMode("minus-one"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestEOFModeText(t *testing.T) {
	var m EOFMode
	if err := m.UnmarshalText([]byte("max")); err != nil {
		t.Fatal(err)
	}
	if m != EOFMax {
		t.Errorf("mode = %s, want max", m)
	}
	if err := m.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected an error")
	}
	if _, err := EOFMode(42).MarshalText(); err == nil {
		t.Error("expected an error for an out of range mode")
	}
}

func TestKeywordTable(t *testing.T) {
	for _, c := range []byte(InstructionChars) {
		kw, ok := KeywordFor(c)
		if !ok {
			t.Errorf("no keyword for %q", c)
			continue
		}
		if got, ok := LookupKeyword(kw.Name); !ok || got.Char != c {
			t.Errorf("LookupKeyword(%q) = %+v", kw.Name, got)
		}
		if _, ok := LookupInstruction(c); !ok {
			t.Errorf("no instruction for %q", c)
		}
	}
	if _, ok := KeywordFor(0); ok {
		t.Error("'define' must not be reachable from an instruction")
	}
}
