package op

// Keyword is the definition of a MindBlown keyword.
type Keyword struct {
	Name    string
	Char    byte        // Instruction it lowers to, 0 for none.
	Operand OperandType // Accepted operand.
	Comment string
}

var KeywordTable = []Keyword{
	{"right", Right, OperandRepeat, "right [n];"},
	{"left", Left, OperandRepeat, "left [n];"},
	{"up", Inc, OperandRepeat, "up [n];"},
	{"down", Dec, OperandRepeat, "down [n];"},
	{"out", Out, OperandNone, "out"},
	{"in", In, OperandNone, "in"},
	{"loop", Open, OperandNone, "loop"},
	{"end", Close, OperandNone, "end"},
	{"define", 0, OperandNone, "reserved for macros"},
	{"memdump", Dump, OperandNone, "memdump"},
}

// LookupKeyword returns the keyword definition for the given name.
func LookupKeyword(name string) (Keyword, bool) {
	for _, kw := range KeywordTable {
		if kw.Name == name {
			return kw, true
		}
	}
	return Keyword{}, false
}

// KeywordFor returns the keyword lowering to the given instruction.
func KeywordFor(c byte) (Keyword, bool) {
	for _, kw := range KeywordTable {
		if kw.Char == c && kw.Char != 0 {
			return kw, true
		}
	}
	return Keyword{}, false
}
