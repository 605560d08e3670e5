package op

// Tape settings.
const (
	ChunkSize     = 30000 // Cells allocated up front and on each growth.
	DumpPerLine   = 10    // Snapshot entries per line.
	SnapshotMagic = 0x0bf57a9e
)

// MaxRepeat bounds the count of a MindBlown move or arithmetic keyword.
const MaxRepeat = 1 << 20

// Instruction characters.
const (
	Right = '>'
	Left  = '<'
	Inc   = '+'
	Dec   = '-'
	Out   = '.'
	In    = ','
	Open  = '['
	Close = ']'
	Dump  = '~' // Not part of Brainfuck, dumps the visited tape.
)

// InstructionChars is the full instruction set, everything else is a comment.
const InstructionChars = "><+-.,[]~"

// MindBlown tokens.
const (
	CommentOpen     = '('
	CommentClose    = ')'
	BlockOpen       = '{'
	BlockClose      = '}'
	Terminator      = ';'
	FormattingChars = "(){};"
	WhitespaceChars = " \t\r\n"
	DigitChars      = "0123456789"
)

// Instruction is the definition of a Brainfuck instruction.
type Instruction struct {
	Char    byte
	Name    string // Matching MindBlown keyword.
	Comment string
}

var InstructionTable = []Instruction{
	{Right, "right", "move the cursor one cell right"},
	{Left, "left", "move the cursor one cell left"},
	{Inc, "up", "increment the current cell"},
	{Dec, "down", "decrement the current cell"},
	{Out, "out", "write the current cell"},
	{In, "in", "read a byte into the current cell"},
	{Open, "loop", "jump past the matching ] if the current cell is 0"},
	{Close, "end", "jump back to the matching [ unless the current cell is 0"},
	{Dump, "memdump", "dump the visited tape"},
}

// LookupInstruction returns the definition of the given instruction character.
func LookupInstruction(c byte) (Instruction, bool) {
	for _, ins := range InstructionTable {
		if ins.Char == c {
			return ins, true
		}
	}
	return Instruction{}, false
}
