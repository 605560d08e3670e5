package vm

import "fmt"

// BoundaryError is returned when '<' is executed on cell 0.
type BoundaryError struct {
	PC int // Offset of the '<' in the cleaned code.
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("unable to move more left than cell 0 (pc %d)", e.PC)
}

// MismatchedBracketsError is returned when a bracket scan runs off the code.
type MismatchedBracketsError struct {
	PC   int  // Offset of the bracket that started the scan.
	Open bool // True when a '[' has no matching ']', false for the reverse.
}

func (e *MismatchedBracketsError) Error() string {
	if e.Open {
		return fmt.Sprintf("mismatched [ and ] characters, too many [ without enough ] to match (pc %d)", e.PC)
	}
	return fmt.Sprintf("mismatched [ and ] characters, too many ] without enough [ to match (pc %d)", e.PC)
}
