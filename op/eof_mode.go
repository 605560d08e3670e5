package op

import "fmt"

// EOFMode is what ',' stores once the input is exhausted.
type EOFMode int

const (
	EOFKeep EOFMode = iota // Leave the cell unchanged.
	EOFZero                // Set the cell to 0.
	EOFMax                 // Set the cell to 255, i.e. a truncated -1.
)

func (m EOFMode) String() string {
	switch m {
	case EOFKeep:
		return "keep"
	case EOFZero:
		return "zero"
	case EOFMax:
		return "max"
	default:
		return "unknown eof mode"
	}
}

// ParseEOFMode is the reverse of EOFMode.String. Empty defaults to keep.
func ParseEOFMode(s string) (EOFMode, error) {
	switch s {
	case "", "keep":
		return EOFKeep, nil
	case "zero":
		return EOFZero, nil
	case "max":
		return EOFMax, nil
	default:
		return 0, fmt.Errorf("invalid eof mode %q, must be keep, zero or max", s)
	}
}

func (m EOFMode) MarshalText() ([]byte, error) {
	if m < EOFKeep || m > EOFMax {
		return nil, fmt.Errorf("invalid eof mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *EOFMode) UnmarshalText(text []byte) error {
	mode, err := ParseEOFMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
