package op

// OperandType enum type.
type OperandType int

// OperandType values.
const (
	OperandNone   OperandType = iota // No operand.
	OperandRepeat                    // Optional repeat count, or ';'.
)

func (ot OperandType) String() string {
	switch ot {
	case OperandNone:
		return "none"
	case OperandRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}
