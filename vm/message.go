package vm

type MessageType int

const (
	_ MessageType = iota
	MsgDebug
	MsgError
	MsgOutput
	MsgInput
	MsgGrow
	MsgDump
	MsgHalt
)

func (mt MessageType) String() string {
	switch mt {
	case MsgDebug:
		return "Debug"
	case MsgError:
		return "Error"
	case MsgOutput:
		return "Output"
	case MsgInput:
		return "Input"
	case MsgGrow:
		return "Grow"
	case MsgDump:
		return "Dump"
	case MsgHalt:
		return "Halt"
	default:
		return "Unknown"
	}
}

type Message struct {
	Type    MessageType
	PC      int // Program counter when the message was sent.
	Cursor  int
	Message string
}

func NewMessage(mt MessageType, pc, cursor int, msg string) Message {
	return Message{
		Type:    mt,
		PC:      pc,
		Cursor:  cursor,
		Message: msg,
	}
}
