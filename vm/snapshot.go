package vm

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"go.creack.net/brainfuck/op"
)

// Snapshot is a copy of the visited part of a tape.
type Snapshot struct {
	Magic     uint32 `cbor:"1,keyasint"`
	Cursor    int    `cbor:"2,keyasint"`
	HighWater int    `cbor:"3,keyasint"`
	Cells     []byte `cbor:"4,keyasint"` // Cells 0 to HighWater included.
}

// Snapshot returns the visited cells with the cursor position.
func (t *Tape) Snapshot() Snapshot {
	return Snapshot{
		Magic:     op.SnapshotMagic,
		Cursor:    t.cursor,
		HighWater: t.highWater,
		Cells:     t.Visited(),
	}
}

func isPrintable(b byte) bool { return b >= 32 && b <= 126 }

// String renders the snapshot with the default layout.
func (s Snapshot) String() string {
	out := &strings.Builder{}
	_ = s.Fprint(out, op.DumpPerLine)
	return out.String()
}

// Fprint renders one "(index:value)" entry per cell, perLine entries per line.
// Printable values are shown as characters.
func (s Snapshot) Fprint(w io.Writer, perLine int) error {
	if perLine <= 0 {
		perLine = op.DumpPerLine
	}
	out := &strings.Builder{}
	out.WriteString("\n")
	for i, b := range s.Cells {
		if isPrintable(b) {
			fmt.Fprintf(out, "(%3d:%3c) ", i, b)
		} else {
			fmt.Fprintf(out, "(%3d:%3d) ", i, b)
		}
		if (i+1)%perLine == 0 {
			out.WriteString("\n")
		}
	}
	out.WriteString("\n")
	_, err := io.WriteString(w, out.String())
	return err
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// EncodeSnapshot writes the snapshot as canonical CBOR.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	buf, err := cborEncMode.Marshal(s)
	if err != nil {
		return fmt.Errorf("vm: marshal snapshot: %w", err)
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("vm: write snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := cbor.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("vm: unmarshal snapshot: %w", err)
	}
	if s.Magic != op.SnapshotMagic {
		return Snapshot{}, fmt.Errorf("vm: invalid snapshot magic 0x%x", s.Magic)
	}
	if len(s.Cells) != s.HighWater+1 {
		return Snapshot{}, fmt.Errorf("vm: snapshot has %d cells, expected %d", len(s.Cells), s.HighWater+1)
	}
	return s, nil
}
