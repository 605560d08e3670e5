package vm

import "go.creack.net/brainfuck/op"

// Tape is the memory bank of a run.
// It grows to the right by whole chunks and is bounded at cell 0 on the left.
type Tape struct {
	cells     []byte
	cursor    int
	highWater int // Highest cursor value reached.
	chunkSize int
}

// NewTape allocates a zeroed tape of chunkSize cells.
// A non-positive chunkSize falls back to op.ChunkSize.
func NewTape(chunkSize int) *Tape {
	if chunkSize <= 0 {
		chunkSize = op.ChunkSize
	}
	return &Tape{
		cells:     make([]byte, chunkSize),
		chunkSize: chunkSize,
	}
}

// Get returns the current cell.
func (t *Tape) Get() byte { return t.cells[t.cursor] }

// Set overwrites the current cell.
func (t *Tape) Set(b byte) { t.cells[t.cursor] = b }

// Increment and Decrement wrap around 0/255.
func (t *Tape) Increment() { t.cells[t.cursor]++ }
func (t *Tape) Decrement() { t.cells[t.cursor]-- }

// MoveRight advances the cursor and reports whether the tape had to grow.
func (t *Tape) MoveRight() bool {
	t.cursor++
	grew := false
	// Once we land on the last allocated cell, append a new chunk.
	if t.cursor >= len(t.cells)-1 {
		t.cells = append(t.cells, make([]byte, t.chunkSize)...)
		grew = true
	}
	if t.cursor > t.highWater {
		t.highWater = t.cursor
	}
	return grew
}

// MoveLeft moves the cursor back, failing at cell 0.
func (t *Tape) MoveLeft() error {
	if t.cursor == 0 {
		return &BoundaryError{}
	}
	t.cursor--
	return nil
}

func (t *Tape) Cursor() int    { return t.cursor }
func (t *Tape) HighWater() int { return t.highWater }
func (t *Tape) Len() int       { return len(t.cells) }

// Cell returns the value at index i, 0 when out of the allocated range.
func (t *Tape) Cell(i int) byte {
	if i < 0 || i >= len(t.cells) {
		return 0
	}
	return t.cells[i]
}

// Visited returns a copy of the cells from 0 to the high-water mark included.
func (t *Tape) Visited() []byte {
	out := make([]byte, t.highWater+1)
	copy(out, t.cells)
	return out
}
