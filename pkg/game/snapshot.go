package game

import (
	"fmt"

	"github.com/qnkhuat/blockterm/pkg/mino"
)

// PreviewSize is the width and height of the next-piece preview box.
const PreviewSize = 4

type State int

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = StateRunning
	case "paused":
		*s = StatePaused
	case "gameover":
		*s = StateGameOver
	default:
		return fmt.Errorf("unknown state %q", text)
	}

	return nil
}

// PieceSnapshot is the falling piece as seen by sinks.
type PieceSnapshot struct {
	Type     mino.PieceType `json:"type"`
	Rotation int            `json:"rotation"`
	X        int            `json:"x"`
	Y        int            `json:"y"`
	Cells    []mino.Point   `json:"cells"`
}

// ClearedRow is a removed row kept on screen while it flashes. Y is the row
// index the blocks had before removal.
type ClearedRow struct {
	Y      int          `json:"y"`
	Blocks []mino.Block `json:"blocks"`
}

// Snapshot is a deep copy of a session's visible state.
type Snapshot struct {
	State    State          `json:"state"`
	Board    [][]mino.Block `json:"board"`
	Piece    *PieceSnapshot `json:"piece,omitempty"`
	Next     mino.PieceType `json:"next"`
	Score    int            `json:"score"`
	Lines    int            `json:"lines"`
	Level    int            `json:"level"`
	Interval int64          `json:"interval"`
	Clearing []ClearedRow   `json:"clearing,omitempty"`
}

// Composite returns the board with the falling piece drawn in. Cells of
// the piece above the top edge are left out.
func (s Snapshot) Composite() [][]mino.Block {
	out := make([][]mino.Block, len(s.Board))
	for y := range s.Board {
		out[y] = make([]mino.Block, len(s.Board[y]))
		copy(out[y], s.Board[y])
	}

	if s.Piece == nil {
		return out
	}

	block := mino.BlockFor(s.Piece.Type)
	for _, c := range s.Piece.Cells {
		if c.Y < 0 || c.Y >= len(out) || c.X < 0 || c.X >= len(out[c.Y]) {
			continue
		}

		out[c.Y][c.X] = block
	}

	return out
}

// Preview returns the next piece's first rotation centered in a
// PreviewSize box.
func (s Snapshot) Preview() [PreviewSize][PreviewSize]mino.Block {
	var box [PreviewSize][PreviewSize]mino.Block

	shapes := mino.Shapes(s.Next)
	if len(shapes) == 0 {
		return box
	}

	shape := shapes[0]
	offX := (PreviewSize - shape.Width()) / 2
	offY := (PreviewSize - shape.Height()) / 2
	block := mino.BlockFor(s.Next)
	for _, c := range shape.Cells() {
		box[offY+c.Y][offX+c.X] = block
	}

	return box
}

// Flashing reports whether row y is part of the line clear overlay.
func (s Snapshot) Flashing(y int) ([]mino.Block, bool) {
	for _, row := range s.Clearing {
		if row.Y == y {
			return row.Blocks, true
		}
	}

	return nil, false
}

// Cell is one board cell as it is drawn.
type Cell struct {
	Block mino.Block

	// Flash is set on rows being cleared. Cleared holds the removed block
	// shown where no live block covers the cell.
	Flash   bool
	Cleared mino.Block
}

// Cells returns the board as drawn: the composite, with rows being cleared
// flashing behind it. Live blocks always stay visible.
func (s Snapshot) Cells() [][]Cell {
	composite := s.Composite()

	out := make([][]Cell, len(composite))
	for y := range composite {
		out[y] = make([]Cell, len(composite[y]))
		flash, flashing := s.Flashing(y)
		for x, b := range composite[y] {
			out[y][x] = Cell{Block: b, Flash: flashing}
			if flashing && x < len(flash) {
				out[y][x].Cleared = flash[x]
			}
		}
	}

	return out
}

// PauseLabel is the caption of the pause control.
func (s Snapshot) PauseLabel() string {
	if s.State == StatePaused {
		return "Resume Game"
	}

	return "Pause Game"
}
