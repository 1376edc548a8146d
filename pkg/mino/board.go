package mino

import (
	"fmt"
	"strings"
)

const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Board is the playfield of locked blocks. The falling piece is never stored
// in the board.
type Board struct {
	cells [BoardHeight][BoardWidth]Block
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Width() int  { return BoardWidth }
func (b *Board) Height() int { return BoardHeight }

func (b *Board) InBounds(x int, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

// Block returns the block at x,y. Cells outside the board read as BlockNone.
func (b *Board) Block(x int, y int) Block {
	if !b.InBounds(x, y) {
		return BlockNone
	}

	return b.cells[y][x]
}

func (b *Board) Empty(loc Point) bool {
	return b.Block(loc.X, loc.Y) == BlockNone
}

// SetBlock stores block at x,y. It returns false when the cell is outside
// the board or already occupied.
func (b *Board) SetBlock(x int, y int, block Block) bool {
	if !b.InBounds(x, y) || b.cells[y][x] != BlockNone {
		return false
	}

	b.cells[y][x] = block
	return true
}

func (b *Board) LineFilled(y int) bool {
	if y < 0 || y >= BoardHeight {
		return false
	}

	for x := 0; x < BoardWidth; x++ {
		if b.cells[y][x] == BlockNone {
			return false
		}
	}

	return true
}

// Place writes the filled cells of p into the board. Cells above the top
// edge are dropped.
func (b *Board) Place(p *Piece) {
	block := p.Block()
	for _, c := range p.Cells() {
		if c.Y < 0 {
			continue
		}

		if b.InBounds(c.X, c.Y) {
			b.cells[c.Y][c.X] = block
		}
	}
}

// ClearFilled removes every full row, scanning from the bottom. Rows above a
// removed row shift down by one and an empty row enters at the top. It
// returns the indices the removed rows had before the call, bottom first.
func (b *Board) ClearFilled() []int {
	var cleared []int

	for y := BoardHeight - 1; y >= 0; {
		if !b.LineFilled(y) {
			y--
			continue
		}

		cleared = append(cleared, y-len(cleared))

		for my := y; my > 0; my-- {
			b.cells[my] = b.cells[my-1]
		}
		b.cells[0] = [BoardWidth]Block{}
	}

	return cleared
}

func (b *Board) Clear() {
	b.cells = [BoardHeight][BoardWidth]Block{}
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Rows returns a copy of the board's rows, top first.
func (b *Board) Rows() [][]Block {
	rows := make([][]Block, BoardHeight)
	for y := range b.cells {
		rows[y] = make([]Block, BoardWidth)
		copy(rows[y], b.cells[y][:])
	}

	return rows
}

// Render draws the board top first, one letter per cell and '.' for empty
// cells.
func (b *Board) Render() string {
	var s strings.Builder
	for y := 0; y < BoardHeight; y++ {
		if y > 0 {
			s.WriteRune('\n')
		}

		for x := 0; x < BoardWidth; x++ {
			s.WriteRune(b.cells[y][x].Letter())
		}
	}

	return s.String()
}

// ParseBoard reads the Render format. Fewer than BoardHeight rows are
// aligned to the bottom of the board.
func ParseBoard(s string) (*Board, error) {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	if len(lines) > BoardHeight {
		return nil, fmt.Errorf("too many rows: %d", len(lines))
	}

	b := NewBoard()
	offset := BoardHeight - len(lines)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != BoardWidth {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", i, BoardWidth, len(line))
		}

		for x, c := range line {
			if c == '.' {
				continue
			}

			t, err := ParsePieceType(string(c))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}

			b.cells[offset+i][x] = BlockFor(t)
		}
	}

	return b, nil
}

// IsValid reports whether shape s placed with its top-left corner at x,y
// fits on the board. Cells above the top edge are allowed.
func IsValid(s Shape, x int, y int, b *Board) bool {
	for py := range s {
		for px := range s[py] {
			if !s[py][px] {
				continue
			}

			ax, ay := x+px, y+py
			if ax < 0 || ax >= BoardWidth || ay >= BoardHeight {
				return false
			}

			if ay >= 0 && b.cells[ay][ax] != BlockNone {
				return false
			}
		}
	}

	return true
}

// Fits reports whether p is valid at its current position and rotation.
func (b *Board) Fits(p *Piece) bool {
	return IsValid(p.Shape(), p.X, p.Y, b)
}
