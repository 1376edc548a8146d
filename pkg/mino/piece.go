package mino

import "fmt"

// Piece is a falling piece. Point is the board position of the top-left
// corner of the current rotation's shape matrix.
type Piece struct {
	Point
	Type     PieceType
	Rotation int
}

func NewPiece(t PieceType, loc Point) *Piece {
	return &Piece{Point: loc, Type: t}
}

// SpawnPoint returns where a piece of type t enters an empty board of the
// given width: horizontally centered, top row.
func SpawnPoint(t PieceType, width int) Point {
	s := Shapes(t)
	if len(s) == 0 {
		return Point{width / 2, 0}
	}

	return Point{width/2 - s[0].Width()/2, 0}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s r%d %s", p.Type, p.Rotation, p.Point)
}

func (p *Piece) Shape() Shape {
	s := Shapes(p.Type)
	if len(s) == 0 {
		return nil
	}

	return s[p.Rotation%len(s)]
}

// NextRotation returns the rotation index after one clockwise turn.
func (p *Piece) NextRotation() int {
	n := Rotations(p.Type)
	if n == 0 {
		return 0
	}

	return (p.Rotation + 1) % n
}

// RotatedShape returns the shape the piece would have after one turn.
func (p *Piece) RotatedShape() Shape {
	s := Shapes(p.Type)
	if len(s) == 0 {
		return nil
	}

	return s[p.NextRotation()]
}

// Cells returns the board coordinates of the piece's filled cells.
func (p *Piece) Cells() []Point {
	cells := p.Shape().Cells()
	for i := range cells {
		cells[i] = cells[i].Add(p.Point)
	}

	return cells
}

func (p *Piece) Block() Block {
	return BlockFor(p.Type)
}

func (p *Piece) Copy() *Piece {
	if p == nil {
		return nil
	}

	c := *p
	return &c
}
