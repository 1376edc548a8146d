package mino

import (
	"fmt"
	"strings"
)

type PieceType int

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	PieceTypes = 7
)

// AllPieceTypes lists every piece type in catalog order.
var AllPieceTypes = []PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

var pieceNames = [PieceTypes]string{"I", "O", "T", "S", "Z", "J", "L"}

// Display colors, 0xRRGGBB.
var pieceColors = [PieceTypes]int32{
	PieceI: 0x00f0f0,
	PieceO: 0xf0f000,
	PieceT: 0xa000f0,
	PieceS: 0x00f000,
	PieceZ: 0xf00000,
	PieceJ: 0x0000f0,
	PieceL: 0xf0a000,
}

func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

func (t PieceType) String() string {
	if !t.Valid() {
		return "?"
	}

	return pieceNames[t]
}

// Color returns the piece's display color as 0xRRGGBB.
func (t PieceType) Color() int32 {
	if !t.Valid() {
		return 0
	}

	return pieceColors[t]
}

func (t PieceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown piece type %d", int(t))
	}

	return []byte(t.String()), nil
}

func (t *PieceType) UnmarshalText(text []byte) error {
	pt, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}

	*t = pt
	return nil
}

// ParsePieceType accepts a piece letter in either case.
func ParsePieceType(s string) (PieceType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range pieceNames {
		if name == s {
			return PieceType(i), nil
		}
	}

	return 0, fmt.Errorf("unknown piece type %q", s)
}

// Shape is one rotation state of a piece: a matrix of filled cells in
// piece-local coordinates, indexed [row][column].
type Shape [][]bool

func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}

	return len(s[0])
}

func (s Shape) Height() int { return len(s) }

func (s Shape) Filled(x int, y int) bool {
	if y < 0 || y >= len(s) || x < 0 || x >= len(s[y]) {
		return false
	}

	return s[y][x]
}

// Cells returns the filled cells in row-major order.
func (s Shape) Cells() []Point {
	var cells []Point
	for y := range s {
		for x := range s[y] {
			if s[y][x] {
				cells = append(cells, Point{x, y})
			}
		}
	}

	return cells
}

func (s Shape) Render() string {
	var b strings.Builder
	for y := range s {
		if y > 0 {
			b.WriteRune('\n')
		}

		for x := range s[y] {
			if s[y][x] {
				b.WriteRune('X')
			} else {
				b.WriteRune(' ')
			}
		}
	}

	return b.String()
}

func shape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, c := range row {
			s[y][x] = c == '1'
		}
	}

	return s
}

var catalog = [PieceTypes][]Shape{
	PieceI: {
		shape("1111"),
		shape("1", "1", "1", "1"),
	},
	PieceO: {
		shape("11", "11"),
	},
	PieceT: {
		shape("010", "111"),
		shape("10", "11", "10"),
		shape("111", "010"),
		shape("01", "11", "01"),
	},
	PieceS: {
		shape("011", "110"),
		shape("10", "11", "01"),
	},
	PieceZ: {
		shape("110", "011"),
		shape("01", "11", "10"),
	},
	PieceJ: {
		shape("100", "111"),
		shape("11", "10", "10"),
		shape("111", "001"),
		shape("01", "01", "11"),
	},
	PieceL: {
		shape("001", "111"),
		shape("10", "10", "11"),
		shape("111", "100"),
		shape("11", "01", "01"),
	},
}

// Shapes returns the rotation states of t in rotation order. The returned
// shapes are shared and must not be modified.
func Shapes(t PieceType) []Shape {
	if !t.Valid() {
		return nil
	}

	return catalog[t]
}

// Rotations returns the number of distinct rotation states of t.
func Rotations(t PieceType) int {
	return len(Shapes(t))
}
