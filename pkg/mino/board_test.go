package mino

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	occupied, err := ParseBoard("" +
		"..........\n" +
		"....Z.....")
	require.NoError(t, err)

	horizontal := Shapes(PieceI)[0]
	vertical := Shapes(PieceI)[1]

	tests := []struct {
		name  string
		shape Shape
		x, y  int
		board *Board
		want  bool
	}{
		{"origin", horizontal, 0, 0, NewBoard(), true},
		{"left wall", horizontal, -1, 0, NewBoard(), false},
		{"right edge", horizontal, 6, 0, NewBoard(), true},
		{"right wall", horizontal, 7, 0, NewBoard(), false},
		{"bottom row", horizontal, 0, 19, NewBoard(), true},
		{"below floor", horizontal, 0, 20, NewBoard(), false},
		{"vertical bottom", vertical, 9, 16, NewBoard(), true},
		{"vertical below floor", vertical, 9, 17, NewBoard(), false},
		{"partly above top", vertical, 0, -3, NewBoard(), true},
		{"fully above top", vertical, 5, -10, NewBoard(), true},
		{"above top outside wall", vertical, 10, -10, NewBoard(), false},
		{"collision", horizontal, 2, 19, occupied, false},
		{"beside block", horizontal, 5, 19, occupied, true},
		{"on top of block", horizontal, 2, 18, occupied, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.shape, tt.x, tt.y, tt.board))
		})
	}
}

func TestBoardSetBlock(t *testing.T) {
	b := NewBoard()

	assert.True(t, b.SetBlock(0, 0, BlockT))
	assert.False(t, b.SetBlock(0, 0, BlockI), "occupied cell")
	assert.False(t, b.SetBlock(-1, 0, BlockI))
	assert.False(t, b.SetBlock(0, BoardHeight, BlockI))
	assert.Equal(t, BlockT, b.Block(0, 0))
	assert.Equal(t, BlockNone, b.Block(BoardWidth, 0))
	assert.False(t, b.Empty(Point{0, 0}))

	b.Clear()
	assert.True(t, b.Empty(Point{0, 0}))
}

func TestBoardPlace(t *testing.T) {
	b := NewBoard()

	p := NewPiece(PieceI, Point{0, -2})
	p.Rotation = 1
	b.Place(p)

	assert.Equal(t, BlockI, b.Block(0, 0))
	assert.Equal(t, BlockI, b.Block(0, 1))
	assert.Equal(t, BlockNone, b.Block(0, 2))
	assert.False(t, b.Fits(p))
}

func TestBoardClearFilled(t *testing.T) {
	b, err := ParseBoard("" +
		"T.........\n" +
		"LLLLLLLLLL\n" +
		"S.S.......\n" +
		"JJJJJJJJJJ")
	require.NoError(t, err)

	cleared := b.ClearFilled()
	assert.Equal(t, []int{19, 17}, cleared)

	want, err := ParseBoard("" +
		"T.........\n" +
		"S.S.......")
	require.NoError(t, err)
	assert.Equal(t, want.Render(), b.Render())

	assert.Len(t, b.Rows(), BoardHeight)
	for _, row := range b.Rows() {
		assert.Len(t, row, BoardWidth)
	}
}

func TestBoardClearStack(t *testing.T) {
	b, err := ParseBoard("" +
		"IIIIIIIIII\n" +
		"OOOOOOOOOO\n" +
		"TTTTTTTTTT\n" +
		"ZZZZZZZZZZ")
	require.NoError(t, err)

	assert.Equal(t, []int{19, 18, 17, 16}, b.ClearFilled())
	assert.Equal(t, NewBoard().Render(), b.Render())
	assert.Empty(t, b.ClearFilled())
}

func TestBoardRender(t *testing.T) {
	b := NewBoard()
	b.SetBlock(0, BoardHeight-1, BlockS)

	lines := strings.Split(b.Render(), "\n")
	require.Len(t, lines, BoardHeight)
	assert.Equal(t, "S.........", lines[BoardHeight-1])
	assert.Equal(t, "..........", lines[0])

	_, err := ParseBoard("..........\nXXXXXXXXXX")
	assert.Error(t, err)
	_, err = ParseBoard("....")
	assert.Error(t, err)
}
