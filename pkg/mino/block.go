package mino

import "fmt"

// Block is the content of a single board cell.
type Block int

const (
	BlockNone Block = iota
	BlockI
	BlockO
	BlockT
	BlockS
	BlockZ
	BlockJ
	BlockL
)

// BlockFor returns the block a locked piece of type t leaves behind.
func BlockFor(t PieceType) Block {
	if !t.Valid() {
		return BlockNone
	}

	return Block(t) + 1
}

// PieceType returns the type that locked this block. The second value is
// false for BlockNone.
func (b Block) PieceType() (PieceType, bool) {
	if b <= BlockNone || b > BlockL {
		return 0, false
	}

	return PieceType(b - 1), true
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockI, BlockO, BlockT, BlockS, BlockZ, BlockJ, BlockL:
		return '█'
	default:
		return '?'
	}
}

// Letter returns the piece letter of the block, '.' when empty.
func (b Block) Letter() rune {
	t, ok := b.PieceType()
	if !ok {
		return '.'
	}

	return rune(t.String()[0])
}

func (b Block) String() string {
	return string(b.Rune())
}

// MarshalText encodes a block as its piece letter, or an empty string when
// the cell is empty.
func (b Block) MarshalText() ([]byte, error) {
	if b == BlockNone {
		return []byte{}, nil
	}

	t, ok := b.PieceType()
	if !ok {
		return nil, fmt.Errorf("unknown block %d", int(b))
	}

	return []byte(t.String()), nil
}

func (b *Block) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*b = BlockNone
		return nil
	}

	t, err := ParsePieceType(string(text))
	if err != nil {
		return err
	}

	*b = BlockFor(t)
	return nil
}
