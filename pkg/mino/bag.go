package mino

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies piece types to a game.
type Source interface {
	Take() PieceType
}

// Randomizer draws each piece type independently and uniformly.
type Randomizer struct {
	seed int64
	rand *rand.Rand

	*sync.Mutex
}

// NewRandomizer returns a randomizer seeded with seed. A zero seed is
// replaced by the current time.
func NewRandomizer(seed int64) *Randomizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Randomizer{seed: seed, rand: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}
}

func (r *Randomizer) Seed() int64 {
	return r.seed
}

func (r *Randomizer) Take() PieceType {
	r.Lock()
	defer r.Unlock()

	return PieceType(r.rand.Intn(PieceTypes))
}

// Sequence cycles through a fixed list of piece types.
type Sequence struct {
	Types []PieceType

	i int
	*sync.Mutex
}

func NewSequence(types ...PieceType) *Sequence {
	return &Sequence{Types: types, Mutex: new(sync.Mutex)}
}

func (s *Sequence) Take() PieceType {
	s.Lock()
	defer s.Unlock()

	if len(s.Types) == 0 {
		return PieceO
	}

	t := s.Types[s.i]
	s.i = (s.i + 1) % len(s.Types)

	return t
}
