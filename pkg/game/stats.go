package game

import "time"

const (
	InitialDropInterval = 1000 * time.Millisecond
	MinDropInterval     = 100 * time.Millisecond
	DropIntervalStep    = 100 * time.Millisecond

	LinesPerLevel  = 10
	PointsPerLine  = 100
	SoftDropPoints = 1
	HardDropPoints = 2
)

// Stats tracks score, cleared lines and level. None of them ever decrease
// during a game.
type Stats struct {
	Score        int
	Lines        int
	Level        int
	DropInterval time.Duration
}

func NewStats() Stats {
	return Stats{Level: 1, DropInterval: InitialDropInterval}
}

// DropIntervalFor returns the automatic drop interval at level.
func DropIntervalFor(level int) time.Duration {
	d := InitialDropInterval - time.Duration(level-1)*DropIntervalStep
	if d < MinDropInterval {
		return MinDropInterval
	}

	return d
}

func (s *Stats) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// AddLines scores k cleared lines at the current level and reports whether
// the level went up.
func (s *Stats) AddLines(k int) bool {
	if k <= 0 {
		return false
	}

	s.Score += k * PointsPerLine * s.Level
	s.Lines += k

	if s.Lines >= s.Level*LinesPerLevel {
		s.Level++
		s.DropInterval = DropIntervalFor(s.Level)
		return true
	}

	return false
}
