package game

import (
	"fmt"
	"time"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

// ClearDelay is how long cleared rows flash before they disappear.
const ClearDelay = 500 * time.Millisecond

const (
	LogStandard = iota
	LogDebug
	LogVerbose
)

// Session is a single-player game. It is not safe for concurrent use; a
// Loop owns it and everything else sees Snapshots.
type Session struct {
	Board *mino.Board
	Piece *mino.Piece
	Next  mino.PieceType
	Stats Stats
	State State

	LogLevel int

	hasNext  bool
	lastDrop time.Time

	clearing []ClearedRow
	clearGen int

	matrix    []mino.Point
	source    mino.Source
	clock     Clock
	scheduler *Scheduler
	renderer  Renderer
	sounder   Sounder
	logger    chan<- string
}

type Option func(*Session)

func WithSource(src mino.Source) Option {
	return func(s *Session) { s.source = src }
}

func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderer = r }
}

func WithSounder(snd Sounder) Option {
	return func(s *Session) { s.sounder = snd }
}

// WithLogger sends log lines at or below level to logger. Lines are dropped
// when logger is full.
func WithLogger(logger chan<- string, level int) Option {
	return func(s *Session) {
		s.logger = logger
		s.LogLevel = level
	}
}

// WithMatrix fills the given cells on every new board.
func WithMatrix(cells []mino.Point) Option {
	return func(s *Session) { s.matrix = cells }
}

// NewSession returns a running game with its first piece spawned.
func NewSession(options ...Option) *Session {
	s := &Session{
		Board:     mino.NewBoard(),
		scheduler: NewScheduler(),
	}

	for _, o := range options {
		o(s)
	}

	if s.source == nil {
		s.source = mino.NewRandomizer(0)
	}
	if s.clock == nil {
		s.clock = SystemClock()
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.sounder == nil {
		s.sounder = nopSounder{}
	}

	s.reset()
	return s
}

func (s *Session) Log(level int, a ...interface{}) {
	if s.logger == nil || level > s.LogLevel {
		return
	}

	select {
	case s.logger <- fmt.Sprint(a...):
	default:
	}
}

func (s *Session) Logf(level int, format string, a ...interface{}) {
	if s.logger == nil || level > s.LogLevel {
		return
	}

	select {
	case s.logger <- fmt.Sprintf(format, a...):
	default:
	}
}

func (s *Session) Now() time.Time {
	return s.clock.Now()
}

func (s *Session) Draw(obj event.DrawObject) {
	s.renderer.Draw(obj, s.Snapshot())
}

// Reset starts a new game. Pending scheduled tasks still run.
func (s *Session) Reset() {
	s.reset()
	s.Log(LogStandard, "New game")
	s.Draw(event.DrawAll)
}

func (s *Session) reset() {
	s.Board.Clear()
	for _, p := range s.matrix {
		s.Board.SetBlock(p.X, p.Y, mino.BlockI)
	}

	s.Stats = NewStats()
	s.State = StateRunning
	s.hasNext = false
	s.Piece = nil
	s.clearing = nil
	s.clearGen++
	s.lastDrop = s.clock.Now()

	s.spawn()
}

func (s *Session) spawn() {
	if !s.hasNext {
		s.Next = s.source.Take()
		s.hasNext = true
	}

	t := s.Next
	s.Next = s.source.Take()

	s.Piece = mino.NewPiece(t, mino.SpawnPoint(t, s.Board.Width()))
	s.Log(LogVerbose, "Spawned ", s.Piece)

	if !s.Board.Fits(s.Piece) {
		s.setGameOver()
	}
}

func (s *Session) setGameOver() {
	if s.State == StateGameOver {
		return
	}

	s.State = StateGameOver
	s.sounder.Play(event.SoundGameOver)
	s.Logf(LogStandard, "Game over - score %d, lines %d, level %d", s.Stats.Score, s.Stats.Lines, s.Stats.Level)
}

func (s *Session) move(dx int, dy int) bool {
	if s.Piece == nil || !mino.IsValid(s.Piece.Shape(), s.Piece.X+dx, s.Piece.Y+dy, s.Board) {
		return false
	}

	s.Piece.X += dx
	s.Piece.Y += dy

	if dx != 0 {
		s.sounder.Play(event.SoundMove)
	}

	return true
}

// Move shifts the falling piece when the game is running and the target
// position is valid.
func (s *Session) Move(dx int, dy int) bool {
	if s.State != StateRunning || !s.move(dx, dy) {
		return false
	}

	s.Draw(event.DrawBoard)
	return true
}

// Rotate turns the falling piece clockwise in place. There are no wall
// kicks: a blocked rotation is rejected.
func (s *Session) Rotate() bool {
	if s.State != StateRunning || s.Piece == nil || !mino.IsValid(s.Piece.RotatedShape(), s.Piece.X, s.Piece.Y, s.Board) {
		return false
	}

	s.Piece.Rotation = s.Piece.NextRotation()
	s.sounder.Play(event.SoundRotate)
	s.Draw(event.DrawBoard)

	return true
}

// SoftDrop lowers the piece by one row, scoring a point on success.
func (s *Session) SoftDrop() bool {
	if s.State != StateRunning || !s.move(0, 1) {
		return false
	}

	s.Stats.AddScore(SoftDropPoints)
	s.Draw(event.DrawBoard)
	s.Draw(event.DrawStats)

	return true
}

// HardDrop drops the piece as far as it goes and locks it. It returns the
// number of rows dropped.
func (s *Session) HardDrop() int {
	if s.State != StateRunning {
		return 0
	}

	rows := 0
	for s.move(0, 1) {
		s.Stats.AddScore(HardDropPoints)
		rows++
	}

	s.Lock()
	return rows
}

// Lock writes the falling piece into the board, clears full rows and spawns
// the next piece. It only acts while the game is running.
func (s *Session) Lock() {
	if s.Piece == nil || s.State != StateRunning {
		return
	}

	s.Board.Place(s.Piece)
	s.sounder.Play(event.SoundDrop)
	s.Log(LogVerbose, "Locked ", s.Piece)

	s.clearLines()
	s.spawn()
	s.Draw(event.DrawAll)
}

func (s *Session) clearLines() {
	before := s.Board.Rows()

	cleared := s.Board.ClearFilled()
	if len(cleared) == 0 {
		return
	}

	s.sounder.Play(event.SoundClear)
	if s.Stats.AddLines(len(cleared)) {
		s.Logf(LogStandard, "Level %d", s.Stats.Level)
	}
	s.Logf(LogDebug, "Cleared %d line(s)", len(cleared))

	rows := make([]ClearedRow, len(cleared))
	for i, y := range cleared {
		rows[i] = ClearedRow{Y: y, Blocks: before[y]}
	}
	s.clearing = rows
	s.clearGen++

	gen := s.clearGen
	s.scheduler.After(s.clock.Now(), ClearDelay, func() {
		if s.clearGen != gen {
			return
		}

		s.clearing = nil
		s.Draw(event.DrawClearing)
	})
}

// TogglePause flips between running and paused. It does nothing once the
// game is over.
func (s *Session) TogglePause() bool {
	switch s.State {
	case StateRunning:
		s.State = StatePaused
	case StatePaused:
		s.State = StateRunning
	default:
		return false
	}

	s.Draw(event.DrawState)
	return true
}

// Tick advances the game to now. Scheduled tasks run in every state; the
// piece only falls while running.
func (s *Session) Tick(now time.Time) {
	s.scheduler.Run(now)

	if s.State != StateRunning {
		return
	}

	if now.Sub(s.lastDrop) > s.Stats.DropInterval {
		if !s.Move(0, 1) {
			s.Lock()
		}

		s.lastDrop = now
	}
}

// ProcessAction applies a player action. It reports whether the action
// changed anything.
func (s *Session) ProcessAction(a event.GameAction) bool {
	s.Log(LogVerbose, "Action ", a)

	switch a {
	case event.ActionReset:
		s.Reset()
		return true
	case event.ActionPause:
		return s.TogglePause()
	}

	if s.State != StateRunning {
		return false
	}

	switch a {
	case event.ActionMoveLeft:
		return s.Move(-1, 0)
	case event.ActionMoveRight:
		return s.Move(1, 0)
	case event.ActionSoftDrop:
		return s.SoftDrop()
	case event.ActionHardDrop:
		s.HardDrop()
		return true
	case event.ActionRotate:
		return s.Rotate()
	default:
		s.Log(LogDebug, "Ignored action ", a)
		return false
	}
}

// PendingTasks returns the number of scheduled tasks not yet run.
func (s *Session) PendingTasks() int {
	return s.scheduler.Pending()
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:    s.State,
		Board:    s.Board.Rows(),
		Next:     s.Next,
		Score:    s.Stats.Score,
		Lines:    s.Stats.Lines,
		Level:    s.Stats.Level,
		Interval: s.Stats.DropInterval.Milliseconds(),
	}

	if s.Piece != nil {
		snap.Piece = &PieceSnapshot{
			Type:     s.Piece.Type,
			Rotation: s.Piece.Rotation,
			X:        s.Piece.X,
			Y:        s.Piece.Y,
			Cells:    s.Piece.Cells(),
		}
	}

	if len(s.clearing) > 0 {
		snap.Clearing = make([]ClearedRow, len(s.clearing))
		for i, row := range s.clearing {
			blocks := make([]mino.Block, len(row.Blocks))
			copy(blocks, row.Blocks)
			snap.Clearing[i] = ClearedRow{Y: row.Y, Blocks: blocks}
		}
	}

	return snap
}
