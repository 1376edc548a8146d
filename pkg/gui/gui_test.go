package gui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

func newScreen(t testing.TB) tcell.SimulationScreen {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(Width, Height)
	return s
}

func newSnapshot(types ...mino.PieceType) (*game.Session, game.Snapshot) {
	s := game.NewSession(
		game.WithSource(mino.NewSequence(types...)),
		game.WithClock(game.NewManualClock(time.Date(2021, 2, 21, 12, 0, 0, 0, time.UTC))),
	)
	return s, s.Snapshot()
}

func cellAt(s tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, w, _ := s.GetContents()
	return cells[y*w+x]
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	c := cellAt(s, x, y)
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func lineAt(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return sb.String()
}

func TestRender(t *testing.T) {
	scr := newScreen(t)
	defer scr.Fini()

	_, snap := newSnapshot(mino.PieceI, mino.PieceO)
	Render(scr, 0, 0, View{Snap: snap, Theme: ThemeClassic, Nick: "happy-gopher", Sound: true})
	scr.Show()

	assert.True(t, strings.HasPrefix(lineAt(scr, 0), "blockterm - happy-gopher"))
	assert.Equal(t, tcell.RuneULCorner, runeAt(scr, 0, 1))
	assert.Equal(t, tcell.RuneLRCorner, runeAt(scr, boardWidth-1, boardHeight))

	// I piece spawns at x=3 on the top row
	for x := 7; x < 15; x++ {
		assert.Equal(t, '█', runeAt(scr, x, 2), "column %d", x)
	}
	fg, _, _ := cellAt(scr, 7, 2).Style.Decompose()
	assert.Equal(t, ThemeClassic.PieceI, fg)

	assert.Equal(t, '.', runeAt(scr, 2, 2))
	assert.Equal(t, '.', runeAt(scr, 2, 21))

	assert.Contains(t, lineAt(scr, previewTop), "Next")
	for _, p := range []struct{ x, y int }{{27, 3}, {30, 3}, {27, 4}, {30, 4}} {
		assert.Equal(t, '█', runeAt(scr, p.x, p.y), "preview %v", p)
	}
	assert.NotEqual(t, '█', runeAt(scr, 25, 2))

	assert.Contains(t, lineAt(scr, statsTop), "Score")
	assert.Contains(t, lineAt(scr, statsTop+1), "0")
	assert.Contains(t, lineAt(scr, statsTop+3), "1")
	assert.Contains(t, lineAt(scr, controlsTop+2), "[P] Pause Game")
	assert.Contains(t, lineAt(scr, controlsTop+4), "[S] Sound on")
	assert.Contains(t, lineAt(scr, 1+boardHeight), "rotate")
}

func TestRenderStates(t *testing.T) {
	scr := newScreen(t)
	defer scr.Fini()

	s, _ := newSnapshot(mino.PieceO)
	s.TogglePause()
	Render(scr, 0, 0, View{Snap: s.Snapshot(), Theme: ThemeMono})
	scr.Show()
	assert.Contains(t, lineAt(scr, controlsTop), "PAUSED")
	assert.Contains(t, lineAt(scr, controlsTop+2), "[P] Resume Game")
	assert.Contains(t, lineAt(scr, controlsTop+4), "[S] Sound off")
	assert.True(t, strings.HasPrefix(lineAt(scr, 0), "blockterm"))
	assert.NotContains(t, lineAt(scr, 0), " - ")

	snap := s.Snapshot()
	snap.State = game.StateGameOver
	Render(scr, 0, 0, View{Snap: snap, Theme: ThemeMono})
	scr.Show()
	assert.Contains(t, lineAt(scr, controlsTop), "GAME OVER")
}

func TestRenderFlash(t *testing.T) {
	scr := newScreen(t)
	defer scr.Fini()

	_, snap := newSnapshot(mino.PieceO)
	row := make([]mino.Block, mino.BoardWidth)
	for i := range row {
		row[i] = mino.BlockT
	}
	snap.Clearing = []game.ClearedRow{{Y: 19, Blocks: row}}
	snap.Board[19][0] = mino.BlockZ

	Render(scr, 0, 0, View{Snap: snap, Theme: ThemeClassic})
	scr.Show()

	// board row 19 is screen row 21; the block that slid into it stays visible
	live := cellAt(scr, 1, 21)
	require.NotEmpty(t, live.Runes)
	assert.Equal(t, '█', live.Runes[0])
	fg, bg, _ := live.Style.Decompose()
	assert.Equal(t, ThemeClassic.PieceZ, fg)
	assert.Equal(t, ThemeClassic.Flash, bg)

	for col := 1; col < mino.BoardWidth; col++ {
		c := cellAt(scr, 1+col*cellWidth, 21)
		require.NotEmpty(t, c.Runes)
		assert.Equal(t, '▓', c.Runes[0])
		_, bg, _ := c.Style.Decompose()
		assert.Equal(t, ThemeClassic.Flash, bg)
	}
	assert.Equal(t, '.', runeAt(scr, 2, 20))
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want event.GameAction
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), event.ActionMoveLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone), event.ActionMoveLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), event.ActionMoveRight},
		{tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModNone), event.ActionMoveRight},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), event.ActionSoftDrop},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), event.ActionRotate},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), event.ActionHardDrop},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), event.ActionPause},
		{tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), event.ActionReset},
		{tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), event.ActionToggleSound},
	}

	for _, tt := range tests {
		got, ok := ActionFor(tt.ev)
		assert.True(t, ok, tt.ev.Name())
		assert.Equal(t, tt.want, got, tt.ev.Name())
	}

	_, ok := ActionFor(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.False(t, ok)
	_, ok = ActionFor(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.False(t, ok)

	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
}

func TestHandleKeypress(t *testing.T) {
	var sent []event.GameAction
	sound := true
	g := NewGUI(ThemeClassic, "", sound,
		func(a event.GameAction) { sent = append(sent, a) },
		func() bool { sound = !sound; return sound })

	s, snap := newSnapshot(mino.PieceO)
	g.Draw(event.DrawAll, snap)

	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, []event.GameAction{event.ActionMoveLeft, event.ActionHardDrop}, sent)

	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)))
	assert.False(t, g.View().Sound)
	assert.Len(t, sent, 2, "sound is handled locally")

	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Equal(t, ev, g.handleKeypress(ev))

	s.TogglePause()
	g.Draw(event.DrawState, s.Snapshot())
	ev = tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	assert.Equal(t, ev, g.handleKeypress(ev), "arrows move between modal buttons")
	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.Equal(t, event.ActionPause, sent[len(sent)-1])
}

func TestDrawDoesNotBlock(t *testing.T) {
	g := NewGUI(ThemeClassic, "", false, func(event.GameAction) {}, nil)

	_, snap := newSnapshot(mino.PieceT)
	for i := 0; i < game.CommandQueueSize*3; i++ {
		snap.Score = i
		g.Draw(event.DrawBoard, snap)
	}

	assert.Equal(t, game.CommandQueueSize*3-1, g.View().Snap.Score)
	assert.Len(t, g.redraw, game.CommandQueueSize)
	assert.False(t, g.ToggleSound())
}

func TestThemes(t *testing.T) {
	for _, want := range Themes {
		got, err := LookupTheme(want.Name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := LookupTheme("neon")
	assert.Error(t, err)

	hex := ThemeClassic.Hex()
	assert.Equal(t, "#0", hex.Background)
	assert.Equal(t, "#00f0f0", hex.PieceI)
	assert.Equal(t, ThemeClassic.Empty, ThemeClassic.BlockColor(mino.BlockNone))
	assert.Equal(t, ThemeClassic.PieceL, ThemeClassic.BlockColor(mino.BlockL))
}

func BenchmarkRender(b *testing.B) {
	scr := newScreen(b)
	defer scr.Fini()

	_, snap := newSnapshot(mino.PieceI, mino.PieceT)
	v := View{Snap: snap, Theme: ThemeClassic}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render(scr, 0, 0, v)
	}
}
