package gui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
)

const (
	pageGame     = "game"
	pagePaused   = "paused"
	pageGameOver = "gameover"
)

// GUI is the terminal front end. It renders snapshots handed to Draw and
// turns key presses into actions for the game loop.
type GUI struct {
	App   *tview.Application
	Pages *tview.Pages

	board    *tview.Box
	paused   *tview.Modal
	gameOver *tview.Modal

	send        func(event.GameAction)
	toggleSound func() bool

	view   View
	mu     sync.Mutex
	redraw chan event.DrawObject

	shownState game.State
}

// NewGUI builds the application. send receives every game action; toggleSound
// flips the audio sink and returns whether sound is now on.
func NewGUI(theme Theme, nick string, sound bool, send func(event.GameAction), toggleSound func() bool) *GUI {
	g := &GUI{
		App:         tview.NewApplication(),
		Pages:       tview.NewPages(),
		board:       tview.NewBox(),
		send:        send,
		toggleSound: toggleSound,
		view:        View{Theme: theme, Nick: nick, Sound: sound},
		redraw:      make(chan event.DrawObject, game.CommandQueueSize),
	}

	g.board.SetDrawFunc(func(screen tcell.Screen, x, y, w, h int) (int, int, int, int) {
		ox, oy := x, y
		if w > Width {
			ox += (w - Width) / 2
		}
		if h > Height {
			oy += (h - Height) / 2
		}

		Render(screen, ox, oy, g.View())
		return x, y, w, h
	})

	g.paused = tview.NewModal().
		SetText("Paused").
		AddButtons([]string{"Resume Game", "New Game"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			switch buttonLabel {
			case "Resume Game":
				g.send(event.ActionPause)
			case "New Game":
				g.send(event.ActionReset)
			}
		})

	g.gameOver = tview.NewModal().
		SetText("Game Over").
		AddButtons([]string{"Play Again", "Quit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			switch buttonLabel {
			case "Play Again":
				g.send(event.ActionReset)
			case "Quit":
				g.App.Stop()
			}
		})

	g.Pages.
		AddPage(pageGame, g.board, true, true).
		AddPage(pagePaused, g.paused, false, false).
		AddPage(pageGameOver, g.gameOver, false, false)

	g.App.SetInputCapture(g.handleKeypress)
	g.App.SetRoot(g.Pages, true).SetFocus(g.board)

	return g
}

// View returns what is currently on screen
func (g *GUI) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.view
}

// Draw stores the snapshot and schedules a redraw. It never blocks the
// game loop.
func (g *GUI) Draw(obj event.DrawObject, snap game.Snapshot) {
	g.mu.Lock()
	g.view.Snap = snap
	g.mu.Unlock()

	select {
	case g.redraw <- obj:
	default:
	}
}

// HandleDraw applies scheduled redraws until ctx is done
func (g *GUI) HandleDraw(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-g.redraw:
			g.App.QueueUpdateDraw(g.updatePages)
		}
	}
}

// updatePages shows the modal matching the game state. It must run on the
// application goroutine.
func (g *GUI) updatePages() {
	v := g.View()
	if v.Snap.State == g.shownState {
		return
	}
	g.shownState = v.Snap.State

	switch v.Snap.State {
	case game.StateRunning:
		g.Pages.HidePage(pagePaused)
		g.Pages.HidePage(pageGameOver)
		g.App.SetFocus(g.board)
	case game.StatePaused:
		g.Pages.ShowPage(pagePaused)
		g.App.SetFocus(g.paused)
	case game.StateGameOver:
		g.Pages.HidePage(pagePaused)
		g.gameOver.SetText(fmt.Sprintf("Game Over\n\nScore %d  Level %d  Lines %d", v.Snap.Score, v.Snap.Level, v.Snap.Lines))
		g.Pages.ShowPage(pageGameOver)
		g.App.SetFocus(g.gameOver)
	}
}

// ToggleSound flips the audio sink and updates the status line
func (g *GUI) ToggleSound() bool {
	on := false
	if g.toggleSound != nil {
		on = g.toggleSound()
	}

	g.mu.Lock()
	g.view.Sound = on
	g.mu.Unlock()

	return on
}

func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if isQuit(ev) {
		g.App.Stop()
		return nil
	}

	a, ok := ActionFor(ev)
	if !ok {
		return ev
	}

	switch a {
	case event.ActionToggleSound:
		g.ToggleSound()
		return nil
	case event.ActionPause, event.ActionReset:
		g.send(a)
		return nil
	}

	// Movement keys navigate the modal buttons while the game is stopped.
	if g.View().Snap.State != game.StateRunning {
		return ev
	}

	g.send(a)
	return nil
}

// Run starts the application and blocks until it stops
func (g *GUI) Run() error {
	return g.App.Run()
}

func (g *GUI) Stop() {
	g.App.Stop()
}
