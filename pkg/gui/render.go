package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

const (
	cellWidth = 2

	boardWidth  = mino.BoardWidth*cellWidth + 2
	boardHeight = mino.BoardHeight + 2

	sideMargin  = boardWidth + 2
	previewTop  = 1
	statsTop    = previewTop + game.PreviewSize + 3
	controlsTop = statsTop + 8

	// Width and Height are the screen space Render needs.
	Width  = sideMargin + 22
	Height = boardHeight + 2
)

const helpText = "←/→ move  ↓ soft drop  ↑ rotate  space drop"

// View is everything Render draws
type View struct {
	Snap  game.Snapshot
	Theme Theme
	Nick  string
	Sound bool
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// drawBox draws a frame whose inside is w by h cells, with an optional
// title on the top edge
func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style, title string) {
	drawRune(s, x, y, style, tcell.RuneULCorner)
	drawRune(s, x+w+1, y, style, tcell.RuneURCorner)
	drawRune(s, x, y+h+1, style, tcell.RuneLLCorner)
	drawRune(s, x+w+1, y+h+1, style, tcell.RuneLRCorner)

	for i := 1; i <= w; i++ {
		drawRune(s, x+i, y, style, tcell.RuneHLine)
		drawRune(s, x+i, y+h+1, style, tcell.RuneHLine)
	}
	for i := 1; i <= h; i++ {
		drawRune(s, x, y+i, style, tcell.RuneVLine)
		drawRune(s, x+w+1, y+i, style, tcell.RuneVLine)
	}

	if title != "" {
		drawText(s, x+2, y, style, " "+title+" ")
	}
}

// drawCell draws one board cell, two columns wide so it looks square
func drawCell(s tcell.Screen, x, y int, b mino.Block, t Theme) {
	if b == mino.BlockNone {
		style := tcell.StyleDefault.Background(t.Background).Foreground(t.Empty)
		drawText(s, x, y, style, " .")
		return
	}

	style := tcell.StyleDefault.Background(t.Background).Foreground(t.BlockColor(b))
	drawText(s, x, y, style, "██")
}

// drawFlash draws a cell of a row that was just cleared. A live block in
// the cell is drawn on the flash background.
func drawFlash(s tcell.Screen, x, y int, c game.Cell, t Theme) {
	if c.Block != mino.BlockNone {
		style := tcell.StyleDefault.Background(t.Flash).Foreground(t.BlockColor(c.Block))
		drawText(s, x, y, style, "██")
		return
	}

	style := tcell.StyleDefault.Background(t.Flash).Foreground(t.BlockColor(c.Cleared))
	drawText(s, x, y, style, "▓▓")
}

// drawBoard draws the board with the falling piece and any flashing rows
func drawBoard(s tcell.Screen, x, y int, snap game.Snapshot, t Theme) {
	borderStyle := tcell.StyleDefault.Foreground(t.Border)
	drawBox(s, x, y, boardWidth-2, boardHeight-2, borderStyle, "")

	cells := snap.Cells()
	for row := range cells {
		for col, c := range cells[row] {
			cx, cy := x+1+col*cellWidth, y+1+row
			if c.Flash {
				drawFlash(s, cx, cy, c, t)
				continue
			}

			drawCell(s, cx, cy, c.Block, t)
		}
	}
}

// drawPreview draws the next piece in its box
func drawPreview(s tcell.Screen, x, y int, snap game.Snapshot, t Theme) {
	borderStyle := tcell.StyleDefault.Foreground(t.Border)
	drawBox(s, x, y, game.PreviewSize*cellWidth, game.PreviewSize, borderStyle, "Next")

	box := snap.Preview()
	for row := range box {
		for col, b := range box[row] {
			cx, cy := x+1+col*cellWidth, y+1+row
			if b == mino.BlockNone {
				drawText(s, cx, cy, tcell.StyleDefault.Background(t.Background), "  ")
				continue
			}

			drawCell(s, cx, cy, b, t)
		}
	}
}

// drawStats displays score, level and cleared lines
func drawStats(s tcell.Screen, x, y int, snap game.Snapshot, t Theme) {
	labelStyle := tcell.StyleDefault.Foreground(t.Label).Bold(true)
	valueStyle := tcell.StyleDefault.Foreground(t.Text)

	stats := []struct {
		label string
		value int
	}{
		{"Score", snap.Score},
		{"Level", snap.Level},
		{"Lines", snap.Lines},
	}

	for i, st := range stats {
		row := y + i*2
		drawText(s, x, row, labelStyle, st.label)
		drawText(s, x, row+1, valueStyle, fmt.Sprintf("%-12d", st.value))
	}
}

// drawControls displays the state and the controls that change it
func drawControls(s tcell.Screen, x, y int, v View) {
	t := v.Theme
	labelStyle := tcell.StyleDefault.Foreground(t.Label)
	stateStyle := tcell.StyleDefault.Foreground(t.Flash).Bold(true)

	state := ""
	switch v.Snap.State {
	case game.StatePaused:
		state = "PAUSED"
	case game.StateGameOver:
		state = "GAME OVER"
	}
	drawText(s, x, y, stateStyle, fmt.Sprintf("%-12s", state))

	sound := "off"
	if v.Sound {
		sound = "on"
	}

	drawText(s, x, y+2, labelStyle, fmt.Sprintf("[P] %-12s", v.Snap.PauseLabel()))
	drawText(s, x, y+3, labelStyle, "[R] New Game")
	drawText(s, x, y+4, labelStyle, fmt.Sprintf("[S] Sound %-3s", sound))
	drawText(s, x, y+5, labelStyle, "[Q] Quit")
}

// Render draws the whole game with its top left corner at x,y
func Render(s tcell.Screen, x, y int, v View) {
	titleStyle := tcell.StyleDefault.Foreground(v.Theme.Label).Bold(true)
	title := "blockterm"
	if v.Nick != "" {
		title += " - " + v.Nick
	}
	drawText(s, x, y, titleStyle, title)

	drawBoard(s, x, y+1, v.Snap, v.Theme)
	drawPreview(s, x+sideMargin, y+previewTop, v.Snap, v.Theme)
	drawStats(s, x+sideMargin, y+statsTop, v.Snap, v.Theme)
	drawControls(s, x+sideMargin, y+controlsTop, v)

	helpStyle := tcell.StyleDefault.Foreground(v.Theme.Border)
	drawText(s, x, y+1+boardHeight, helpStyle, helpText)
}
