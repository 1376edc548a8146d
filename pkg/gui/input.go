package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/blockterm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

var keybindings = []*Keybinding{
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{r: 'h', a: event.ActionMoveLeft},
	{r: 'H', a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{r: 'l', a: event.ActionMoveRight},
	{r: 'L', a: event.ActionMoveRight},
	{k: tcell.KeyDown, a: event.ActionSoftDrop},
	{r: 'j', a: event.ActionSoftDrop},
	{r: 'J', a: event.ActionSoftDrop},
	{k: tcell.KeyUp, a: event.ActionRotate},
	{r: 'k', a: event.ActionRotate},
	{r: 'K', a: event.ActionRotate},
	{r: ' ', a: event.ActionHardDrop},
	{r: 'p', a: event.ActionPause},
	{r: 'P', a: event.ActionPause},
	{r: 'r', a: event.ActionReset},
	{r: 'R', a: event.ActionReset},
	{r: 's', a: event.ActionToggleSound},
	{r: 'S', a: event.ActionToggleSound},
}

// ActionFor returns the action bound to a key press
func ActionFor(ev *tcell.EventKey) (event.GameAction, bool) {
	k := ev.Key()
	r := ev.Rune()

	for _, bind := range keybindings {
		if bind.k != 0 {
			if bind.k != k {
				continue
			}
		} else if k != tcell.KeyRune || bind.r != r {
			continue
		}

		if bind.m != 0 && bind.m != ev.Modifiers() {
			continue
		}

		return bind.a, true
	}

	return event.ActionUnknown, false
}

// isQuit reports whether the key press exits the client
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}

	return false
}
