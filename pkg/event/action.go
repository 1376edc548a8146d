package event

import "fmt"

type GameAction int

const (
	ActionUnknown GameAction = iota
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionRotate
	ActionPause
	ActionReset
	ActionToggleSound
)

// Names used by the browser client.
var actionNames = map[GameAction]string{
	ActionMoveLeft:    "left",
	ActionMoveRight:   "right",
	ActionSoftDrop:    "down",
	ActionHardDrop:    "drop",
	ActionRotate:      "rotate",
	ActionPause:       "pause",
	ActionReset:       "reset",
	ActionToggleSound: "sound",
}

func (a GameAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}

func ParseAction(name string) (GameAction, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}

	return ActionUnknown, fmt.Errorf("unknown action %q", name)
}

func (a GameAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *GameAction) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}
