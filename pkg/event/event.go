package event

import "fmt"

// Sound is a short feedback cue for the audio sink.
type Sound int

const (
	SoundMove Sound = iota
	SoundRotate
	SoundDrop
	SoundClear
	SoundGameOver
)

var AllSounds = []Sound{SoundMove, SoundRotate, SoundDrop, SoundClear, SoundGameOver}

var soundNames = [...]string{"move", "rotate", "drop", "clear", "gameover"}

func (s Sound) String() string {
	if s < 0 || int(s) >= len(soundNames) {
		return "unknown"
	}

	return soundNames[s]
}

func ParseSound(name string) (Sound, error) {
	for i, n := range soundNames {
		if n == name {
			return Sound(i), nil
		}
	}

	return 0, fmt.Errorf("unknown sound %q", name)
}

func (s Sound) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Sound) UnmarshalText(text []byte) error {
	parsed, err := ParseSound(string(text))
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// DrawObject names the part of the screen that changed.
type DrawObject int

const (
	DrawBoard DrawObject = iota
	DrawPreview
	DrawStats
	DrawState
	DrawClearing
	DrawAll
)

func (o DrawObject) String() string {
	switch o {
	case DrawBoard:
		return "board"
	case DrawPreview:
		return "preview"
	case DrawStats:
		return "stats"
	case DrawState:
		return "state"
	case DrawClearing:
		return "clearing"
	case DrawAll:
		return "all"
	default:
		return "unknown"
	}
}
