package game

import "github.com/qnkhuat/blockterm/pkg/event"

// Renderer receives a fresh snapshot whenever part of the game changes.
type Renderer interface {
	Draw(obj event.DrawObject, snap Snapshot)
}

// Sounder plays feedback cues. Whether sound is enabled is up to the sink.
type Sounder interface {
	Play(s event.Sound)
}

type RendererFunc func(obj event.DrawObject, snap Snapshot)

func (f RendererFunc) Draw(obj event.DrawObject, snap Snapshot) { f(obj, snap) }

type SounderFunc func(s event.Sound)

func (f SounderFunc) Play(s event.Sound) { f(s) }

type nopRenderer struct{}

func (nopRenderer) Draw(event.DrawObject, Snapshot) {}

type nopSounder struct{}

func (nopSounder) Play(event.Sound) {}
