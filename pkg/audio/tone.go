package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/qnkhuat/blockterm/pkg/event"
)

// ToneLength is how long every cue plays, including its silent tail.
const ToneLength = 500 * time.Millisecond

// Tone describes a sine cue. Frequency and gain start at the From values
// and move exponentially to the To values over their ramp durations, then
// hold.
type Tone struct {
	FreqFrom float64
	FreqTo   float64
	FreqRamp time.Duration

	GainFrom float64
	GainTo   float64
	GainRamp time.Duration
}

var tones = map[event.Sound]Tone{
	event.SoundMove:     {FreqFrom: 200, FreqTo: 200, GainFrom: 0.1, GainTo: 0.01, GainRamp: 50 * time.Millisecond},
	event.SoundRotate:   {FreqFrom: 300, FreqTo: 300, GainFrom: 0.1, GainTo: 0.01, GainRamp: 50 * time.Millisecond},
	event.SoundDrop:     {FreqFrom: 150, FreqTo: 150, GainFrom: 0.2, GainTo: 0.01, GainRamp: 100 * time.Millisecond},
	event.SoundClear:    {FreqFrom: 400, FreqTo: 800, FreqRamp: 200 * time.Millisecond, GainFrom: 0.3, GainTo: 0.01, GainRamp: 300 * time.Millisecond},
	event.SoundGameOver: {FreqFrom: 200, FreqTo: 50, FreqRamp: 500 * time.Millisecond, GainFrom: 0.3, GainTo: 0.01, GainRamp: 500 * time.Millisecond},
}

// ToneFor returns the cue played for s.
func ToneFor(s event.Sound) (Tone, bool) {
	t, ok := tones[s]
	return t, ok
}

// ramp moves exponentially from a to b over d and holds b afterwards.
func ramp(a float64, b float64, d time.Duration, t float64) float64 {
	if d <= 0 || a <= 0 || b <= 0 {
		return b
	}

	span := d.Seconds()
	if t >= span {
		return b
	}

	return a * math.Pow(b/a, t/span)
}

func (t Tone) Frequency(at float64) float64 {
	return ramp(t.FreqFrom, t.FreqTo, t.FreqRamp, at)
}

func (t Tone) Gain(at float64) float64 {
	return ramp(t.GainFrom, t.GainTo, t.GainRamp, at)
}

// ToneGenerator streams a Tone forever. Wrap it with beep.Take to bound it.
type ToneGenerator struct {
	sr    beep.SampleRate
	tone  Tone
	pos   int
	phase float64
}

func NewToneGenerator(sr beep.SampleRate, tone Tone) *ToneGenerator {
	return &ToneGenerator{sr: sr, tone: tone}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := g.tone.Gain(t) * math.Sin(g.phase)
		g.phase += 2 * math.Pi * g.tone.Frequency(t) / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// Streamer returns the bounded cue for s, or nil when s has none.
func Streamer(sr beep.SampleRate, s event.Sound) beep.Streamer {
	tone, ok := ToneFor(s)
	if !ok {
		return nil
	}

	return beep.Take(sr.N(ToneLength), NewToneGenerator(sr, tone))
}
