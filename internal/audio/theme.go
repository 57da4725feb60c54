package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// themeNotes is the looping bass line in Hz, one note per step.
var themeNotes = [...]float64{110, 110, 131, 147, 110, 110, 98, 123}

const themeStep = 300 * time.Millisecond

// theme generates a soft synth bass line with a short decay per note.
type theme struct {
	sr    beep.SampleRate
	step  int // Samples per note
	pos   int
	phase float64
}

func newTheme(sr beep.SampleRate) *theme {
	return &theme{sr: sr, step: sr.N(themeStep)}
}

func (g *theme) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.pos / g.step) % len(themeNotes)
		inNote := float64(g.pos%g.step) / float64(g.step)

		envelope := math.Exp(-inNote * 4)
		val := 0.2 * envelope * (math.Sin(2*math.Pi*g.phase) + 0.3*math.Sin(4*math.Pi*g.phase))

		samples[i][0] = val
		samples[i][1] = val

		g.phase += themeNotes[note] / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
		if g.pos == g.step*len(themeNotes) {
			g.pos = 0
		}
	}
	return len(samples), true
}

func (g *theme) Err() error { return nil }
