// Package audio plays the looping background music.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Music is the background track. It implements loop.VolumeSink; until Start
// succeeds every call is a no-op, so a host without a sound device still runs.
type Music struct {
	mu      sync.Mutex
	started bool
	volume  *effects.Volume
	level   float64
}

// NewMusic creates a stopped track at the given volume in [0, 1].
func NewMusic(level float64) *Music {
	m := &Music{
		volume: &effects.Volume{Streamer: newTheme(sampleRate), Base: 2},
		level:  -1,
	}
	m.apply(level)
	return m
}

// Start opens the speaker and begins playback.
func (m *Music) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(m.volume)
	m.started = true
	return nil
}

// SetVolume sets the playback level in [0, 1].
func (m *Music) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started || v == m.level {
		return
	}
	speaker.Lock()
	m.apply(v)
	speaker.Unlock()
}

// apply maps a linear level onto the volume effect. Zero is silent since
// log2(0) is -Inf.
func (m *Music) apply(v float64) {
	v = min(max(v, 0), 1)
	m.level = v
	if v <= 0 {
		m.volume.Volume = 0
		m.volume.Silent = true
		return
	}
	m.volume.Volume = math.Log2(v)
	m.volume.Silent = false
}

// Close stops playback and releases the speaker.
func (m *Music) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.started = false
}
