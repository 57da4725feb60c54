// Package web hosts games for browsers: each websocket connection runs one
// game whose frames are sent as JSON draw commands.
package web

import (
	"encoding/json"
	"fmt"

	"github.com/tomz197/survival/internal/draw"
)

// Op is one recorded draw command. Coordinates are playfield units.
type Op struct {
	Op    string  `json:"op"` // "rect", "circle" or "text"
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Text  string  `json:"text,omitempty"`
	Color string  `json:"color"`
}

// Frame is the message sent to the page once per frame.
type Frame struct {
	Type string  `json:"type"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Ops  []Op    `json:"ops"`
}

// Recorder is a draw.Surface that collects a frame's draw commands and hands
// the encoded frame to send on Present.
type Recorder struct {
	w, h float64
	ops  []Op
	send func([]byte)
}

// NewRecorder creates a recorder for a w×h playfield.
func NewRecorder(w, h float64, send func([]byte)) *Recorder {
	return &Recorder{w: w, h: h, send: send}
}

// Size returns the playfield dimensions.
func (r *Recorder) Size() (float64, float64) { return r.w, r.h }

// Clear drops the commands recorded so far.
func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
}

// FillRect records a filled rectangle.
func (r *Recorder) FillRect(x, y, w, h float64, c draw.Color) {
	r.ops = append(r.ops, Op{Op: "rect", X: x, Y: y, W: w, H: h, Color: c.String()})
}

// StrokeCircle records a circle outline centred on (cx, cy).
func (r *Recorder) StrokeCircle(cx, cy, radius float64, c draw.Color) {
	r.ops = append(r.ops, Op{Op: "circle", X: cx, Y: cy, R: radius, Color: c.String()})
}

// Text records a text label with its baseline at y.
func (r *Recorder) Text(x, y, size float64, s string, c draw.Color) {
	r.ops = append(r.ops, Op{Op: "text", X: x, Y: y, Size: size, Text: s, Color: c.String()})
}

// Present encodes the recorded frame and sends it.
func (r *Recorder) Present() error {
	b, err := json.Marshal(Frame{Type: "frame", W: r.w, H: r.h, Ops: r.ops})
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	r.send(b)
	return nil
}
