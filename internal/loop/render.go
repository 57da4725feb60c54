package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/object"
)

// HUD layout in playfield units.
const (
	hudX       = 10
	hudTop     = 30
	hudSpacing = 30
	hudSize    = 20
)

// Render clears surf and paints the current state. It never mutates s.
func Render(s *State, surf draw.Surface) {
	surf.Clear()
	ctx := object.DrawContext{Surface: surf}

	s.Player.Draw(ctx)
	for _, b := range s.Player.Bullets {
		b.Draw(ctx)
	}
	for _, e := range s.Enemies {
		e.Draw(ctx)
	}
	for _, b := range s.EnemyBullets {
		b.Draw(ctx)
	}
	for _, pu := range s.PowerUps {
		pu.Draw(ctx)
	}

	drawHUD(s, surf)
}

// drawHUD draws health, score, wave and whole seconds survived.
func drawHUD(s *State, surf draw.Surface) {
	lines := [...]string{
		fmt.Sprintf("Health: %d", s.Player.Health),
		fmt.Sprintf("Score: %d", s.Player.Score),
		fmt.Sprintf("Wave: %d", s.Wave),
		fmt.Sprintf("Time: %ds", int(s.Elapsed()/time.Second)),
	}
	for i, line := range lines {
		surf.Text(hudX, hudTop+float64(i)*hudSpacing, hudSize, line, draw.ColorWhite)
	}
}
