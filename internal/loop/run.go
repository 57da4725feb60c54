package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/input"
)

// Source pumps host input into a tracker. Poll must not block; it returns
// false once the input has closed (the player disconnected).
type Source interface {
	Poll(now time.Time) bool
}

// Display is a Surface that can push a finished frame to the player.
type Display interface {
	draw.Surface
	Present() error
}

// Run drives ctrl at the target frame rate with the standard
// Input → Update → Draw cycle until the player quits, the input closes or
// ctx is cancelled. A nil src means input arrives on tracker directly; a nil
// disp runs the game headless.
func Run(ctx context.Context, ctrl *Controller, tracker *input.Tracker, src Source, disp Display) error {
	defer ctrl.Stop()

	for {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// ===== INPUT PHASE =====
		if src != nil && !src.Poll(frameStart) {
			return nil
		}
		for _, key := range tracker.TakePresses() {
			if handleCommand(ctrl, tracker, key) {
				return nil
			}
		}

		// ===== UPDATE + DRAW PHASE =====
		if disp == nil {
			ctrl.Frame(tracker.Snapshot(), nil)
		} else {
			ctrl.Frame(tracker.Snapshot(), disp)
			if err := disp.Present(); err != nil {
				return fmt.Errorf("present frame: %w", err)
			}
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}
}

// handleCommand applies a host command key and reports whether to quit.
func handleCommand(ctrl *Controller, tracker *input.Tracker, key string) (quit bool) {
	switch key {
	case input.KeyEscape, input.KeyInterrupt:
		return true
	case input.KeyEnter:
		if p := ctrl.Phase(); p == PhaseIdle || p == PhaseGameOver {
			ctrl.Start()
			// Keys held across the restart do not carry into the new run.
			tracker.Reset()
		}
	case input.KeyPause:
		ctrl.TogglePause()
	case input.KeyVolumeDown:
		ctrl.AdjustVolume(-config.VolumeStep)
	case input.KeyVolumeUp:
		ctrl.AdjustVolume(config.VolumeStep)
	}
	return false
}
