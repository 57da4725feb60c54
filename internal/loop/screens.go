package loop

import (
	"fmt"

	"github.com/tomz197/survival/internal/draw"
)

// drawTitleScreen draws the idle screen with the controls.
func drawTitleScreen(surf draw.Surface) {
	surf.Clear()
	_, h := surf.Size()
	centerText(surf, h/2-80, 48, "S U R V I V A L", draw.ColorGreen)
	centerText(surf, h/2-10, 20, "Press ENTER to start", draw.ColorWhite)
	centerText(surf, h/2+50, 16, "W A S D move   SPACE fire   Q shield   E dash", draw.ColorGray)
	centerText(surf, h/2+80, 16, "P pause   [ ] volume   ESC quit", draw.ColorGray)
}

// drawPausedBanner draws the pause banner over the frozen frame.
func drawPausedBanner(surf draw.Surface) {
	_, h := surf.Size()
	centerText(surf, h/2, 40, "PAUSED", draw.ColorYellow)
	centerText(surf, h/2+40, 20, "Press P to resume", draw.ColorWhite)
}

// drawGameOverBanner draws the final result over the last frame.
func drawGameOverBanner(surf draw.Surface, s *State) {
	w, h := surf.Size()
	surf.Text(w/2-100, h/2, 40, "Game Over", draw.ColorRed)
	centerText(surf, h/2+40, 20, fmt.Sprintf("Score: %d   Wave: %d", s.Player.Score, s.Wave), draw.ColorWhite)
	centerText(surf, h/2+70, 20, "Press ENTER to restart", draw.ColorWhite)
}

// drawVolume shows the music volume in the bottom-left corner.
func drawVolume(surf draw.Surface, volume float64) {
	_, h := surf.Size()
	surf.Text(hudX, h-10, 16, fmt.Sprintf("Volume: %d%%", int(volume*100+0.5)), draw.ColorGray)
}

// centerText draws s horizontally centered at baseline y.
func centerText(surf draw.Surface, y, size float64, s string, c draw.Color) {
	w, _ := surf.Size()
	x := (w - draw.MeasureText(surf, s, size)) / 2
	surf.Text(max(x, 0), y, size, s, c)
}
