// Package input tracks which keys are held. Hosts feed press/release signals
// into a Tracker; the game reads an immutable snapshot once per tick.
package input

import "strings"

// Gameplay keys.
const (
	KeyUp     = "w"
	KeyLeft   = "a"
	KeyDown   = "s"
	KeyRight  = "d"
	KeyFire   = "space"
	KeyShield = "q"
	KeyDash   = "e"
)

// Host command keys.
const (
	KeyEnter      = "enter"
	KeyPause      = "p"
	KeyEscape     = "escape"
	KeyInterrupt  = "ctrl+c"
	KeyVolumeDown = "["
	KeyVolumeUp   = "]"
)

// aliases maps host key names to canonical identifiers.
var aliases = map[string]string{
	" ":          KeyFire,
	"spacebar":   KeyFire,
	"esc":        KeyEscape,
	"return":     KeyEnter,
	"arrowup":    KeyUp,
	"arrowleft":  KeyLeft,
	"arrowdown":  KeyDown,
	"arrowright": KeyRight,
}

// Normalize lower-cases a host key name and maps aliases (browser KeyboardEvent.key
// values, arrow keys) to canonical identifiers.
func Normalize(name string) string {
	id := strings.ToLower(name)
	if canon, ok := aliases[id]; ok {
		return canon
	}
	return id
}

// Keys is an immutable snapshot of held keys.
type Keys map[string]bool

// Down reports whether id was held when the snapshot was taken.
func (k Keys) Down(id string) bool {
	return k[id]
}
