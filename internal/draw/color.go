package draw

import "strconv"

// Color is a named palette entry understood by every surface.
type Color uint8

const (
	ColorNone Color = iota // Transparent / empty
	ColorBlack
	ColorWhite
	ColorBlue
	ColorCyan
	ColorRed
	ColorGreen
	ColorOrange
	ColorYellow
	ColorGray
)

// palette maps each color to its CSS name and xterm-256 index.
var palette = [...]struct {
	name string
	ansi uint8
}{
	ColorNone:   {"transparent", 0},
	ColorBlack:  {"black", 16},
	ColorWhite:  {"white", 231},
	ColorBlue:   {"blue", 21},
	ColorCyan:   {"cyan", 51},
	ColorRed:    {"red", 196},
	ColorGreen:  {"green", 46},
	ColorOrange: {"orange", 208},
	ColorYellow: {"yellow", 226},
	ColorGray:   {"gray", 245},
}

// String returns the CSS color name.
func (c Color) String() string {
	if int(c) >= len(palette) {
		return "color(" + strconv.Itoa(int(c)) + ")"
	}
	return palette[c].name
}

// ANSI returns the xterm-256 palette index.
func (c Color) ANSI() uint8 {
	if int(c) >= len(palette) {
		return palette[ColorWhite].ansi
	}
	return palette[c].ansi
}

// fgSeq returns the escape sequence selecting c as the foreground color.
func fgSeq(c Color) string {
	return "\033[38;5;" + strconv.Itoa(int(c.ANSI())) + "m"
}

// bgSeq returns the escape sequence selecting c as the background color.
func bgSeq(c Color) string {
	return "\033[48;5;" + strconv.Itoa(int(c.ANSI())) + "m"
}
