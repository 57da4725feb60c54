package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Use MoveCursor and WriteString to accumulate,
// then Flush to write to the underlying writer. Implements io.Writer for Canvas.Render.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// are added to all MoveCursor coordinates (for canvas centering).
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based
// canvas coordinates; offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render and other writers.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer. Uses the same chunk size as Canvas.Render.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// label is a text overlay queued for the next Present.
type label struct {
	x, y float64
	text string
	col  Color
}

// Terminal is a Surface that paints onto a half-block Canvas and presents it
// as ANSI escape sequences. The render area is clamped to maxWidth x maxHeight
// cells and centered inside larger terminals.
type Terminal struct {
	*Canvas
	out       *ChunkWriter
	raw       io.Writer
	sizeFunc  TermSizeFunc
	maxWidth  int
	maxHeight int
	labels    []label
}

// NewTerminal creates a Terminal writing to w. sizeFunc reports the real
// terminal size and is polled on every Clear.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc, logicalWidth, logicalHeight float64, maxWidth, maxHeight int) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	t := &Terminal{
		raw:       w,
		sizeFunc:  sizeFunc,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
	}
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = maxWidth, maxHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := t.clampTermSize(termWidth, termHeight)
	t.Canvas = NewScaledCanvas(renderWidth, renderHeight, logicalWidth, logicalHeight)
	t.Canvas.SetOffset(offsetCol, offsetRow)
	t.out = NewChunkWriter(w, offsetCol, offsetRow)
	return t
}

// Open hides the cursor and clears the screen.
func (t *Terminal) Open() {
	HideCursor(t.raw)
	ClearScreen(t.raw)
}

// Close restores the cursor and clears the screen.
func (t *Terminal) Close() {
	ResetStyle(t.raw)
	ClearScreen(t.raw)
	ShowCursor(t.raw)
}

// Clear picks up terminal resizes and erases the canvas and queued text.
func (t *Terminal) Clear() {
	t.updateSize()
	t.Canvas.Clear()
	t.labels = t.labels[:0]
}

// Text queues a string drawn on top of the canvas at the next Present.
// The cell row is centered on the text's nominal height.
func (t *Terminal) Text(x, y, size float64, s string, c Color) {
	t.labels = append(t.labels, label{x: x, y: y - size/2, text: s, col: c})
}

// Present writes the frame to the terminal.
func (t *Terminal) Present() error {
	t.out.WriteString("\033[H\033[2J")
	t.Canvas.Render(t.out)
	t.Canvas.RenderBorder(t.out)
	for _, l := range t.labels {
		col, row := t.LogicalToTerminal(l.x, l.y)
		if row < 1 || row > t.TerminalHeight() {
			continue
		}
		col = max(col, 1)
		t.out.MoveCursor(col, row)
		t.out.WriteString(fgSeq(l.col))
		if bg := t.Pixel(col-1, (row-1)*2); bg != ColorNone {
			t.out.WriteString(bgSeq(bg))
		}
		// Clip to the render area.
		text := l.text
		if room := t.TerminalWidth() - col + 1; len(text) > room {
			text = text[:max(room, 0)]
		}
		t.out.WriteString(text)
		t.out.WriteString("\033[0m")
	}
	return t.out.Flush()
}

// updateSize resizes the canvas to the current terminal size. On actual size
// changes the screen is cleared to remove residual pixels outside the new area.
func (t *Terminal) updateSize() {
	termWidth, termHeight, err := t.sizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := t.clampTermSize(termWidth, termHeight)

	if renderWidth != t.TerminalWidth() || renderHeight != t.TerminalHeight() ||
		offsetCol != t.OffsetCol() || offsetRow != t.OffsetRow() {
		ClearScreen(t.raw)
	}

	t.Canvas.Resize(renderWidth, renderHeight)
	t.Canvas.SetOffset(offsetCol, offsetRow)
	t.out.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func (t *Terminal) clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, t.maxWidth)
	renderHeight = min(termHeight, t.maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// TextWidth returns the logical width of s: one terminal column per byte.
func (t *Terminal) TextWidth(s string, _ float64) float64 {
	return float64(len(s)) / t.scaleX
}
