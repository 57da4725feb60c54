package input

import (
	"io"
	"time"
)

// escapeTimeout is how long a trailing ESC or ESC [ waits for the rest of an
// arrow-key sequence before it is read as separate keys.
const escapeTimeout = 50 * time.Millisecond

// Stream delivers raw terminal bytes via a channel and turns them into key
// presses on a Holder.
type Stream struct {
	ch        chan byte
	holder    *Holder
	buf       []byte
	pending   []byte    // Incomplete escape sequence carried to the next Poll
	pendingAt time.Time // When pending was first held back
	closed    bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r io.ByteReader, holder *Holder) *Stream {
	s := &Stream{
		ch:     make(chan byte, 128),
		holder: holder,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes (non-blocking), records the keys they
// encode and releases keys whose hold window has passed. It returns false
// once the reader has closed.
func (s *Stream) Poll(now time.Time) bool {
	s.buf = append(s.buf[:0], s.pending...)

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	emit := func(id string) { s.holder.Touch(id, now) }
	rest := parseKeys(s.buf, emit)
	switch {
	case len(rest) == 0:
		s.pending = s.pending[:0]
	case s.closed || (len(s.pending) > 0 && now.Sub(s.pendingAt) >= escapeTimeout):
		for _, b := range rest {
			if id := byteKey(b); id != "" {
				emit(id)
			}
		}
		s.pending = s.pending[:0]
	default:
		if len(s.pending) == 0 {
			s.pendingAt = now
		}
		s.pending = append(s.pending[:0], rest...)
	}
	s.holder.Expire(now)
	return !s.closed
}

// parseKeys reports the key encoded by each byte or arrow-key escape sequence.
// A trailing ESC or ESC [ may be the start of a sequence still in flight; it
// is returned unparsed.
func parseKeys(buf []byte, emit func(id string)) (rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && (i == len(buf)-1 || (i == len(buf)-2 && buf[i+1] == '[')) {
			return buf[i:]
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if id := arrowKey(buf[i+2]); id != "" {
				emit(id)
				i += 2
				continue
			}
		}

		if id := byteKey(b); id != "" {
			emit(id)
		}
	}
	return nil
}

func arrowKey(code byte) string {
	switch code {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return ""
}

// byteKey maps a single input byte to a key identifier.
func byteKey(b byte) string {
	switch b {
	case ' ':
		return KeyFire
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	case '\x03':
		return KeyInterrupt
	}
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	if b > ' ' && b < 0x7f {
		return string(rune(b))
	}
	return ""
}
