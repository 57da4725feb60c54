package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellSource polls a tcell screen for key events and records them on a Holder.
type TcellSource struct {
	screen tcell.Screen
	events chan tcell.Event
	holder *Holder
	closed bool
}

// StartTcell spawns a goroutine forwarding screen events. The goroutine exits
// when the screen is finalized.
func StartTcell(screen tcell.Screen, holder *Holder) *TcellSource {
	s := &TcellSource{
		screen: screen,
		events: make(chan tcell.Event, 100),
		holder: holder,
	}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(s.events)
				return
			}
			s.events <- ev
		}
	}()
	return s
}

// Poll drains pending events without blocking and releases keys whose hold
// window has passed. It returns false once the screen has been finalized.
func (s *TcellSource) Poll(now time.Time) bool {
drain:
	for !s.closed {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				break drain
			}
			s.handle(ev, now)
		default:
			break drain
		}
	}
	s.holder.Expire(now)
	return !s.closed
}

func (s *TcellSource) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if id := KeyFromEvent(ev); id != "" {
			s.holder.Touch(id, now)
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

// KeyFromEvent maps a tcell key event to a key identifier, or "" if unmapped.
func KeyFromEvent(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyCtrlC:
		return KeyInterrupt
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return KeyFire
		}
		return Normalize(string(ev.Rune()))
	}
	return ""
}
