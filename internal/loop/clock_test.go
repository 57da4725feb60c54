package loop

import (
	"testing"
	"time"
)

func TestPausableClockFreezes(t *testing.T) {
	real := NewManualClock(epoch)
	pc := NewPausableClock(real)

	real.Advance(time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Fatalf("Now = %v, want epoch+1s", got)
	}

	pc.Pause()
	pc.Pause()
	real.Advance(5 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(time.Second)) {
		t.Errorf("paused Now = %v, want epoch+1s", got)
	}
	if got := pc.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("pause in progress = %v, want 5s", got)
	}

	pc.Resume()
	pc.Resume()
	real.Advance(time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("resumed Now = %v, want epoch+2s", got)
	}
	if pc.IsPaused() {
		t.Error("still paused")
	}

	pc.Pause()
	pc.Reset()
	if pc.IsPaused() || pc.TotalPauseDuration() != 0 {
		t.Error("Reset kept pause state")
	}
	if got := pc.Now(); !got.Equal(real.Now()) {
		t.Errorf("Now after Reset = %v, want %v", got, real.Now())
	}
}

func TestManualClock(t *testing.T) {
	m := NewManualClock(epoch)
	m.Advance(time.Minute)
	if !m.Now().Equal(epoch.Add(time.Minute)) {
		t.Errorf("Advance: %v", m.Now())
	}
	m.Set(epoch)
	if !m.Now().Equal(epoch) {
		t.Errorf("Set: %v", m.Now())
	}
}

func TestIntervalDue(t *testing.T) {
	var iv Interval
	if iv.Due(epoch.Add(time.Hour)) != 0 {
		t.Fatal("unarmed interval fired")
	}

	iv.Arm(epoch, 2*time.Second)
	tests := []struct {
		at   time.Duration
		want int
	}{
		{1999 * time.Millisecond, 0},
		{2 * time.Second, 1},
		{2 * time.Second, 0},
		{3 * time.Second, 0},
		{8500 * time.Millisecond, 3},
		{10 * time.Second, 1},
	}
	for _, tt := range tests {
		if got := iv.Due(epoch.Add(tt.at)); got != tt.want {
			t.Errorf("Due(%v) = %d, want %d", tt.at, got, tt.want)
		}
	}

	iv.Disarm()
	if iv.Armed() || iv.Due(epoch.Add(time.Hour)) != 0 {
		t.Error("disarmed interval fired")
	}
}
