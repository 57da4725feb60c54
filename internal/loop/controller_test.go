package loop

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/survival/internal/object"
)

func newTestController(t *testing.T, opts Options) (*Controller, *ManualClock) {
	t.Helper()
	clk := NewManualClock(epoch)
	opts.Clock = clk
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	return NewController(opts), clk
}

func TestControllerStartsIdle(t *testing.T) {
	c, clk := newTestController(t, Options{})
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle", c.Phase())
	}
	clk.Advance(10 * time.Second)
	c.Frame(nil, nil)
	if len(c.state.Enemies) != 0 {
		t.Error("idle controller spawned enemies")
	}
}

func TestControllerSpawnSchedule(t *testing.T) {
	c, clk := newTestController(t, Options{})
	c.Start()

	clk.Advance(1999 * time.Millisecond)
	c.Frame(nil, nil)
	if n := len(c.state.Enemies); n != 0 {
		t.Fatalf("enemies before first interval = %d", n)
	}

	clk.Advance(time.Millisecond)
	c.Frame(nil, nil)
	if n := len(c.state.Enemies); n != 1 {
		t.Fatalf("enemies at 2s = %d, want 1", n)
	}
	e := c.state.Enemies[0]
	if e.Y != -50+e.Speed {
		t.Errorf("enemy y = %v, want spawn at -50 then one advance", e.Y)
	}

	// A long frame catches up on every missed firing.
	clk.Advance(6 * time.Second)
	c.Frame(nil, nil)
	if n := len(c.state.Enemies); n != 4 {
		t.Errorf("enemies at 8s = %d, want 4", n)
	}
	if n := len(c.state.PowerUps); n != 0 {
		t.Errorf("power-ups at 8s = %d, want 0", n)
	}

	clk.Advance(2 * time.Second)
	c.Frame(nil, nil)
	// A power-up landing on the player is collected in its spawn tick.
	if n := len(c.state.PowerUps) + c.state.Collected; n != 1 {
		t.Errorf("power-ups at 10s = %d, want 1", n)
	}
}

func TestControllerPauseGatesSchedules(t *testing.T) {
	c, clk := newTestController(t, Options{})
	c.Start()

	clk.Advance(1900 * time.Millisecond)
	c.Frame(nil, nil)

	c.TogglePause()
	if !c.Paused() || !c.state.Paused {
		t.Fatal("not paused")
	}
	clk.Advance(30 * time.Second)
	c.Frame(nil, nil)
	if len(c.state.Enemies) != 0 || len(c.state.PowerUps) != 0 {
		t.Fatal("spawned while paused")
	}
	if c.state.Wave != 1 {
		t.Errorf("wave advanced while paused: %d", c.state.Wave)
	}

	c.TogglePause()
	if c.Phase() != PhaseRunning {
		t.Fatalf("phase = %v after resume", c.Phase())
	}
	clk.Advance(99 * time.Millisecond)
	c.Frame(nil, nil)
	if len(c.state.Enemies) != 0 {
		t.Fatal("pause time counted towards the schedule")
	}
	clk.Advance(time.Millisecond)
	c.Frame(nil, nil)
	if len(c.state.Enemies) != 1 {
		t.Errorf("enemies = %d after 2s of game time, want 1", len(c.state.Enemies))
	}
}

func TestControllerTogglePauseIgnoredWhenNotRunning(t *testing.T) {
	c, _ := newTestController(t, Options{})
	c.TogglePause()
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", c.Phase())
	}
}

// killPlayer queues two enemy bullets that finish the player this tick.
func killPlayer(c *Controller) {
	c.state.Player.Health = 10
	c.state.EnemyBullets = append(c.state.EnemyBullets,
		object.NewBullet(390, 490, 10, 4, object.DirDown),
		object.NewBullet(400, 490, 10, 4, object.DirDown),
	)
}

func TestControllerGameOverOnce(t *testing.T) {
	var results []Result
	c, clk := newTestController(t, Options{OnGameOver: func(r Result) { results = append(results, r) }})
	c.Start()

	clk.Advance(5 * time.Second)
	c.Frame(nil, nil)
	c.state.Player.Score = 40
	killPlayer(c)
	c.Frame(nil, nil)

	for i := 0; i < 5; i++ {
		clk.Advance(3 * time.Second)
		c.Frame(nil, nil)
	}

	if len(results) != 1 {
		t.Fatalf("game over fired %d times, want 1", len(results))
	}
	if got := results[0]; got.Score != 40 || got.Wave != 1 || got.Survived != 5*time.Second {
		t.Errorf("result = %+v", got)
	}
	if c.Phase() != PhaseGameOver || !c.state.Over {
		t.Errorf("phase = %v over = %v", c.Phase(), c.state.Over)
	}
	if c.enemyTimer.Armed() || c.powerUpTimer.Armed() {
		t.Error("schedules still armed after game over")
	}
	if n := len(c.state.Enemies); n != 2 {
		t.Errorf("enemies = %d, want the 2 spawned before death", n)
	}
}

func TestControllerRestart(t *testing.T) {
	calls := 0
	c, clk := newTestController(t, Options{OnGameOver: func(Result) { calls++ }})
	c.Start()
	clk.Advance(4 * time.Second)
	c.Frame(nil, nil)
	killPlayer(c)
	c.Frame(nil, nil)

	c.Start()
	if c.Phase() != PhaseRunning {
		t.Fatalf("phase = %v after restart", c.Phase())
	}
	s := c.state
	if s.Player.Health != 100 || s.Player.Score != 0 || len(s.Enemies) != 0 || s.Wave != 1 {
		t.Fatalf("restart kept old state: %+v", s.Player)
	}

	clk.Advance(1999 * time.Millisecond)
	c.Frame(nil, nil)
	if len(c.state.Enemies) != 0 {
		t.Error("restart kept the old spawn phase")
	}

	killPlayer(c)
	c.Frame(nil, nil)
	if calls != 2 {
		t.Errorf("game over calls = %d, want 2", calls)
	}
}

func TestControllerStop(t *testing.T) {
	calls := 0
	c, clk := newTestController(t, Options{OnGameOver: func(Result) { calls++ }})
	c.Start()
	c.Stop()

	if c.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game over", c.Phase())
	}
	clk.Advance(20 * time.Second)
	c.Frame(nil, nil)
	if len(c.state.Enemies) != 0 || len(c.state.PowerUps) != 0 {
		t.Error("spawned after Stop")
	}
	if calls != 0 {
		t.Errorf("Stop fired the game over hook")
	}

	// Stop on an idle controller leaves it idle.
	idle, _ := newTestController(t, Options{})
	idle.Stop()
	if idle.Phase() != PhaseIdle {
		t.Errorf("idle phase = %v after Stop", idle.Phase())
	}
}

type fakeSink struct{ got []float64 }

func (f *fakeSink) SetVolume(v float64) { f.got = append(f.got, v) }

func TestControllerVolume(t *testing.T) {
	sink := &fakeSink{}
	c, _ := newTestController(t, Options{Volume: sink})

	if c.Volume() != 0.5 {
		t.Fatalf("default volume = %v", c.Volume())
	}
	c.SetVolume(2)
	if c.Volume() != 1 {
		t.Errorf("volume = %v, want clamp to 1", c.Volume())
	}
	c.AdjustVolume(-0.3)
	c.Frame(nil, nil)
	if len(sink.got) != 1 || math.Abs(sink.got[0]-0.7) > 1e-9 {
		t.Errorf("sink got %v, want [0.7]", sink.got)
	}
	for i := 0; i < 10; i++ {
		c.AdjustVolume(-0.1)
	}
	if c.Volume() != 0 {
		t.Errorf("volume = %v, want clamp to 0", c.Volume())
	}
}

func TestControllerRendersPhase(t *testing.T) {
	c, clk := newTestController(t, Options{})
	surf := newRecordSurface()

	c.Frame(nil, surf)
	if !surf.has(`text green "S U R V I V A L"`) {
		t.Errorf("title screen missing: %v", surf.ops)
	}
	if !surf.has(`text gray "Volume: 50%"`) {
		t.Errorf("volume missing: %v", surf.ops)
	}

	c.Start()
	c.TogglePause()
	c.Frame(nil, surf)
	if !surf.has(`text yellow "PAUSED"`) || !surf.has(`rect blue 375,500 50x50`) {
		t.Errorf("paused frame: %v", surf.ops)
	}

	c.TogglePause()
	clk.Advance(time.Second)
	killPlayer(c)
	c.Frame(nil, surf)
	if !surf.has(`text red "Game Over"`) {
		t.Errorf("game over banner missing: %v", surf.ops)
	}
	if !surf.has(`text white "Health: -10"`) {
		t.Errorf("final HUD missing: %v", surf.ops)
	}
}

func TestControllerMetrics(t *testing.T) {
	m := &Metrics{}
	c, clk := newTestController(t, Options{Metrics: m})
	c.Start()
	clk.Advance(10 * time.Second)
	c.Frame(nil, nil)
	killPlayer(c)
	c.Frame(nil, nil)

	snap := m.Snapshot()
	want := map[string]int64{
		"games_started":    1,
		"games_over":       1,
		"enemies_spawned":  5,
		"powerups_spawned": 1,
		"tick_count":       2,
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s = %v, want %d", k, snap[k], v)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:     "idle",
		PhaseRunning:  "running",
		PhasePaused:   "paused",
		PhaseGameOver: "game over",
		Phase(9):      "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d) = %q, want %q", int(p), got, want)
		}
	}
}
