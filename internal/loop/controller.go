package loop

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/survival/internal/config"
	"github.com/tomz197/survival/internal/draw"
	"github.com/tomz197/survival/internal/input"
	"github.com/tomz197/survival/internal/object"
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle     Phase = iota // Title screen, no run yet
	PhaseRunning               // Simulating
	PhasePaused                // Simulation and spawn schedules frozen
	PhaseGameOver              // Run ended, last frame kept until Start
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// Result summarises a finished run.
type Result struct {
	Score    int
	Wave     int
	Kills    int
	Survived time.Duration
}

// VolumeSink receives the music volume in [0, 1] every frame.
type VolumeSink interface {
	SetVolume(v float64)
}

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	Rules      *config.Rules      // Default config.Default()
	Clock      Clock              // Real time source; default SystemClock
	Rand       *rand.Rand         // Spawn randomness; default seeded from the clock
	Logger     *zap.SugaredLogger // Default no-op
	Metrics    *Metrics           // Default private instance
	Volume     VolumeSink         // Optional
	OnGameOver func(Result)       // Called once per run, outside the controller lock
}

// Controller owns one game: its state, game clock and spawn schedules.
// Frame must be called from a single goroutine; the other methods may be
// called from any goroutine.
type Controller struct {
	rules      *config.Rules
	log        *zap.SugaredLogger
	metrics    *Metrics
	sink       VolumeSink
	onGameOver func(Result)

	mu           sync.Mutex
	clock        *PausableClock
	spawner      *object.Spawner
	state        *State
	phase        Phase
	enemyTimer   Interval
	powerUpTimer Interval
	volume       float64
}

// NewController creates an idle controller.
func NewController(opts Options) *Controller {
	if opts.Rules == nil {
		opts.Rules = config.Default()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Clock.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Metrics == nil {
		opts.Metrics = &Metrics{}
	}
	clock := NewPausableClock(opts.Clock)
	return &Controller{
		rules:      opts.Rules,
		log:        opts.Logger,
		metrics:    opts.Metrics,
		sink:       opts.Volume,
		onGameOver: opts.OnGameOver,
		clock:      clock,
		spawner:    object.NewSpawner(opts.Rand, opts.Rules),
		state:      NewState(opts.Rules, clock.Now()),
		volume:     config.DefaultVolume,
	}
}

// Start begins a fresh run, discarding any previous one and its schedules.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock.Reset()
	now := c.clock.Now()
	c.state = NewState(c.rules, now)
	c.enemyTimer.Arm(now, c.rules.Enemy.SpawnInterval)
	c.powerUpTimer.Arm(now, c.rules.PowerUp.SpawnInterval)
	c.phase = PhaseRunning
	c.metrics.incGamesStarted()
	c.log.Infow("game started")
}

// TogglePause pauses a running game or resumes a paused one. Pausing freezes
// the game clock, so spawn schedules, lifetimes and cooldowns freeze too.
func (c *Controller) TogglePause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseRunning:
		c.clock.Pause()
		c.state.Paused = true
		c.phase = PhasePaused
		c.log.Infow("game paused", "elapsed", c.state.Elapsed())
	case PhasePaused:
		c.clock.Resume()
		c.state.Paused = false
		c.phase = PhaseRunning
		c.log.Infow("game resumed", "paused_for", c.clock.TotalPauseDuration())
	}
}

// Stop cancels the spawn schedules and halts simulation. The last frame is
// still rendered.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enemyTimer.Disarm()
	c.powerUpTimer.Disarm()
	if c.phase == PhaseRunning || c.phase == PhasePaused {
		c.state.Over = true
		c.phase = PhaseGameOver
	}
	c.log.Infow("game stopped")
}

// Phase returns the lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Paused reports whether the game is paused.
func (c *Controller) Paused() bool {
	return c.Phase() == PhasePaused
}

// Volume returns the music volume in [0, 1].
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// SetVolume sets the music volume, clamped to [0, 1]. The sink receives it on
// the next frame.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = min(max(v, 0), 1)
}

// AdjustVolume changes the volume by delta.
func (c *Controller) AdjustVolume(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = min(max(c.volume+delta, 0), 1)
}

// Frame is the per-frame callback: it fires due spawn schedules, advances the
// simulation one tick with keys and renders onto surf. A nil surf skips
// rendering.
func (c *Controller) Frame(keys input.Keys, surf draw.Surface) {
	res, over := c.frame(keys, surf)
	if over && c.onGameOver != nil {
		c.onGameOver(res)
	}
}

func (c *Controller) frame(keys input.Keys, surf draw.Surface) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sink != nil {
		c.sink.SetVolume(c.volume)
	}

	var (
		res  Result
		over bool
	)
	if c.phase == PhaseRunning {
		res, over = c.tick(keys)
	}

	if surf == nil {
		return res, over
	}
	switch c.phase {
	case PhaseIdle:
		drawTitleScreen(surf)
	case PhaseRunning:
		Render(c.state, surf)
	case PhasePaused:
		Render(c.state, surf)
		drawPausedBanner(surf)
	case PhaseGameOver:
		Render(c.state, surf)
		drawGameOverBanner(surf, c.state)
	}
	drawVolume(surf, c.volume)
	return res, over
}

// tick runs one simulation step. Callers hold c.mu.
func (c *Controller) tick(keys input.Keys) (Result, bool) {
	started := time.Now()
	now := c.clock.Now()
	c.fireSchedules(now)

	kills, collected := c.state.Kills, c.state.Collected
	dead := Step(c.state, keys, now, c.rules)
	c.metrics.addKills(c.state.Kills - kills)
	c.metrics.addCollected(c.state.Collected - collected)
	c.metrics.AddTick(time.Since(started))

	if !dead {
		return Result{}, false
	}
	return c.gameOver()
}

// fireSchedules spawns everything that came due since the last frame.
func (c *Controller) fireSchedules(now time.Time) {
	wave := object.WaveAt(now.Sub(c.state.StartedAt), c.rules.Wave.Period)

	n := c.enemyTimer.Due(now)
	for i := 0; i < n; i++ {
		c.state.Enemies = append(c.state.Enemies, c.spawner.SpawnEnemy(now, wave))
	}
	c.metrics.addEnemiesSpawned(n)

	n = c.powerUpTimer.Due(now)
	for i := 0; i < n; i++ {
		c.state.PowerUps = append(c.state.PowerUps, c.spawner.SpawnPowerUp(now))
	}
	c.metrics.addPowerUpsSpawned(n)
}

// gameOver ends the run once. Callers hold c.mu.
func (c *Controller) gameOver() (Result, bool) {
	if c.phase == PhaseGameOver {
		return Result{}, false
	}
	c.phase = PhaseGameOver
	c.state.Over = true
	c.enemyTimer.Disarm()
	c.powerUpTimer.Disarm()
	c.metrics.incGamesOver()

	res := Result{
		Score:    c.state.Player.Score,
		Wave:     c.state.Wave,
		Kills:    c.state.Kills,
		Survived: c.state.Elapsed(),
	}
	c.log.Infow("game over",
		"score", res.Score,
		"wave", res.Wave,
		"kills", res.Kills,
		"survived", res.Survived,
	)
	return res, true
}
