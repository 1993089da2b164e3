package racer

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/config"
)

// ErrInvalidTransition is returned when Start or Restart is called from a
// phase that does not allow it. The match is left untouched.
var ErrInvalidTransition = errors.New("racer: invalid phase transition")

// Outcome reports what happened during one tick.
type Outcome struct {
	Delta     time.Duration // Sanitized delta the tick ran with
	Travel    float64       // Distance every entity moved
	Spawned   int
	Dropped   int // Entities that left the bottom of the field
	Collected int // Rewards scored this tick
	Points    int
	Crashed   bool
	CrashedID uint64 // Obstacle that ended the run, valid when Crashed
}

// Match is one simulation context: every piece of mutable state of a run,
// including the clock, the RNG and the ID counter, lives here so independent
// matches can coexist. A Match is not safe for concurrent use.
type Match struct {
	cfg     config.RacerConfig
	field   Field
	clock   Clock
	ramp    Ramp
	spawner Spawner
	rng     *rand.Rand
	logger  *log.Logger

	phase    Phase
	score    int
	lane     int
	entities []Entity
	nextID   uint64
	elapsed  time.Duration
	ticks    uint64
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger used for anomalies and phase changes.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMatch creates an idle match. The seed drives all spawning randomness.
func NewMatch(cfg config.RacerConfig, seed int64, opts ...Option) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newMatch(cfg, seed, opts...), nil
}

// newMatch skips validation; callers must pass a validated config.
func newMatch(cfg config.RacerConfig, seed int64, opts ...Option) *Match {
	m := &Match{
		cfg:      cfg,
		field:    NewField(cfg.Field),
		ramp:     NewRamp(cfg.Speed.Initial, cfg.Speed.RampRate),
		spawner:  NewSpawner(cfg),
		rng:      rand.New(rand.NewSource(seed)),
		logger:   log.New(io.Discard),
		entities: make([]Entity, 0, 16),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

// reset restores every per-run value. Phase is left to the caller.
func (m *Match) reset() {
	m.score = 0
	m.lane = m.field.CenterLane()
	m.entities = m.entities[:0]
	m.nextID = 0
	m.elapsed = 0
	m.ticks = 0
	m.ramp.Reset()
	m.clock.Reset()
}

// Reseed replaces the random source. Used between runs so each run can be
// replayed from its own seed.
func (m *Match) Reseed(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

// Start begins the first run. Only valid while idle.
func (m *Match) Start() error {
	if m.phase != PhaseIdle {
		return fmt.Errorf("%w: start while %s", ErrInvalidTransition, m.phase)
	}
	m.reset()
	m.phase = PhaseRunning
	m.logger.Debug("run started", "lane", m.lane, "speed", m.ramp.Speed())
	return nil
}

// Restart begins a new run after the previous one ended. The resulting
// state is the same no matter how long the previous run lasted.
func (m *Match) Restart() error {
	if m.phase != PhaseEnded {
		return fmt.Errorf("%w: restart while %s", ErrInvalidTransition, m.phase)
	}
	m.reset()
	m.phase = PhaseRunning
	m.logger.Debug("run restarted")
	return nil
}

// ShiftLeft moves the player one lane left. Returns false at the left edge
// or when the match is not running.
func (m *Match) ShiftLeft() bool {
	return m.shift(-1)
}

// ShiftRight moves the player one lane right. Returns false at the right
// edge or when the match is not running.
func (m *Match) ShiftRight() bool {
	return m.shift(1)
}

func (m *Match) shift(d int) bool {
	if m.phase != PhaseRunning {
		return false
	}
	next := m.field.ClampLane(m.lane + d)
	if next == m.lane {
		return false
	}
	m.lane = next
	return true
}

// ResyncClock forgets the last frame timestamp so the next Tick has a zero
// delta. Used when the host stops delivering frames for a while (pause).
func (m *Match) ResyncClock() {
	m.clock.Reset()
}

// Tick runs one frame at wall-clock time now.
func (m *Match) Tick(now time.Time, in Input) Outcome {
	if m.phase != PhaseRunning {
		return Outcome{}
	}
	return m.Advance(m.clock.Tick(now), in)
}

// Advance runs one tick with an explicit delta: apply input, ramp the
// speed, move and prune entities, resolve collisions, score, then spawn.
// It is a no-op unless the match is running.
func (m *Match) Advance(dt time.Duration, in Input) Outcome {
	if m.phase != PhaseRunning {
		return Outcome{}
	}
	if dt < 0 {
		m.logger.Debug("clamped negative frame delta", "delta", dt, "tick", m.ticks)
		dt = 0
	}

	// Left then right: pressing both in one tick cancels out away from the edges
	if in.Left {
		m.ShiftLeft()
	}
	if in.Right {
		m.ShiftRight()
	}

	dtMs := float64(dt) / float64(time.Millisecond)
	m.elapsed += dt
	m.ticks++

	out := Outcome{Delta: dt}

	speed := m.ramp.Advance(dtMs)
	out.Travel = speed * dtMs / m.cfg.Speed.ReferenceFrameMs
	m.entities, out.Dropped = advanceEntities(m.entities, out.Travel, m.field.Height)

	hits := resolveCollisions(m.field, m.lane, m.entities)
	m.entities = hits.remaining
	if hits.crashed {
		// Rewards touched on the crash tick are not scored
		m.phase = PhaseEnded
		out.Crashed = true
		out.CrashedID = hits.crashedID
		m.logger.Debug("run ended",
			"score", m.score,
			"ticks", m.ticks,
			"elapsed", m.elapsed,
			"speed", speed,
		)
		return out
	}

	out.Collected = hits.consumed
	out.Points = hits.consumed * m.cfg.Scoring.RewardPoints
	m.score += out.Points

	out.Spawned = m.spawn(dtMs)
	return out
}

// spawn rolls every kind once and appends the new entities above the field.
func (m *Match) spawn(dtMs float64) int {
	n := 0
	for _, kind := range spawnOrder {
		lane, ok := m.spawner.Roll(kind, dtMs, m.rng)
		if !ok {
			continue
		}
		m.entities = append(m.entities, Entity{
			ID:   m.nextID,
			Lane: lane,
			Y:    -m.field.ObjectSize,
			Kind: kind,
		})
		m.nextID++
		n++
	}
	return n
}

// Phase returns the current lifecycle phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// Score returns the current score.
func (m *Match) Score() int {
	return m.score
}

// Lane returns the player's lane.
func (m *Match) Lane() int {
	return m.lane
}

// Field returns the match geometry.
func (m *Match) Field() Field {
	return m.field
}

// Config returns the config the match was created with.
func (m *Match) Config() config.RacerConfig {
	return m.cfg
}
