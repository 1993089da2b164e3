package racer

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
)

// Observer receives run lifecycle events from a Game. Replay recorders and
// sound cues hook in here.
type Observer interface {
	RunStarted(seed int64, cfg config.RacerConfig)
	Ticked(out Outcome, in Input)
	RunEnded(final Snapshot)
}

// Game adapts a Match to the platform's core.Game interface: it maps
// actions to commands, handles pause, and draws the field.
type Game struct {
	cfg       config.RacerConfig
	logger    *log.Logger
	match     *Match
	seeds     *rand.Rand
	seed      int64 // Seed of the current run
	paused    bool
	travelled float64 // Total distance scrolled, drives lane marking animation
	crashed   bool
	crashedID uint64
	observers []Observer
}

// NewGame creates a game for the given config.
func NewGame(cfg config.RacerConfig, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		cfg:    cfg,
		logger: logger,
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// Observe registers observers for run events.
func (g *Game) Observe(obs ...Observer) {
	g.observers = append(g.observers, obs...)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "racer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Rush"
}

// Reset puts the game back on the start screen. The runtime seed feeds the
// sequence of per-run seeds.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.seeds = rand.New(rand.NewSource(runtime.Seed))
	g.match = newMatch(g.cfg, runtime.Seed, WithLogger(g.logger))
	g.seed = 0
	g.paused = false
	g.travelled = 0
	g.crashed = false
}

// Step processes one frame.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	switch g.match.Phase() {
	case PhaseIdle:
		if in.Has(core.ActionConfirm) {
			g.begin(g.match.Start)
		}

	case PhaseEnded:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.begin(g.match.Restart)
		}

	case PhaseRunning:
		if in.Has(core.ActionPause) {
			g.togglePause()
		}
		if g.paused {
			break
		}
		input := Input{
			Left:  in.Has(core.ActionLeft),
			Right: in.Has(core.ActionRight),
		}
		out := g.match.Tick(now, input)
		g.travelled += out.Travel
		for _, obs := range g.observers {
			obs.Ticked(out, input)
		}
		if out.Crashed {
			g.crashed, g.crashedID = true, out.CrashedID
			final := g.match.Snapshot()
			for _, obs := range g.observers {
				obs.RunEnded(final)
			}
		}
	}

	return core.StepResult{State: g.State()}
}

// begin reseeds the match and runs the given transition.
func (g *Game) begin(transition func() error) {
	seed := g.seeds.Int63()
	g.match.Reseed(seed)
	if err := transition(); err != nil {
		g.logger.Debug("ignored transition", "error", err)
		return
	}
	g.seed = seed
	g.paused = false
	g.travelled = 0
	g.crashed = false
	for _, obs := range g.observers {
		obs.RunStarted(seed, g.cfg)
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if !g.paused {
		// Time spent paused must not reach the simulation
		g.match.ResyncClock()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.match.Phase()
	return core.GameState{
		Score:    g.match.Score(),
		Started:  phase != PhaseIdle,
		GameOver: phase == PhaseEnded,
		Paused:   g.paused,
	}
}

// Snapshot returns the state of the current run.
func (g *Game) Snapshot() Snapshot {
	return g.match.Snapshot()
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}
