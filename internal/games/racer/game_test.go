package racer

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
)

type recordingObserver struct {
	seeds []int64
	ticks []Outcome
	ended []Snapshot
}

func (r *recordingObserver) RunStarted(seed int64, cfg config.RacerConfig) {
	r.seeds = append(r.seeds, seed)
}

func (r *recordingObserver) Ticked(out Outcome, in Input) {
	r.ticks = append(r.ticks, out)
}

func (r *recordingObserver) RunEnded(final Snapshot) {
	r.ended = append(r.ended, final)
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newTestGame(t *testing.T) (*Game, *recordingObserver) {
	t.Helper()
	g, err := NewGame(quietConfig(), nil)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99})
	obs := &recordingObserver{}
	g.Observe(obs)
	return g, obs
}

func TestGameMetadata(t *testing.T) {
	g, _ := newTestGame(t)
	if g.ID() != "racer" {
		t.Errorf("ID() = %q, expected racer", g.ID())
	}
	if g.Title() != "Lane Rush" {
		t.Errorf("Title() = %q, expected Lane Rush", g.Title())
	}
	var _ core.Game = g
}

func TestGameStartAndSteer(t *testing.T) {
	g, obs := newTestGame(t)
	now := time.Unix(100, 0)

	res := g.Step(now, press(core.ActionLeft))
	if res.State.Started {
		t.Fatal("steering should not start the run")
	}

	res = g.Step(now, press(core.ActionConfirm))
	if !res.State.Started || !res.State.Running() {
		t.Fatalf("Confirm should start the run, state %+v", res.State)
	}
	if len(obs.seeds) != 1 || obs.seeds[0] != g.Seed() {
		t.Errorf("observer seeds = %v, expected [%d]", obs.seeds, g.Seed())
	}

	g.Step(now.Add(frame), press(core.ActionRight))
	if lane := g.Snapshot().Lane; lane != 2 {
		t.Errorf("lane = %d, expected 2", lane)
	}
	if len(obs.ticks) != 1 {
		t.Errorf("observer saw %d ticks, expected 1", len(obs.ticks))
	}
}

func TestGamePause(t *testing.T) {
	g, obs := newTestGame(t)
	now := time.Unix(100, 0)
	g.Step(now, press(core.ActionConfirm))
	g.Step(now, core.NewInputFrame())

	res := g.Step(now.Add(frame), press(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	ticks := len(obs.ticks)

	g.Step(now.Add(2*frame), press(core.ActionLeft))
	if g.Snapshot().Lane != 1 {
		t.Error("input should be ignored while paused")
	}
	if len(obs.ticks) != ticks {
		t.Error("paused game should not tick")
	}

	// A long pause must not show up as one huge frame
	res = g.Step(now.Add(time.Hour), press(core.ActionPause))
	if res.State.Paused {
		t.Fatal("expected resumed")
	}
	last := obs.ticks[len(obs.ticks)-1]
	if last.Delta != 0 {
		t.Errorf("first delta after resume = %v, expected 0", last.Delta)
	}
}

func TestGameCrashAndRestart(t *testing.T) {
	g, obs := newTestGame(t)
	now := time.Unix(100, 0)
	g.Step(now, press(core.ActionConfirm))
	firstSeed := g.Seed()

	place(g.match, KindObstacle, g.Snapshot().Lane, 500)
	res := g.Step(now, core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over")
	}
	if len(obs.ended) != 1 {
		t.Fatalf("observer saw %d run ends, expected 1", len(obs.ended))
	}
	if obs.ended[0].Phase != PhaseEnded {
		t.Errorf("final snapshot phase = %s", obs.ended[0].Phase)
	}

	res = g.Step(now, press(core.ActionRestart))
	if res.State.GameOver || !res.State.Running() {
		t.Fatalf("Restart should start a new run, state %+v", res.State)
	}
	if len(obs.seeds) != 2 {
		t.Errorf("observer saw %d run starts, expected 2", len(obs.seeds))
	}
	if g.Seed() == firstSeed {
		t.Error("each run should get a fresh seed")
	}
	snap := g.Snapshot()
	if snap.Score != 0 || len(snap.Entities) != 0 || snap.Lane != 1 {
		t.Errorf("restart left stale state: %+v", snap)
	}
}

func TestGameSeedsAreReproducible(t *testing.T) {
	a, _ := newTestGame(t)
	b, _ := newTestGame(t)
	now := time.Unix(100, 0)
	a.Step(now, press(core.ActionConfirm))
	b.Step(now, press(core.ActionConfirm))

	if a.Seed() != b.Seed() {
		t.Errorf("same runtime seed gave run seeds %d and %d", a.Seed(), b.Seed())
	}
}

func TestGameRender(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "Lane Rush") {
		t.Errorf("idle screen should show the title:\n%s", out)
	}

	now := time.Unix(100, 0)
	g.Step(now, press(core.ActionConfirm))
	place(g.match, KindReward, 0, 100)
	g.Render(screen)
	out := screen.String()
	if !strings.ContainsRune(out, CarChar) {
		t.Errorf("running screen should show the car:\n%s", out)
	}
	if !strings.ContainsRune(out, RewardChar) {
		t.Errorf("running screen should show the reward:\n%s", out)
	}
	if !strings.Contains(out, "Score: 0") {
		t.Errorf("running screen should show the score:\n%s", out)
	}

	place(g.match, KindObstacle, g.Snapshot().Lane, 500)
	g.Step(now, core.NewInputFrame())
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "GAME OVER") {
		t.Errorf("ended screen should show game over:\n%s", out)
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(20, 6)
	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "WINDOW TOO SMALL") {
		t.Errorf("expected too-small message:\n%s", out)
	}
}
