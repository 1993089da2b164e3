// Package term runs the game directly on a tcell screen. Unlike the Bubble
// Tea frontend it only ticks while a run is in progress: when the run ends
// or is paused the frame loop stops and the runner blocks on key events.
package term

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/racer"
)

var palette = map[core.Color]tcell.Style{
	core.ColorDefault:      tcell.StyleDefault,
	core.ColorRed:          tcell.StyleDefault.Foreground(tcell.ColorMaroon),
	core.ColorGreen:        tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:       tcell.StyleDefault.Foreground(tcell.ColorOlive),
	core.ColorMagenta:      tcell.StyleDefault.Foreground(tcell.ColorPurple),
	core.ColorCyan:         tcell.StyleDefault.Foreground(tcell.ColorTeal),
	core.ColorWhite:        tcell.StyleDefault.Foreground(tcell.ColorSilver),
	core.ColorBrightRed:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	core.ColorBrightYellow: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	core.ColorGray:         tcell.StyleDefault.Foreground(tcell.ColorGray),
}

// Runner drives a game on a tcell screen.
type Runner struct {
	screen tcell.Screen
	game   core.Game
	buf    *core.Screen
	cfg    core.RuntimeConfig
	frame  core.InputFrame
	events chan tcell.Event
	logger *log.Logger
	quit   bool
}

// NewRunner prepares a runner on an initialized screen. The caller owns the
// screen and must call Fini on it.
func NewRunner(screen tcell.Screen, game core.Game, cfg core.RuntimeConfig, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	w, h := screen.Size()
	cfg.ScreenW, cfg.ScreenH = w, h
	game.Reset(cfg)

	return &Runner{
		screen: screen,
		game:   game,
		buf:    core.NewScreen(w, h),
		cfg:    cfg,
		frame:  core.NewInputFrame(),
		events: make(chan tcell.Event, 64),
		logger: logger,
	}
}

// Run blocks until the player quits or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go r.pollEvents(done)

	for {
		// Wait on the start screen, the game over screen or the pause box
		if !r.game.State().Running() {
			if !r.waitForResume(ctx) {
				return ctx.Err()
			}
			continue
		}

		loop := racer.NewLoop(r.cfg.FrameInterval())
		if err := loop.Run(ctx, r.tick); err != nil {
			return err
		}
		if r.quit {
			return nil
		}
	}
}

// pollEvents forwards screen events until the screen is finalized.
func (r *Runner) pollEvents(done <-chan struct{}) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case r.events <- ev:
		case <-done:
			return
		}
	}
}

// tick runs one frame. It returns false to stop the loop when the player
// quits or the run stops running.
func (r *Runner) tick(now time.Time) bool {
	for drained := false; !drained; {
		select {
		case ev := <-r.events:
			if r.handleEvent(ev) {
				r.quit = true
				return false
			}
		default:
			drained = true
		}
	}

	state := r.game.Step(now, r.frame).State
	r.frame.Clear()
	r.draw()
	return state.Running()
}

// waitForResume blocks on key events while no run is in progress. It
// returns false when the player quits or ctx ends.
func (r *Runner) waitForResume(ctx context.Context) bool {
	r.draw()
	for {
		select {
		case <-ctx.Done():
			return false
		case ev := <-r.events:
			if r.handleEvent(ev) {
				r.quit = true
				return false
			}
			if len(r.frame.Actions) > 0 {
				r.game.Step(time.Now(), r.frame)
				r.frame.Clear()
			}
			r.draw()
			if r.game.State().Running() {
				return true
			}
		}
	}
}

// handleEvent applies an event to the pending frame. Returns true on quit.
func (r *Runner) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action := MapKey(ev)
		if action == core.ActionQuit {
			return true
		}
		if action != core.ActionNone {
			r.frame.Set(action)
		}
	case *tcell.EventResize:
		r.screen.Sync()
		w, h := r.screen.Size()
		r.buf.Resize(w, h)
	}
	return false
}

// draw renders the game and copies the buffer to the terminal.
func (r *Runner) draw() {
	r.game.Render(r.buf)
	for y := 0; y < r.buf.Height(); y++ {
		for x := 0; x < r.buf.Width(); x++ {
			cell := r.buf.GetCell(x, y)
			style, ok := palette[cell.Color]
			if !ok {
				style = tcell.StyleDefault
			}
			r.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	r.screen.Show()
}

// MapKey translates a tcell key event to a game action.
func MapKey(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyEnter:
		return core.ActionConfirm
	case tcell.KeyEscape:
		return core.ActionPause
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return core.ActionQuit
		case 'a', 'h':
			return core.ActionLeft
		case 'd', 'l':
			return core.ActionRight
		case ' ':
			return core.ActionConfirm
		case 'r':
			return core.ActionRestart
		case 'p':
			return core.ActionPause
		}
	}
	return core.ActionNone
}
