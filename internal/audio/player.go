package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/games/racer"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Player mixes cues into the speaker. A zero Player is not usable; create
// one with NewPlayer. All methods are safe to call before Init or after
// Close, in which case they do nothing.
type Player struct {
	mu          sync.Mutex
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	logger      *log.Logger
}

// NewPlayer creates a player with a master volume in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		volume: volume,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the audio device. Calling it twice is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue. Overlapping cues are mixed.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Build(c, SampleRate, p.volume)
	if err != nil {
		p.logger.Warn("cannot build cue", "cue", c, "err", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Sounder plays cues. *Player implements it.
type Sounder interface {
	Play(c Cue)
}

// Cues turns run events into sound cues.
type Cues struct {
	out Sounder
}

// NewCues creates an observer playing through out.
func NewCues(out Sounder) *Cues {
	return &Cues{out: out}
}

var _ racer.Observer = (*Cues)(nil)

func (c *Cues) RunStarted(int64, config.RacerConfig) {
	c.out.Play(CueStart)
}

func (c *Cues) Ticked(out racer.Outcome, _ racer.Input) {
	switch {
	case out.Crashed:
		c.out.Play(CueCrash)
	case out.Collected > 0:
		c.out.Play(CueReward)
	}
}

func (c *Cues) RunEnded(racer.Snapshot) {}
