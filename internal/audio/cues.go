package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueStart  Cue = iota // Run started
	CueReward            // Reward collected
	CueCrash             // Obstacle hit
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueStart:
		return "start"
	case CueReward:
		return "reward"
	case CueCrash:
		return "crash"
	default:
		return "unknown"
	}
}

const (
	startNote    = 90 * time.Millisecond
	rewardLength = 160 * time.Millisecond
	crashLength  = 450 * time.Millisecond
)

// Build creates a fresh streamer for the cue at the given master volume.
// Streamers are single-use; build a new one for every playback.
func Build(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch c {
	case CueStart:
		// Rising three-note arpeggio
		var notes []beep.Streamer
		for _, freq := range []float64{523.25, 659.25, 783.99} {
			tone, err := generators.SineTone(rate, freq)
			if err != nil {
				return nil, fmt.Errorf("audio: start tone: %w", err)
			}
			notes = append(notes, NewEnvelope(beep.Take(rate.N(startNote), tone), startNote, 5*time.Millisecond, 40*time.Millisecond, rate))
		}
		s = beep.Seq(notes...)

	case CueReward:
		fund := NewEnvelope(NewOscillator(1318.5, rewardLength, WaveSine, rate), rewardLength, 2*time.Millisecond, 140*time.Millisecond, rate)
		over := NewEnvelope(NewOscillator(2637, rewardLength, WaveSine, rate), rewardLength, 2*time.Millisecond, 80*time.Millisecond, rate)
		s = beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))

	case CueCrash:
		buzz := NewEnvelope(NewOscillator(70, crashLength, WaveSaw, rate), crashLength, 5*time.Millisecond, 350*time.Millisecond, rate)
		noise := NewEnvelope(NewOscillator(0, crashLength, WaveNoise, rate), crashLength, 0, 300*time.Millisecond, rate)
		s = beep.Mix(newVolume(buzz, 0.6), newVolume(noise, 0.4))

	default:
		return nil, fmt.Errorf("audio: unknown cue %d", c)
	}
	return newVolume(s, volume), nil
}
