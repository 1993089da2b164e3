package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/lanerush/internal/games/racer"
)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for _, v := range smp {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream did not end")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate)
		n, peak := drain(t, osc)
		if want := testRate.N(100 * time.Millisecond); n != want {
			t.Errorf("wave %d: streamed %d samples, expected %d", wave, n, want)
		}
		if peak > 1 {
			t.Errorf("wave %d: peak %f out of range", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

func TestEnvelopeFades(t *testing.T) {
	d := 50 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d samples, expected %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, expected silence at attack start", buf[0][0])
	}
	if mid := buf[n/2][0]; mid != 1 {
		t.Errorf("sustain sample = %f, expected 1", mid)
	}
	if last := buf[n-1][0]; last <= 0 || last > 0.01 {
		t.Errorf("last sample = %f, expected near-silent release tail", last)
	}
}

func TestBuildCues(t *testing.T) {
	tests := []struct {
		cue    Cue
		length time.Duration
	}{
		{CueStart, 3 * startNote},
		{CueReward, rewardLength},
		{CueCrash, crashLength},
	}

	for _, tc := range tests {
		t.Run(tc.cue.String(), func(t *testing.T) {
			s, err := Build(tc.cue, testRate, 0.5)
			if err != nil {
				t.Fatalf("Build() failed: %v", err)
			}
			n, peak := drain(t, s)
			want := testRate.N(tc.length)
			if n < want-3 || n > want+3 {
				t.Errorf("cue length %d samples, expected about %d", n, want)
			}
			if peak == 0 {
				t.Error("cue is silent")
			}
		})
	}
}

func TestBuildSilentVolume(t *testing.T) {
	s, err := Build(CueReward, testRate, 0)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if _, peak := drain(t, s); peak != 0 {
		t.Errorf("zero volume peak = %f, expected silence", peak)
	}
}

func TestBuildUnknownCue(t *testing.T) {
	if _, err := Build(cueCount, testRate, 1); err == nil {
		t.Error("expected error for unknown cue")
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(0.5, nil)
	// Must not panic or block before Init
	p.Play(CueCrash)
	p.Close()
}

type recordingSounder struct {
	played []Cue
}

func (r *recordingSounder) Play(c Cue) {
	r.played = append(r.played, c)
}

func TestCuesObserver(t *testing.T) {
	rec := &recordingSounder{}
	cues := NewCues(rec)

	cues.RunStarted(1, testConfig())
	cues.Ticked(racer.Outcome{}, racer.Input{})
	cues.Ticked(racer.Outcome{Collected: 2, Points: 20}, racer.Input{})
	cues.Ticked(racer.Outcome{Crashed: true}, racer.Input{})
	cues.RunEnded(racer.Snapshot{})

	want := []Cue{CueStart, CueReward, CueCrash}
	if len(rec.played) != len(want) {
		t.Fatalf("played %v, expected %v", rec.played, want)
	}
	for i := range want {
		if rec.played[i] != want[i] {
			t.Errorf("cue %d = %s, expected %s", i, rec.played[i], want[i])
		}
	}
}
