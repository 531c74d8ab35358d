package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Envelope timings. The amplitude ramps to target over the attack, holds
// until the decay starts, fades to zero over the decay window, and the
// streamer is released entirely at releaseAt.
const (
	attack    = 10 * time.Millisecond
	decayFrom = 50 * time.Millisecond
	decayLen  = 150 * time.Millisecond
	releaseAt = 250 * time.Millisecond
)

// envelopeGain returns the amplitude at time t for a tone with the given
// target gain. Pure; t is seconds since the cue was triggered.
func envelopeGain(t, target float64) float64 {
	a := attack.Seconds()
	df := decayFrom.Seconds()
	dl := decayLen.Seconds()
	switch {
	case t < 0:
		return 0
	case t < a:
		return target * t / a
	case t < df:
		return target
	case t < df+dl:
		return target * (1 - (t-df)/dl)
	default:
		return 0
	}
}

// tone is a beep.Streamer producing an enveloped sine wave. It reports
// drained once the release point is reached.
type tone struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
}

func newTone(sr beep.SampleRate, freq, gain float64) *tone {
	return &tone{sr: sr, freq: freq, gain: gain}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	total := t.sr.N(releaseAt)
	if t.pos >= total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= total {
			break
		}
		at := float64(t.pos) / float64(t.sr)
		v := math.Sin(2*math.Pi*t.freq*at) * envelopeGain(at, t.gain)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, n > 0
}

func (t *tone) Err() error { return nil }
