package audio

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Beeper plays cue tones through the system speaker. Each Play spawns an
// independent streamer; rapid cues overlap rather than queue.
type Beeper struct{}

// NewBeeper initializes the speaker. Call once per process.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Beeper{}, nil
}

func (b *Beeper) Play(freq, gain float64) {
	if freq <= 0 || gain <= 0 {
		return
	}
	speaker.Play(newTone(sampleRate, freq, gain))
}
