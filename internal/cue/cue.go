// Package cue turns a sample's dominant emotion into a short audio tone.
package cue

import (
	"sync"

	"github.com/meowmocha24/emotionmap/internal/audio"
	"github.com/meowmocha24/emotionmap/internal/config"
	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// Cue is the transient parameter set of one emitted tone. Derived per tick,
// never stored.
type Cue struct {
	Label     emotion.Label `json:"label"`
	Intensity float64       `json:"intensity"`
	Frequency float64       `json:"frequency"`
	Loudness  float64       `json:"loudness"`
}

// Dominant returns the label with the highest intensity. The scan is a
// strict > comparison in fixed label order, so on a tie the earlier label
// wins.
func Dominant(s emotion.Sample) (emotion.Label, float64) {
	best := emotion.Labels[0]
	bestVal := s.Value(best)
	for _, l := range emotion.Labels[1:] {
		if v := s.Value(l); v > bestVal {
			best = l
			bestVal = v
		}
	}
	return best, bestVal
}

// Emitter maps samples to audio cues. It stays silent until Unlock is
// called once — the analog of the browser's audio-unlock gesture.
type Emitter struct {
	mu        sync.Mutex
	unlocked  bool
	enabled   bool
	threshold float64
	base      [emotion.NumLabels]float64
	engine    audio.Engine
}

func NewEmitter(cfg *config.Config, engine audio.Engine) *Emitter {
	e := &Emitter{
		enabled:   cfg.Cue.Enabled,
		threshold: cfg.Cue.Threshold,
		engine:    engine,
	}
	for _, l := range emotion.Labels {
		e.base[l] = cfg.BaseFrequency(l.String())
	}
	return e
}

// Unlock enables playback. Idempotent.
func (e *Emitter) Unlock() {
	e.mu.Lock()
	e.unlocked = true
	e.mu.Unlock()
}

// Unlocked reports whether playback has been enabled.
func (e *Emitter) Unlocked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unlocked
}

// Frequency computes the pitch for a label at an intensity: the base
// frequency linearly modulated within a -20%/+20% envelope.
func (e *Emitter) Frequency(l emotion.Label, intensity float64) float64 {
	return e.base[l] * (0.8 + intensity*0.4)
}

// Loudness maps intensity to gain: 0.05 at silence, 0.3 at full intensity.
func Loudness(intensity float64) float64 {
	return 0.05 + intensity*0.25
}

// Emit fires one cue for the sample's dominant emotion if it clears the
// threshold. Playback is fire-and-forget; the returned Cue (valid when ok)
// lets the caller broadcast what was played. Cues before unlock are
// silently dropped.
func (e *Emitter) Emit(s emotion.Sample) (Cue, bool) {
	e.mu.Lock()
	unlocked := e.unlocked
	e.mu.Unlock()
	if !e.enabled || !unlocked {
		return Cue{}, false
	}

	label, intensity := Dominant(s)
	if intensity <= e.threshold {
		return Cue{}, false
	}

	c := Cue{
		Label:     label,
		Intensity: intensity,
		Frequency: e.Frequency(label, intensity),
		Loudness:  Loudness(intensity),
	}
	e.engine.Play(c.Frequency, c.Loudness)
	return c, true
}
