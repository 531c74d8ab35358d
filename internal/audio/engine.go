// Package audio plays one-shot cue tones. The beep speaker is the boundary;
// everything above it is a sine oscillator with a fixed attack/hold/decay
// envelope.
package audio

// Engine plays a single fire-and-forget tone. Implementations must not
// block the caller; playback is asynchronous and not cancellable.
type Engine interface {
	Play(freq, gain float64)
}

// Null discards all cues. Used for muted daemons and in tests.
type Null struct{}

func (Null) Play(freq, gain float64) {}
