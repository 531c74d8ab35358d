package source

import (
	"context"
	"math"
	"math/rand"

	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// wave describes one label's synthetic intensity curve: a slow sine swell
// with per-tick jitter.
type wave struct {
	label  emotion.Label
	period float64 // ticks per full cycle
	phase  float64 // radians
	peak   float64 // max intensity at the crest
}

// Synthetic generates plausible emotion readings without a camera. Each
// label swells and fades on its own cycle so the heat-map shows moving bands
// and the cue emitter fires on rotating dominants. Occasional "no face"
// dropouts exercise the zero-sample path.
type Synthetic struct {
	rng     *rand.Rand
	tick    int
	waves   []wave
	dropout float64 // probability a tick reports no face
}

func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{
		rng: rand.New(rand.NewSource(seed)),
		waves: []wave{
			{label: emotion.Neutral, period: 40, phase: 0, peak: 0.55},
			{label: emotion.Happy, period: 90, phase: 1.1, peak: 0.95},
			{label: emotion.Sad, period: 130, phase: 2.4, peak: 0.7},
			{label: emotion.Angry, period: 170, phase: 3.9, peak: 0.6},
			{label: emotion.Fearful, period: 110, phase: 5.1, peak: 0.5},
			{label: emotion.Disgusted, period: 210, phase: 0.6, peak: 0.45},
			{label: emotion.Surprised, period: 70, phase: 4.4, peak: 0.85},
		},
		dropout: 0.03,
	}
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Probe(ctx context.Context) error { return nil }

func (s *Synthetic) Detect(ctx context.Context) (emotion.Reading, error) {
	s.tick++

	if s.rng.Float64() < s.dropout {
		return emotion.Reading{FaceFound: false}, nil
	}

	expr := make(map[emotion.Label]float64, emotion.NumLabels)
	for _, w := range s.waves {
		base := math.Sin(2*math.Pi*float64(s.tick)/w.period + w.phase)
		if base < 0 {
			base = 0
		}
		v := base*w.peak + s.rng.Float64()*0.05
		if v > 1 {
			v = 1
		}
		expr[w.label] = v
	}
	return emotion.Reading{FaceFound: true, Expressions: expr}, nil
}
