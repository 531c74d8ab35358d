package cue

import (
	"math"
	"testing"
	"time"

	"github.com/meowmocha24/emotionmap/internal/config"
	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// fakeEngine records every Play call.
type fakeEngine struct {
	plays []struct{ freq, gain float64 }
}

func (f *fakeEngine) Play(freq, gain float64) {
	f.plays = append(f.plays, struct{ freq, gain float64 }{freq, gain})
}

func newTestEmitter() (*Emitter, *fakeEngine) {
	engine := &fakeEngine{}
	e := NewEmitter(config.Default(), engine)
	e.Unlock()
	return e, engine
}

func sampleWith(values map[emotion.Label]float64) emotion.Sample {
	return emotion.NewSample(0, time.Now(), values)
}

func TestDominant(t *testing.T) {
	tests := []struct {
		name     string
		values   map[emotion.Label]float64
		want     emotion.Label
		wantVal  float64
	}{
		{
			name:    "SingleClearMax",
			values:  map[emotion.Label]float64{emotion.Happy: 0.9, emotion.Sad: 0.3},
			want:    emotion.Happy,
			wantVal: 0.9,
		},
		{
			name:    "AllZero",
			values:  nil,
			want:    emotion.Neutral,
			wantVal: 0,
		},
		{
			name:    "TieFirstInOrderWins",
			values:  map[emotion.Label]float64{emotion.Sad: 0.6, emotion.Surprised: 0.6},
			want:    emotion.Sad,
			wantVal: 0.6,
		},
		{
			name:    "TieWithNeutral",
			values:  map[emotion.Label]float64{emotion.Neutral: 0.4, emotion.Angry: 0.4},
			want:    emotion.Neutral,
			wantVal: 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, val := Dominant(sampleWith(tt.values))
			if got != tt.want {
				t.Errorf("Dominant() label = %v, want %v", got, tt.want)
			}
			if val != tt.wantVal {
				t.Errorf("Dominant() value = %v, want %v", val, tt.wantVal)
			}
		})
	}
}

func TestEmitHappyNumbers(t *testing.T) {
	e, engine := newTestEmitter()

	c, ok := e.Emit(sampleWith(map[emotion.Label]float64{emotion.Happy: 0.9}))
	if !ok {
		t.Fatal("Emit returned ok=false, want a cue")
	}
	if c.Label != emotion.Happy {
		t.Errorf("cue label = %v, want happy", c.Label)
	}
	// 880 * (0.8 + 0.9*0.4) = 1020.8
	if math.Abs(c.Frequency-1020.8) > 1e-9 {
		t.Errorf("frequency = %v, want 1020.8", c.Frequency)
	}
	// 0.05 + 0.9*0.25 = 0.275
	if math.Abs(c.Loudness-0.275) > 1e-9 {
		t.Errorf("loudness = %v, want 0.275", c.Loudness)
	}

	if len(engine.plays) != 1 {
		t.Fatalf("engine got %d plays, want 1", len(engine.plays))
	}
	if engine.plays[0].freq != c.Frequency || engine.plays[0].gain != c.Loudness {
		t.Errorf("engine played (%v, %v), want (%v, %v)",
			engine.plays[0].freq, engine.plays[0].gain, c.Frequency, c.Loudness)
	}
}

func TestEmitBelowThreshold(t *testing.T) {
	e, engine := newTestEmitter()

	if _, ok := e.Emit(sampleWith(map[emotion.Label]float64{emotion.Angry: 0.15})); ok {
		t.Error("Emit below threshold returned a cue")
	}
	if len(engine.plays) != 0 {
		t.Errorf("engine got %d plays, want 0", len(engine.plays))
	}
}

func TestEmitAtThresholdIsSilent(t *testing.T) {
	// Strictly greater than 0.2 is required.
	e, engine := newTestEmitter()
	if _, ok := e.Emit(sampleWith(map[emotion.Label]float64{emotion.Happy: 0.2})); ok {
		t.Error("Emit at exactly the threshold returned a cue")
	}
	if len(engine.plays) != 0 {
		t.Errorf("engine got %d plays, want 0", len(engine.plays))
	}
}

func TestEmitDroppedBeforeUnlock(t *testing.T) {
	engine := &fakeEngine{}
	e := NewEmitter(config.Default(), engine)

	if _, ok := e.Emit(sampleWith(map[emotion.Label]float64{emotion.Happy: 0.9})); ok {
		t.Error("Emit before unlock returned a cue")
	}
	if len(engine.plays) != 0 {
		t.Errorf("engine got %d plays before unlock, want 0", len(engine.plays))
	}

	e.Unlock()
	if _, ok := e.Emit(sampleWith(map[emotion.Label]float64{emotion.Happy: 0.9})); !ok {
		t.Error("Emit after unlock returned ok=false")
	}
	if len(engine.plays) != 1 {
		t.Errorf("engine got %d plays after unlock, want 1", len(engine.plays))
	}
}

func TestEmitDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Cue.Enabled = false
	engine := &fakeEngine{}
	e := NewEmitter(cfg, engine)
	e.Unlock()

	if _, ok := e.Emit(sampleWith(map[emotion.Label]float64{emotion.Happy: 0.9})); ok {
		t.Error("disabled emitter returned a cue")
	}
}

func TestSuccessiveCuesAllPlay(t *testing.T) {
	e, engine := newTestEmitter()
	for i := 0; i < 5; i++ {
		e.Emit(sampleWith(map[emotion.Label]float64{emotion.Surprised: 0.8}))
	}
	if len(engine.plays) != 5 {
		t.Errorf("engine got %d plays, want 5 (cues must not suppress each other)", len(engine.plays))
	}
}

func TestFrequencyEnvelopeBounds(t *testing.T) {
	e, _ := newTestEmitter()

	// Intensity 0 pulls the pitch 20% under base, intensity 1 pushes 20% over.
	lo := e.Frequency(emotion.Happy, 0)
	hi := e.Frequency(emotion.Happy, 1)
	if math.Abs(lo-880*0.8) > 1e-9 {
		t.Errorf("frequency at 0 = %v, want %v", lo, 880*0.8)
	}
	if math.Abs(hi-880*1.2) > 1e-9 {
		t.Errorf("frequency at 1 = %v, want %v", hi, 880*1.2)
	}
}

func TestLoudnessBounds(t *testing.T) {
	if got := Loudness(0); got != 0.05 {
		t.Errorf("Loudness(0) = %v, want 0.05", got)
	}
	if got := Loudness(1); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("Loudness(1) = %v, want 0.3", got)
	}
}
