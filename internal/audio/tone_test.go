package audio

import (
	"math"
	"testing"

	"github.com/faiface/beep"
)

func TestEnvelopeGainShape(t *testing.T) {
	const target = 0.275

	tests := []struct {
		name string
		at   float64 // seconds
		want float64
	}{
		{"BeforeTrigger", -0.001, 0},
		{"Start", 0, 0},
		{"MidAttack", 0.005, target / 2},
		{"AttackDone", 0.010, target},
		{"Hold", 0.030, target},
		{"DecayStart", 0.050, target},
		{"MidDecay", 0.125, target / 2},
		{"DecayDone", 0.200, 0},
		{"AfterRelease", 0.260, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := envelopeGain(tt.at, target)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("envelopeGain(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestEnvelopeAttackMonotone(t *testing.T) {
	prev := -1.0
	for at := 0.0; at <= 0.010; at += 0.001 {
		g := envelopeGain(at, 1)
		if g < prev {
			t.Fatalf("attack not monotone at %v: %v < %v", at, g, prev)
		}
		prev = g
	}
}

func TestToneStreamsUntilRelease(t *testing.T) {
	sr := beep.SampleRate(44100)
	tone := newTone(sr, 440, 0.2)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		if !ok {
			break
		}
	}

	want := sr.N(releaseAt)
	if total != want {
		t.Errorf("tone produced %d samples, want %d (release at 250ms)", total, want)
	}

	// Drained streamer stays drained.
	if n, ok := tone.Stream(buf); n != 0 || ok {
		t.Errorf("drained tone streamed again: n=%d ok=%v", n, ok)
	}
}

func TestToneAmplitudeWithinGain(t *testing.T) {
	sr := beep.SampleRate(44100)
	const gain = 0.3
	tone := newTone(sr, 880, gain)

	buf := make([][2]float64, 1024)
	for {
		n, ok := tone.Stream(buf)
		for i := 0; i < n; i++ {
			if math.Abs(buf[i][0]) > gain+1e-9 {
				t.Fatalf("sample %v exceeds gain %v", buf[i][0], gain)
			}
			if buf[i][0] != buf[i][1] {
				t.Fatal("left and right channels differ")
			}
		}
		if !ok {
			break
		}
	}
}

func TestToneErrIsNil(t *testing.T) {
	if err := newTone(44100, 440, 0.1).Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}
