package emotion

import (
	"encoding/json"
	"time"
)

// Reading is one raw result from an expression source. Expressions may be
// partial or nil; normalization into a Sample happens in NewSample.
type Reading struct {
	FaceFound   bool
	Expressions map[Label]float64
}

// Sample holds the normalized intensity of every label at one sampling tick.
// All seven labels are always present; values are clamped to [0,1]. Samples
// are immutable after creation.
type Sample struct {
	Tick   int
	Time   time.Time
	Values [NumLabels]float64
}

// NewSample builds a Sample from a raw reading. Labels absent from the
// reading default to 0; out-of-range intensities are clamped.
func NewSample(tick int, t time.Time, raw map[Label]float64) Sample {
	s := Sample{Tick: tick, Time: t}
	for _, l := range Labels {
		s.Values[l] = clamp01(raw[l])
	}
	return s
}

// ZeroSample is the substitute for a failed or faceless sampling attempt.
func ZeroSample(tick int, t time.Time) Sample {
	return Sample{Tick: tick, Time: t}
}

// Value returns the intensity of a single label.
func (s Sample) Value(l Label) float64 {
	if l < 0 || l >= NumLabels {
		return 0
	}
	return s.Values[l]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// sampleJSON is the wire form of a Sample: intensities keyed by label name
// so clients don't depend on the enum's numeric values.
type sampleJSON struct {
	Tick        int                `json:"tick"`
	Time        time.Time          `json:"time"`
	Expressions map[string]float64 `json:"expressions"`
}

func (s Sample) MarshalJSON() ([]byte, error) {
	expr := make(map[string]float64, NumLabels)
	for _, l := range Labels {
		expr[l.String()] = s.Values[l]
	}
	return json.Marshal(sampleJSON{Tick: s.Tick, Time: s.Time, Expressions: expr})
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var sj sampleJSON
	if err := json.Unmarshal(data, &sj); err != nil {
		return err
	}
	raw := make(map[Label]float64, len(sj.Expressions))
	for name, v := range sj.Expressions {
		if l, ok := ParseLabel(name); ok {
			raw[l] = v
		}
	}
	*s = NewSample(sj.Tick, sj.Time, raw)
	return nil
}
