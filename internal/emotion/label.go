package emotion

import "encoding/json"

// Label identifies one of the seven tracked facial expressions.
type Label int

const (
	Neutral Label = iota
	Happy
	Sad
	Angry
	Fearful
	Disgusted
	Surprised
)

// NumLabels is the size of the closed label set.
const NumLabels = 7

// Labels lists every label in its fixed order. Dominant-emotion tie-breaking,
// row layout, and wire encoding all depend on this ordering.
var Labels = [NumLabels]Label{Neutral, Happy, Sad, Angry, Fearful, Disgusted, Surprised}

var labelNames = map[Label]string{
	Neutral:   "neutral",
	Happy:     "happy",
	Sad:       "sad",
	Angry:     "angry",
	Fearful:   "fearful",
	Disgusted: "disgusted",
	Surprised: "surprised",
}

var labelFromName = map[string]Label{
	"neutral":   Neutral,
	"happy":     Happy,
	"sad":       Sad,
	"angry":     Angry,
	"fearful":   Fearful,
	"disgusted": Disgusted,
	"surprised": Surprised,
}

func (l Label) String() string {
	if s, ok := labelNames[l]; ok {
		return s
	}
	return "unknown"
}

// ParseLabel maps a raw detector label name onto the fixed set.
func ParseLabel(name string) (Label, bool) {
	l, ok := labelFromName[name]
	return l, ok
}

func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := labelFromName[s]; ok {
		*l = v
	}
	return nil
}
