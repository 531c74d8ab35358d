// Package client provides WebSocket and HTTP clients for the emotionmap
// daemon. Types mirror the daemon wire protocol without importing daemon
// packages.
package client

import (
	"encoding/json"
	"time"
)

// MessageType identifies the kind of WebSocket message.
type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgDelta    MessageType = "delta"
	MsgCue      MessageType = "cue"
)

// WSMessage is the envelope for all WebSocket messages.
type WSMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Labels is the fixed label order. Must match the daemon's emotion package.
var Labels = []string{"neutral", "happy", "sad", "angry", "fearful", "disgusted", "surprised"}

// Sample mirrors one history entry: every label's intensity at one tick.
type Sample struct {
	Tick        int                `json:"tick"`
	Time        time.Time          `json:"time"`
	Expressions map[string]float64 `json:"expressions"`
}

// Value returns the intensity for a label name, zero when absent.
func (s Sample) Value(label string) float64 {
	return s.Expressions[label]
}

// Cue mirrors an emitted audio cue.
type Cue struct {
	Label     string  `json:"label"`
	Intensity float64 `json:"intensity"`
	Frequency float64 `json:"frequency"`
	Loudness  float64 `json:"loudness"`
}

// SnapshotPayload is sent on connect and on periodic resync.
type SnapshotPayload struct {
	Samples       []Sample `json:"samples"`
	AudioUnlocked bool     `json:"audioUnlocked"`
}

// DeltaPayload carries newly appended samples.
type DeltaPayload struct {
	Samples []Sample `json:"samples"`
}

// CuePayload wraps a cue event.
type CuePayload struct {
	Cue Cue `json:"cue"`
}

// Stats mirrors /api/stats.
type Stats struct {
	Samples       int     `json:"samples"`
	Clients       int     `json:"clients"`
	AudioUnlocked bool    `json:"audioUnlocked"`
	UptimeSec     float64 `json:"uptimeSec"`
	CPUPercent    float64 `json:"cpuPercent"`
	RSSBytes      uint64  `json:"rssBytes"`
	Goroutines    int     `json:"goroutines"`
}
