package ws

import (
	"github.com/meowmocha24/emotionmap/internal/cue"
	"github.com/meowmocha24/emotionmap/internal/emotion"
)

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgDelta    MessageType = "delta"
	MsgCue      MessageType = "cue"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// SnapshotPayload carries the full history. Sent on connect and on the
// periodic resync tick.
type SnapshotPayload struct {
	Samples       []emotion.Sample `json:"samples"`
	AudioUnlocked bool             `json:"audioUnlocked"`
}

// DeltaPayload carries samples appended since the last flush.
type DeltaPayload struct {
	Samples []emotion.Sample `json:"samples"`
}

// CuePayload mirrors the audio cue that just played so clients can flash
// the dominant row.
type CuePayload struct {
	Cue cue.Cue `json:"cue"`
}
