package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/meowmocha24/emotionmap/internal/cue"
	"github.com/meowmocha24/emotionmap/internal/emotion"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Broadcaster fans samples out to WebSocket clients. New samples are queued
// and flushed on a throttle so a fast sampler doesn't produce one frame per
// tick; full snapshots go out periodically and on connect.
type Broadcaster struct {
	mu             sync.RWMutex
	clients        map[*client]bool
	history        *emotion.History
	throttle       time.Duration
	snapshotTicker *time.Ticker
	unlockedHook   func() bool

	flushMu        sync.Mutex
	pendingSamples []emotion.Sample
	flushTimer     *time.Timer
}

// NewBroadcaster starts the snapshot loop. The unlockedHook supplies the
// audio-unlock flag reported in snapshots; it must be set here because the
// loop reads it concurrently from the moment it starts.
func NewBroadcaster(history *emotion.History, throttle, snapshotInterval time.Duration, unlockedHook func() bool) *Broadcaster {
	b := &Broadcaster{
		clients:      make(map[*client]bool),
		history:      history,
		throttle:     throttle,
		unlockedHook: unlockedHook,
	}

	b.snapshotTicker = time.NewTicker(snapshotInterval)
	go b.snapshotLoop()

	return b
}

func (b *Broadcaster) audioUnlocked() bool {
	if b.unlockedHook == nil {
		return false
	}
	return b.unlockedHook()
}

func (b *Broadcaster) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)

	b.mu.Lock()
	b.clients[c] = true
	b.mu.Unlock()

	snapshot := WSMessage{
		Type: MsgSnapshot,
		Payload: SnapshotPayload{
			Samples:       b.history.Snapshot(),
			AudioUnlocked: b.audioUnlocked(),
		},
	}
	data, _ := json.Marshal(snapshot)

	select {
	case c.send <- data:
	default:
		// Client too slow, drop the snapshot
	}

	return c
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		c.close()
	}
	b.mu.Unlock()
}

// QueueSample schedules a sample for the next throttled delta flush.
func (b *Broadcaster) QueueSample(s emotion.Sample) {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	b.pendingSamples = append(b.pendingSamples, s)

	if b.flushTimer == nil {
		b.flushTimer = time.AfterFunc(b.throttle, b.flush)
	}
}

// BroadcastCue sends a cue event immediately; cue timing matters more than
// batching.
func (b *Broadcaster) BroadcastCue(c cue.Cue) {
	b.broadcast(WSMessage{
		Type:    MsgCue,
		Payload: CuePayload{Cue: c},
	})
}

func (b *Broadcaster) flush() {
	b.flushMu.Lock()
	samples := b.pendingSamples
	b.pendingSamples = nil
	b.flushTimer = nil
	b.flushMu.Unlock()

	if len(samples) == 0 {
		return
	}

	b.broadcast(WSMessage{
		Type:    MsgDelta,
		Payload: DeltaPayload{Samples: samples},
	})
}

func (b *Broadcaster) snapshotLoop() {
	for range b.snapshotTicker.C {
		b.broadcast(WSMessage{
			Type: MsgSnapshot,
			Payload: SnapshotPayload{
				Samples:       b.history.Snapshot(),
				AudioUnlocked: b.audioUnlocked(),
			},
		})
	}
}

func (b *Broadcaster) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			// Client can't keep up, disconnect it
			log.Printf("ws client too slow, disconnecting")
			b.RemoveClient(c)
		}
	}
}

func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
