package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/meowmocha24/emotionmap/internal/config"
	"github.com/meowmocha24/emotionmap/internal/cue"
	"github.com/meowmocha24/emotionmap/internal/diag"
	"github.com/meowmocha24/emotionmap/internal/emotion"
)

type Server struct {
	config      *config.Config
	history     *emotion.History
	broadcaster *Broadcaster
	emitter     *cue.Emitter
	collector   *diag.Collector
}

func NewServer(cfg *config.Config, history *emotion.History, broadcaster *Broadcaster, emitter *cue.Emitter, collector *diag.Collector) *Server {
	return &Server{
		config:      cfg,
		history:     history,
		broadcaster: broadcaster,
		emitter:     emitter,
		collector:   collector,
	}
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/unlock", s.handleUnlock)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	log.Printf("WebSocket client connected: %s", r.RemoteAddr)
	c := s.broadcaster.AddClient(conn)

	go func() {
		defer func() {
			s.broadcaster.RemoveClient(c)
			log.Printf("WebSocket client disconnected: %s", r.RemoteAddr)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SnapshotPayload{
		Samples:       s.history.Snapshot(),
		AudioUnlocked: s.emitter.Unlocked(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"intervalMs":  s.config.Sampler.Interval.Milliseconds(),
		"threshold":   s.config.Cue.Threshold,
		"columnWidth": s.config.Heatmap.ColumnWidth,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stats := s.collector.Collect(s.history, s.broadcaster.ClientCount(), s.emitter.Unlocked())
	json.NewEncoder(w).Encode(stats)
}

// handleUnlock flips the one-time audio unlock. The unlock gesture happens
// on the client; the cue emitter lives here.
func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.emitter.Unlock()
	log.Println("Audio unlocked")
	w.WriteHeader(http.StatusNoContent)
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	// url.Parse keeps the brackets around IPv6 hosts.
	if strings.HasPrefix(host, "[::1]:") || host == "[::1]" {
		return true
	}

	return false
}

func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("Server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
