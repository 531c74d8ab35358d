package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"samples":42,"clients":1,"audioUnlocked":true,"goroutines":9}`))
	}))
	defer srv.Close()

	stats, err := NewHTTPClient(srv.URL).GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Samples != 42 {
		t.Errorf("samples = %d, want 42", stats.Samples)
	}
	if !stats.AudioUnlocked {
		t.Error("audioUnlocked = false, want true")
	}
}

func TestGetStatsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewHTTPClient(srv.URL).GetStats(); err == nil {
		t.Error("GetStats returned nil error on 503")
	}
}

func TestUnlock(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewHTTPClient(srv.URL).Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/unlock" {
		t.Errorf("request = %s %s, want POST /api/unlock", gotMethod, gotPath)
	}
}

func TestUnlockFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusMethodNotAllowed)
	}))
	defer srv.Close()

	if err := NewHTTPClient(srv.URL).Unlock(); err == nil {
		t.Error("Unlock returned nil error on 405")
	}
}
