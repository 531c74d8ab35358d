// Package diag reports the daemon's own resource usage alongside sampling
// counters, for the /api/stats endpoint and the TUI status bar.
package diag

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// Stats is one diagnostics snapshot.
type Stats struct {
	Samples       int     `json:"samples"`
	Clients       int     `json:"clients"`
	AudioUnlocked bool    `json:"audioUnlocked"`
	UptimeSec     float64 `json:"uptimeSec"`
	CPUPercent    float64 `json:"cpuPercent"`
	RSSBytes      uint64  `json:"rssBytes"`
	Goroutines    int     `json:"goroutines"`
}

// Collector probes the daemon process via gopsutil. Probe failures zero the
// affected fields rather than failing the snapshot.
type Collector struct {
	proc    *process.Process
	started time.Time
}

func NewCollector() *Collector {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
	}
	return &Collector{proc: proc, started: time.Now()}
}

// Collect builds a snapshot. clients and audioUnlocked come from the caller;
// sample count comes from the history.
func (c *Collector) Collect(history *emotion.History, clients int, audioUnlocked bool) Stats {
	s := Stats{
		Samples:       history.Len(),
		Clients:       clients,
		AudioUnlocked: audioUnlocked,
		UptimeSec:     time.Since(c.started).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
	}
	if c.proc != nil {
		if cpu, err := c.proc.CPUPercent(); err == nil {
			s.CPUPercent = cpu
		}
		if mem, err := c.proc.MemoryInfo(); err == nil && mem != nil {
			s.RSSBytes = mem.RSS
		}
	}
	return s
}
