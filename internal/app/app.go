package app

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/meowmocha24/emotionmap/internal/client"
	"github.com/meowmocha24/emotionmap/internal/theme"
	"github.com/meowmocha24/emotionmap/internal/views/board"
	"github.com/meowmocha24/emotionmap/internal/views/help"
	"github.com/meowmocha24/emotionmap/internal/views/status"
)

// fps drives the scroll animation frame tick.
const fps = 30

// manualStep is how many columns one scroll keypress moves.
const manualStep = 10

// chromeRows is the vertical space taken by the status bar and key hints,
// subtracted from the board's viewport.
const chromeRows = 4

type frameMsg struct{}

type statsTickMsg struct{}

type statsMsg struct {
	stats *client.Stats
	err   error
}

type unlockResultMsg struct{ err error }

// Model is the root Bubble Tea model.
type Model struct {
	ws     *client.WSClient
	http   *client.HTTPClient
	ctx    context.Context
	cancel context.CancelFunc

	keys   KeyMap
	width  int
	height int

	// Sub-views.
	statusBar status.Model
	board     board.Model

	// Help overlay, rendered once per width and cached.
	showHelp  bool
	helpView  string
	helpWidth int

	// Horizontal scroll. The spring eases the offset toward the target;
	// follow mode keeps the target at the newest column.
	spring harmonica.Spring
	offset float64
	vel    float64
	target float64
	follow bool

	// Connection state.
	connected     bool
	audioUnlocked bool
}

// New creates the root model.
func New(ws *client.WSClient, httpClient *client.HTTPClient) Model {
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ws:        ws,
		http:      httpClient,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		statusBar: status.New(),
		board:     board.New(),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		follow:    true,
	}
}

// Init starts the WebSocket connection and the animation/stats tickers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ws.Listen(m.ctx), frameCmd(), statsTickCmd())
}

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func statsTickCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return statsTickMsg{}
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.board.Width = msg.Width
		m.board.Height = msg.Height - chromeRows
		if m.showHelp && m.helpWidth != m.width {
			m.renderHelp()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.animate()
		return m, frameCmd()

	case statsTickMsg:
		return m, tea.Batch(m.fetchStats(), statsTickCmd())

	case statsMsg:
		if msg.err == nil {
			m.statusBar.Stats = msg.stats
		}
		return m, nil

	case unlockResultMsg:
		if msg.err == nil {
			m.audioUnlocked = true
			m.statusBar.AudioUnlocked = true
		}
		return m, nil

	case client.WSConnectedMsg:
		m.connected = true
		m.statusBar.Connected = true
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSDisconnectedMsg:
		m.connected = false
		m.statusBar.Connected = false
		return m, m.ws.Listen(m.ctx)

	case client.WSSnapshotMsg:
		m.board.SetSamples(msg.Payload.Samples)
		m.audioUnlocked = msg.Payload.AudioUnlocked
		m.statusBar.AudioUnlocked = msg.Payload.AudioUnlocked
		m.refreshStatus()
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSDeltaMsg:
		m.board.AppendSamples(msg.Payload.Samples)
		m.refreshStatus()
		return m, m.ws.ReadLoop(m.ctx)

	case client.WSCueMsg:
		m.board.Flash(msg.Payload.Cue.Label, time.Now())
		return m, m.ws.ReadLoop(m.ctx)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Unlock):
		return m, m.unlock()

	case key.Matches(msg, m.keys.Latest):
		m.follow = true
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.follow = false
		m.target = clampFloat(m.target-manualStep, 0, float64(m.maxOffset()))
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.follow = false
		m.target = clampFloat(m.target+manualStep, 0, float64(m.maxOffset()))
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		if m.helpView == "" || m.helpWidth != m.width {
			m.renderHelp()
		}
		return m, nil
	}

	return m, nil
}

// animate advances the scroll spring one frame.
func (m *Model) animate() {
	if m.follow {
		m.target = float64(m.maxOffset())
	}
	m.offset, m.vel = m.spring.Update(m.offset, m.vel, m.target)
}

// maxOffset is the scroll position that keeps the newest canvas column in
// view. The board owns the canvas-growth rule.
func (m Model) maxOffset() int {
	return m.board.MaxOffset()
}

// renderHelp formats the overlay for the current width and caches it.
func (m *Model) renderHelp() {
	m.helpView = help.Render(m.width)
	m.helpWidth = m.width
}

func (m *Model) refreshStatus() {
	m.statusBar.Samples = m.board.Len()
	m.statusBar.Dominant, m.statusBar.DominantValue = dominant(m.board.Latest())
}

// dominant scans a sample in the fixed label order with strict >, so the
// first label wins ties; mirrors the daemon's cue selection.
func dominant(s *client.Sample) (string, float64) {
	if s == nil {
		return "", 0
	}
	best := client.Labels[0]
	bestVal := s.Value(best)
	for _, l := range client.Labels[1:] {
		if v := s.Value(l); v > bestVal {
			best = l
			bestVal = v
		}
	}
	return best, bestVal
}

func (m Model) unlock() tea.Cmd {
	return func() tea.Msg {
		return unlockResultMsg{err: m.http.Unlock()}
	}
}

func (m Model) fetchStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.http.GetStats()
		return statsMsg{stats: stats, err: err}
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.statusBar.View(),
			m.helpView,
		)
	}

	sections := []string{
		m.statusBar.View(),
		m.board.View(int(math.Round(m.offset))),
		theme.StyleDimmed.Render("  u:unlock audio  g:latest  h/l:scroll  ?:help  q:quit"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
