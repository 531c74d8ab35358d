// Package board renders the scrolling emotion heat-map grid: one row band
// per label, one column per sample, colored by intensity.
package board

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/meowmocha24/emotionmap/internal/client"
	"github.com/meowmocha24/emotionmap/internal/emotion"
	"github.com/meowmocha24/emotionmap/internal/heatmap"
	"github.com/meowmocha24/emotionmap/internal/theme"
)

// gutterWidth reserves space for the row labels on the left.
const gutterWidth = 11

// flashFor is how long a cue highlights its row.
const flashFor = 400 * time.Millisecond

// Model holds the heat-map view state.
type Model struct {
	Width  int
	Height int

	grid    *heatmap.Grid
	samples []client.Sample

	flashLabel string
	flashAt    time.Time
}

func New() Model {
	return Model{grid: heatmap.NewGrid(1)}
}

// SetSamples replaces the full sample mirror (snapshot).
func (m *Model) SetSamples(samples []client.Sample) {
	m.samples = samples
}

// AppendSamples adds delta samples to the tail.
func (m *Model) AppendSamples(samples []client.Sample) {
	m.samples = append(m.samples, samples...)
}

// Len returns the number of mirrored samples.
func (m Model) Len() int {
	return len(m.samples)
}

// Latest returns the newest sample, or nil when the mirror is empty.
func (m Model) Latest() *client.Sample {
	if len(m.samples) == 0 {
		return nil
	}
	s := m.samples[len(m.samples)-1]
	return &s
}

// Flash highlights a label row for a short interval after a cue.
func (m *Model) Flash(label string, at time.Time) {
	m.flashLabel = label
	m.flashAt = at
}

// Columns returns how many sample columns fit in the viewport.
func (m Model) Columns() int {
	cols := m.Width - gutterWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// CanvasWidth is the virtual canvas width in columns: wide enough for every
// sample, at least the viewport, never shrinking once grown.
func (m Model) CanvasWidth() int {
	return m.grid.RequiredWidth(len(m.samples), m.Columns())
}

// MaxOffset is the scroll position that keeps the newest canvas column in
// view.
func (m Model) MaxOffset() int {
	return heatmap.ScrollOffset(m.CanvasWidth(), 1, m.Columns())
}

// View renders the grid with the given horizontal scroll offset (in
// columns). Every frame redraws entirely from the sample mirror; no raster
// state survives a resize.
func (m Model) View(offset int) string {
	cols := m.Columns()

	var lines []string
	lines = append(lines, theme.StyleHeader.Render("── EMOTION MAP "+strings.Repeat("─", max(0, m.Width-16))))

	if len(m.samples) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("  waiting for samples..."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if offset < 0 {
		offset = 0
	}
	if offset > len(m.samples) {
		offset = len(m.samples)
	}

	// Label bands split the space below the header and separators evenly.
	band := heatmap.RowHeight(m.Height - 1 - (emotion.NumLabels - 1))
	if band < 1 {
		band = 1
	}

	sep := theme.StyleDimmed.Render(strings.Repeat("─", gutterWidth+cols))
	flashing := time.Since(m.flashAt) < flashFor

	for i, label := range emotion.Labels {
		if i > 0 {
			lines = append(lines, sep)
		}
		lines = append(lines, m.renderRow(label, offset, cols, flashing, true))
		for r := 1; r < band; r++ {
			lines = append(lines, m.renderRow(label, offset, cols, false, false))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderRow(label emotion.Label, offset, cols int, flashing, withName bool) string {
	name := label.String()

	gutter := ""
	if withName {
		gutter = name
		if flashing && m.flashLabel == name {
			gutter = "♪ " + gutter
		}
		// Measure in cells; the flash marker is multi-byte but single-cell.
		for lipgloss.Width(gutter) > gutterWidth-1 {
			gutter = gutter[:len(gutter)-1]
		}
	}
	gutter += strings.Repeat(" ", gutterWidth-lipgloss.Width(gutter))

	var b strings.Builder
	b.WriteString(theme.StyleDimmed.Render(gutter))
	for col := offset; col < offset+cols && col < len(m.samples); col++ {
		v := m.samples[col].Value(name)
		style := lipgloss.NewStyle().Background(heatmap.CellColor(label, v))
		b.WriteString(style.Render(" "))
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
