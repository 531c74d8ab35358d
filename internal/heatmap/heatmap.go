// Package heatmap provides the color mapping and grid layout rules for the
// emotion heat-map. It is a leaf package with no internal imports beyond the
// data model, so both the daemon and the TUI can use it.
package heatmap

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// DefaultColumnWidth is the pixel width of one time-step column.
const DefaultColumnWidth = 6

// Per-label hues in degrees. Neutral is rendered desaturated, so its hue is
// irrelevant.
var hues = [emotion.NumLabels]float64{
	emotion.Neutral:   0,
	emotion.Happy:     52,
	emotion.Sad:       210,
	emotion.Angry:     0,
	emotion.Fearful:   270,
	emotion.Disgusted: 96,
	emotion.Surprised: 28,
}

// Brightness bounds in percent. Neutral stays in a narrow grey band; colored
// labels sweep nearly the full range.
const (
	greyLow  = 30
	greyHigh = 80
	colLow   = 10
	colHigh  = 100
)

const cellSaturation = 0.85

// Hue returns the fixed hue for a label.
func Hue(l emotion.Label) float64 {
	if l < 0 || l >= emotion.NumLabels {
		return 0
	}
	return hues[l]
}

// Brightness returns the cell brightness in percent for a label at an
// intensity: a linear interpolation between the label's low and high bounds,
// monotonically non-decreasing in intensity.
func Brightness(l emotion.Label, intensity float64) float64 {
	intensity = clamp01(intensity)
	if l == emotion.Neutral {
		return greyLow + intensity*(greyHigh-greyLow)
	}
	return colLow + intensity*(colHigh-colLow)
}

// CellColor maps (label, intensity) to a terminal color. Deterministic and
// pure: the same inputs always produce the same hex value.
func CellColor(l emotion.Label, intensity float64) lipgloss.Color {
	sat := cellSaturation
	if l == emotion.Neutral {
		sat = 0
	}
	c := colorful.Hsv(Hue(l), sat, Brightness(l, intensity)/100)
	return lipgloss.Color(c.Hex())
}

// Grid tracks the canvas growth rule: wide enough for every sample at the
// configured column width, never narrower than the viewport, and never
// shrinking once grown.
type Grid struct {
	columnWidth int
	maxWidth    int
}

func NewGrid(columnWidth int) *Grid {
	if columnWidth <= 0 {
		columnWidth = DefaultColumnWidth
	}
	return &Grid{columnWidth: columnWidth}
}

func (g *Grid) ColumnWidth() int { return g.columnWidth }

// RequiredWidth returns the canvas width for n samples in a viewport of the
// given width: max(viewport, n*columnWidth), clamped to the high-water mark.
func (g *Grid) RequiredWidth(n, viewport int) int {
	w := n * g.columnWidth
	if viewport > w {
		w = viewport
	}
	if w < g.maxWidth {
		w = g.maxWidth
	}
	g.maxWidth = w
	return w
}

// RowHeight splits the canvas height evenly across the label rows.
func RowHeight(canvasHeight int) int {
	return canvasHeight / emotion.NumLabels
}

// ScrollOffset returns the horizontal offset that keeps the newest column in
// view: zero until the samples outgrow the viewport, then the overflow.
func ScrollOffset(n, columnWidth, viewport int) int {
	if columnWidth <= 0 {
		columnWidth = DefaultColumnWidth
	}
	over := n*columnWidth - viewport
	if over < 0 {
		return 0
	}
	return over
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
