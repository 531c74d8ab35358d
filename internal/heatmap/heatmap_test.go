package heatmap

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/meowmocha24/emotionmap/internal/emotion"
)

func TestCellColorDeterministic(t *testing.T) {
	for _, l := range emotion.Labels {
		for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
			a := CellColor(l, v)
			b := CellColor(l, v)
			if a != b {
				t.Errorf("CellColor(%v, %v) not deterministic: %v vs %v", l, v, a, b)
			}
		}
	}
}

func TestBrightnessMonotone(t *testing.T) {
	for _, l := range emotion.Labels {
		prev := -1.0
		for v := 0.0; v <= 1.0; v += 0.05 {
			b := Brightness(l, v)
			if b < prev {
				t.Fatalf("%s brightness not monotone at %v: %v < %v", l, v, b, prev)
			}
			prev = b
		}
	}
}

func TestBrightnessBounds(t *testing.T) {
	tests := []struct {
		label     emotion.Label
		intensity float64
		want      float64
	}{
		{emotion.Neutral, 0, 30},
		{emotion.Neutral, 1, 80},
		{emotion.Happy, 0, 10},
		{emotion.Happy, 1, 100},
		{emotion.Sad, 0.5, 55},
	}
	for _, tt := range tests {
		if got := Brightness(tt.label, tt.intensity); got != tt.want {
			t.Errorf("Brightness(%v, %v) = %v, want %v", tt.label, tt.intensity, got, tt.want)
		}
	}
}

func TestBrightnessClampsIntensity(t *testing.T) {
	if got := Brightness(emotion.Happy, 2); got != 100 {
		t.Errorf("Brightness at intensity 2 = %v, want 100", got)
	}
	if got := Brightness(emotion.Happy, -1); got != 10 {
		t.Errorf("Brightness at intensity -1 = %v, want 10", got)
	}
}

func TestNeutralIsGrey(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		hex := string(CellColor(emotion.Neutral, v))
		c, err := colorful.Hex(hex)
		if err != nil {
			t.Fatalf("invalid color %q: %v", hex, err)
		}
		_, s, _ := c.Hsv()
		if s > 0.01 {
			t.Errorf("neutral at %v has saturation %v, want 0", v, s)
		}
	}
}

func TestColoredLabelsKeepTheirHue(t *testing.T) {
	for _, l := range emotion.Labels {
		if l == emotion.Neutral {
			continue
		}
		hex := string(CellColor(l, 0.8))
		c, err := colorful.Hex(hex)
		if err != nil {
			t.Fatalf("invalid color %q: %v", hex, err)
		}
		h, s, _ := c.Hsv()
		if s < 0.5 {
			t.Errorf("%s saturation = %v, want saturated", l, s)
		}
		want := Hue(l)
		diff := h - want
		if diff < 0 {
			diff = -diff
		}
		if diff > 2 && diff < 358 {
			t.Errorf("%s hue = %v, want ≈%v", l, h, want)
		}
	}
}

func TestRequiredWidth(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		viewport int
		want     int
	}{
		{"EmptyUsesViewport", 0, 800, 800},
		{"FewSamplesUsesViewport", 10, 800, 800},
		{"ManySamplesOutgrow", 200, 800, 1200},
		{"ExactBoundary", 134, 800, 804},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(6)
			if got := g.RequiredWidth(tt.n, tt.viewport); got != tt.want {
				t.Errorf("RequiredWidth(%d, %d) = %d, want %d", tt.n, tt.viewport, got, tt.want)
			}
		})
	}
}

func TestRequiredWidthNeverShrinks(t *testing.T) {
	g := NewGrid(6)

	w1 := g.RequiredWidth(300, 800) // 1800
	if w1 != 1800 {
		t.Fatalf("width = %d, want 1800", w1)
	}

	// Narrower viewport and the same sample count must not shrink the canvas.
	if got := g.RequiredWidth(300, 400); got != 1800 {
		t.Errorf("width after viewport shrink = %d, want 1800", got)
	}

	// Growth continues past the high-water mark.
	if got := g.RequiredWidth(400, 400); got != 2400 {
		t.Errorf("width after growth = %d, want 2400", got)
	}
}

func TestRequiredWidthMonotoneInSamples(t *testing.T) {
	g := NewGrid(6)
	prev := 0
	for n := 0; n < 500; n += 7 {
		w := g.RequiredWidth(n, 640)
		if w < prev {
			t.Fatalf("width shrank at n=%d: %d < %d", n, w, prev)
		}
		prev = w
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name        string
		n, colWidth int
		viewport    int
		want        int
	}{
		{"FitsInView", 10, 6, 800, 0},
		{"ExactFit", 100, 6, 600, 0},
		{"Overflow", 150, 6, 600, 300},
		{"SingleColumnWidth", 700, 1, 640, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollOffset(tt.n, tt.colWidth, tt.viewport); got != tt.want {
				t.Errorf("ScrollOffset(%d, %d, %d) = %d, want %d", tt.n, tt.colWidth, tt.viewport, got, tt.want)
			}
		})
	}
}

func TestRowHeight(t *testing.T) {
	if got := RowHeight(700); got != 100 {
		t.Errorf("RowHeight(700) = %d, want 100", got)
	}
}

func TestGridDefaultColumnWidth(t *testing.T) {
	g := NewGrid(0)
	if got := g.ColumnWidth(); got != DefaultColumnWidth {
		t.Errorf("ColumnWidth() = %d, want %d", got, DefaultColumnWidth)
	}
}
