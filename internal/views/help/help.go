// Package help renders the keybinding overlay from Markdown.
package help

import (
	"github.com/charmbracelet/glamour"

	"github.com/meowmocha24/emotionmap/internal/theme"
)

const helpMarkdown = `# emotionmap

A scrolling heat-map of facial-expression intensity over time. Each column
is one 200ms sample, each row one of the seven tracked emotions; cell
brightness follows intensity. A short tone plays for the dominant emotion
when it clears the cue threshold.

## Keys

| Key | Action |
|-----|--------|
| u   | unlock audio cues |
| g   | follow the newest column |
| h/← | scroll back in time |
| l/→ | scroll forward |
| ?   | toggle this help |
| q   | quit |
`

// Render formats the overlay for the given terminal width. Rendering is
// expensive; callers cache the result per width.
func Render(width int) string {
	body := helpMarkdown
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width, 76)),
	)
	if err == nil {
		if out, err := r.Render(helpMarkdown); err == nil {
			body = out
		}
	}
	return theme.StyleBorder.Render(body)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
