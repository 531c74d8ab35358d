package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/meowmocha24/emotionmap/internal/client"
	"github.com/meowmocha24/emotionmap/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Connected     bool
	Samples       int
	Dominant      string
	DominantValue float64
	AudioUnlocked bool
	Stats         *client.Stats
	Width         int
}

func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	if m.Connected {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Connected")
	} else {
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Connecting...")
	}

	counts := fmt.Sprintf("%d samples", m.Samples)

	dominant := "—"
	if m.Dominant != "" {
		dominant = fmt.Sprintf("%s %.0f%%", m.Dominant, m.DominantValue*100)
	}

	audio := lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("audio locked (u)")
	if m.AudioUnlocked {
		audio = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("audio on")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + counts + sep + dominant + sep + audio

	if m.Stats != nil {
		content += sep + theme.StyleDimmed.Render(fmt.Sprintf("daemon %.1f%% cpu, %dMB",
			m.Stats.CPUPercent, m.Stats.RSSBytes/(1024*1024)))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
