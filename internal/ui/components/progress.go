package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
)

// ScoreBar renders a score out of Max as a horizontal bar. Scores at or
// above Good are drawn in the success color.
type ScoreBar struct {
	Label string
	Value float64
	Max   float64
	Good  float64
	Width int
}

// NewScoreBar creates a bar for a 0–100 score.
func NewScoreBar(label string, value float64, width int) ScoreBar {
	return ScoreBar{Label: label, Value: value, Max: 100, Good: 70, Width: width}
}

// Fraction returns Value/Max clamped to [0, 1].
func (b ScoreBar) Fraction() float64 {
	if b.Max <= 0 {
		return 0
	}
	return max(0, min(b.Value/b.Max, 1))
}

func (b ScoreBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Width(9).Render(b.Label)
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %5.1f", b.Value))

	barWidth := max(b.Width-lipgloss.Width(label)-lipgloss.Width(caption), 4)
	filled := int(float64(barWidth) * b.Fraction())

	fill := theme.Accent
	if b.Value >= b.Good {
		fill = theme.Success
	}

	return label +
		lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		caption
}
