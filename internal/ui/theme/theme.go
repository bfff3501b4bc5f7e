// Package theme is the lingua palette and the shared text styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#2DD4BF")
	Secondary = lipgloss.Color("#A78BFA")
	Accent    = lipgloss.Color("#FB923C")
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E7E5E4")
	TextDim   = lipgloss.Color("#A8A29E")
	BgCard    = lipgloss.Color("#1C1917")
	Border    = lipgloss.Color("#44403C")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)

	LearnerLine = fg(Secondary).Bold(true)
	PartnerLine = fg(Text)

	// FallbackTag marks canned text shown while the AI tutor is offline.
	FallbackTag = fg(Accent).Italic(true)
)

// TierStyle colours a proficiency tier name.
func TierStyle(tier string) lipgloss.Style {
	switch tier {
	case "Advanced":
		return fg(Success).Bold(true)
	case "Intermediate":
		return fg(Secondary).Bold(true)
	}
	return fg(Accent).Bold(true)
}
