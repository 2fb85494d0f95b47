// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Accent is reserved for the clock, bookmarks and warnings.
var (
	Primary   = lipgloss.Color("#4F6BD8") // ink blue
	Secondary = lipgloss.Color("#2A9D8F") // locked answers
	Accent    = lipgloss.Color("#E9A23B")
	Success   = lipgloss.Color("#3FA34D")
	Error     = lipgloss.Color("#D1495B")
	Text      = lipgloss.Color("#EDEFF3")
	TextDim   = lipgloss.Color("#8A93A6")
	BgCard    = lipgloss.Color("#1B2230")
	Border    = lipgloss.Color("#3A4356")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Question and answer states.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Locked     = lipgloss.NewStyle().Foreground(Secondary)
	Bookmarked = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Widgets.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)
)
