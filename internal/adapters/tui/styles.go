package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/lookalike/internal/ui/style"
)

var (
	stagePendingStyle = lipgloss.NewStyle().
				Foreground(style.Ash)

	stageRunningStyle = lipgloss.NewStyle().
				Foreground(style.Teal).
				Bold(true)

	stageDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stageErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	durationStyle = lipgloss.NewStyle().
			Foreground(style.Ash)

	tailStyle = lipgloss.NewStyle().
			Foreground(style.Ash).
			Faint(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Teal).
			Foreground(style.Snow)

	footerStyle = lipgloss.NewStyle().
			Foreground(style.Ash).
			Faint(true)
)
