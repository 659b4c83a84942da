// Package tui provides a terminal user interface for watching a scan.
package tui

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/lookalike/internal/ui/output"
)

const defaultTickInterval = 100

// NewModel creates a new TUI model with default settings.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Stages:       make([]*StageRow, 0),
		StageMap:     make(map[string]*StageRow),
		SpanMap:      make(map[string]*StageRow),
		TickInterval: defaultTickInterval * time.Millisecond,
	}
}

// WithDisableTick disables the spinner tick loop.
// This is primarily used for testing with synctest to avoid goroutine deadlocks.
func (m Model) WithDisableTick() Model {
	m.disableTick = true
	return m
}
