package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/lookalike/internal/ui/style"
)

const (
	maxTailLines    = 8
	viewChromeLines = 5 // title, blank lines around the list, footer
)

// View renders the UI.
func (m *Model) View() string {
	if len(m.Stages) == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("LOOKALIKE") + "\n\n")

	tailBudget := m.tailBudget()
	active := m.activeStage()

	for _, row := range m.Stages {
		s.WriteString(m.renderStageRow(row) + "\n")

		if row == active {
			for _, line := range row.Tail.Last(tailBudget) {
				s.WriteString("    " + tailStyle.Render(truncate(line, m.Width-4)) + "\n")
			}
		}
	}

	s.WriteString("\n" + footerStyle.Render("press q to quit"))

	return s.String()
}

// tailBudget returns how many tail lines fit under the active stage.
func (m *Model) tailBudget() int {
	if m.Height == 0 {
		return maxTailLines / 2
	}

	budget := m.Height - len(m.Stages) - viewChromeLines
	if budget < 1 {
		return 1
	}
	if budget > maxTailLines {
		return maxTailLines
	}
	return budget
}

func (m *Model) renderStageRow(row *StageRow) string {
	icon, stageStyle := m.stageDecoration(row)
	rendered := stageStyle.Render(fmt.Sprintf("%s %s", icon, row.Name))

	switch row.Status {
	case StatusRunning:
		frame := spinnerFrames[m.Frame%len(spinnerFrames)]
		return fmt.Sprintf("  %s %s", rendered, stageRunningStyle.Render(frame))
	case StatusDone:
		return fmt.Sprintf("  %s %s", rendered, durationStyle.Render(formatDuration(row.Elapsed)))
	case StatusError:
		if row.Err != nil {
			return fmt.Sprintf("  %s %s", rendered, stageErrorStyle.Render(row.Err.Error()))
		}
		return "  " + rendered
	default:
		return "  " + rendered
	}
}

func (m *Model) stageDecoration(row *StageRow) (string, lipgloss.Style) {
	switch row.Status {
	case StatusRunning:
		return style.Dot, stageRunningStyle
	case StatusDone:
		return style.Check, stageDoneStyle
	case StatusError:
		return style.Cross, stageErrorStyle
	default: // Pending
		return style.Circle, stagePendingStyle
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

// truncate cuts a line to fit the available width. Tail lines are plain
// text, so byte-oriented truncation on rune boundaries is enough.
func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}

	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
