package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/lookalike/internal/adapters/telemetry"
)

// tailLimit bounds how many log lines each stage retains.
const tailLimit = 64

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StageStatus represents the current state of a scan stage.
type StageStatus string

const (
	// StatusPending indicates the stage is waiting to start.
	StatusPending StageStatus = "Pending"
	// StatusRunning indicates the stage is currently executing.
	StatusRunning StageStatus = "Running"
	// StatusDone indicates the stage completed successfully.
	StatusDone StageStatus = "Done"
	// StatusError indicates the stage failed.
	StatusError StageStatus = "Error"
)

// StageRow represents a single scan stage in the UI list.
type StageRow struct {
	Name      string
	Status    StageStatus
	StartedAt time.Time
	Elapsed   time.Duration
	Err       error
	Tail      *LogTail
}

// Model represents the main TUI state.
type Model struct {
	Stages   []*StageRow
	StageMap map[string]*StageRow // stage name -> row
	SpanMap  map[string]*StageRow // spanID -> row

	Width  int
	Height int

	TickInterval time.Duration
	Frame        int
	Quitting     bool

	disableTick bool
}

// tickMsg advances the spinner while stages are running.
type tickMsg time.Time

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the spinner tick loop.
func (m *Model) Init() tea.Cmd {
	if m.disableTick {
		return nil
	}
	return m.tick()
}

// addStage appends a row for name. Stages normally arrive via the plan, but
// a stage started outside the announced plan still gets a row.
func (m *Model) addStage(name string) *StageRow {
	if m.StageMap == nil {
		m.StageMap = make(map[string]*StageRow)
	}
	if m.SpanMap == nil {
		m.SpanMap = make(map[string]*StageRow)
	}

	row := &StageRow{
		Name:   name,
		Status: StatusPending,
		Tail:   NewLogTail(tailLimit),
	}
	m.Stages = append(m.Stages, row)
	m.StageMap[name] = row
	return row
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		m.Frame++
		if m.disableTick {
			return m, nil
		}
		return m, m.tick()

	case telemetry.MsgInitStages:
		m.Stages = make([]*StageRow, 0, len(msg.Stages))
		m.StageMap = make(map[string]*StageRow, len(msg.Stages))
		m.SpanMap = make(map[string]*StageRow)
		for _, name := range msg.Stages {
			m.addStage(name)
		}

	case telemetry.MsgStageStart:
		row, ok := m.StageMap[msg.Name]
		if !ok {
			row = m.addStage(msg.Name)
		}
		row.Status = StatusRunning
		row.StartedAt = msg.StartTime
		m.SpanMap[msg.SpanID] = row

	case telemetry.MsgStageLog:
		if row, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = row.Tail.Write(msg.Data)
		}

	case telemetry.MsgStageComplete:
		if row, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				row.Status = StatusError
				row.Err = msg.Err
			} else {
				row.Status = StatusDone
			}
			if !row.StartedAt.IsZero() {
				row.Elapsed = msg.EndTime.Sub(row.StartedAt)
			}
		}
	}

	return m, nil
}

// activeStage returns the most recently started stage that is still running.
func (m *Model) activeStage() *StageRow {
	var active *StageRow
	for _, row := range m.Stages {
		if row.Status == StatusRunning {
			active = row
		}
	}
	return active
}
