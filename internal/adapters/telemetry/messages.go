package telemetry

import (
	"time"
)

// MsgInitStages announces the stages a scan will run, in order. Renderers
// use it to lay out their rows before the first span starts.
type MsgInitStages struct {
	Stages []string
}

// MsgStageStart indicates a new stage (span) has started.
type MsgStageStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgStageComplete indicates a stage (span) has finished.
type MsgStageComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// MsgStageLog carries a chunk of log output for a specific stage.
type MsgStageLog struct {
	SpanID string
	Data   []byte
}
