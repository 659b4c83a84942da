package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic,
// allowing the same event stream to drive either a rich TUI or linear CI logs.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	// For asynchronous renderers (like TUI), this may launch background goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and prepare for
	// shutdown. It should flush any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	// For synchronous renderers, this may return immediately.
	Wait() error

	// OnPlanEmit is called once per scan with the stage names in execution
	// order, before any stage starts.
	OnPlanEmit(stages []string)

	// OnStageStart is called when a scan stage begins.
	// spanID: unique identifier for this stage execution
	// name: human-readable stage name
	// startTime: when the stage started
	OnStageStart(spanID, name string, startTime time.Time)

	// OnStageLog is called when a stage emits output.
	// data may contain partial lines.
	OnStageLog(spanID string, data []byte)

	// OnStageComplete is called when a stage finishes.
	// err is nil if the stage succeeded.
	OnStageComplete(spanID string, endTime time.Time, err error)
}
