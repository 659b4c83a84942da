package tui_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/lookalike/internal/adapters/tui"
	"go.trai.ch/zerr"
)

func newTestRenderer(_ *testing.T) *tui.Renderer {
	model := tui.NewModel(io.Discard)
	model = model.WithDisableTick()
	return tui.NewRenderer(
		&model,
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
}

func TestRenderer_Lifecycle(t *testing.T) {
	renderer := newTestRenderer(t)

	ctx := context.Background()
	if err := renderer.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := renderer.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	if err := renderer.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}

func TestRenderer_ForwardsEvents(t *testing.T) {
	renderer := newTestRenderer(t)

	ctx := context.Background()
	if err := renderer.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer func() {
		_ = renderer.Stop()
		_ = renderer.Wait()
	}()

	renderer.OnPlanEmit([]string{"enumerate", "fingerprint"})

	startTime := time.Now()
	renderer.OnStageStart("span1", "fingerprint", startTime)
	renderer.OnStageLog("span1", []byte("test log line\n"))
	renderer.OnStageComplete("span1", startTime.Add(100*time.Millisecond), nil)

	renderer.OnStageStart("span2", "enumerate", startTime)
	renderer.OnStageComplete("span2", startTime.Add(50*time.Millisecond), zerr.New("stage failed"))

	time.Sleep(10 * time.Millisecond)
}

func TestRenderer_Program(t *testing.T) {
	renderer := newTestRenderer(t)

	if renderer.Program() == nil {
		t.Error("Expected non-nil Program()")
	}
}
