// Package app implements the application layer for lookalike.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/lookalike/internal/adapters/cache"
	"go.trai.ch/lookalike/internal/adapters/detector"
	"go.trai.ch/lookalike/internal/adapters/linear"
	"go.trai.ch/lookalike/internal/adapters/telemetry"
	"go.trai.ch/lookalike/internal/adapters/tui"
	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports"
	"go.trai.ch/lookalike/internal/engine/scan"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	enumerator   ports.Enumerator
	source       ports.ImageSource
	logger       ports.Logger
	stderr       io.Writer
	teaOptions   []tea.ProgramOption
	disableTick  bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	enumerator ports.Enumerator,
	source ports.ImageSource,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		enumerator:   enumerator,
		source:       source,
		logger:       log,
		stderr:       os.Stderr,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick disables the TUI tick loop.
// This is primarily used for testing with synctest to avoid goroutine deadlocks.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// WithStderr redirects progress and status output.
// This is primarily used for testing.
func (a *App) WithStderr(w io.Writer) *App {
	a.stderr = w
	return a
}

// RunOptions configuration for the Run method. Zero values keep the
// configured settings.
type RunOptions struct {
	ConfigPath  string
	CachePath   string
	Sensitivity string
	Workers     int
	Recursive   *bool
	Extensions  []string
	MinWidth    int
	MinHeight   int
	MaxWidth    int
	MaxHeight   int
	NoCache     bool
	OutputMode  string
}

// Run executes a duplicate scan over the specified folders. The returned
// result is non-nil whenever images were processed, including scans that
// were interrupted halfway through.
//
//nolint:cyclop // orchestration function
func (a *App) Run(ctx context.Context, folders []string, opts RunOptions) (*domain.ScanResult, error) {
	// 1. Load settings
	settings, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	// 2. Merge command line overrides over the settings
	req, err := buildRequest(folders, *settings, opts)
	if err != nil {
		return nil, err
	}

	// 3. Open the fingerprint cache
	cachePath, err := resolveCachePath(opts.CachePath, settings.CachePath)
	if err != nil {
		return nil, err
	}
	store := cache.NewStore(cachePath, a.logger)

	// 4. Initialize Renderer
	// Detect environment and resolve output mode
	requested := opts.OutputMode
	if requested == "" {
		requested = settings.Renderer
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), requested)

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(a.stderr)
		if a.disableTick {
			model = model.WithDisableTick()
		}
		optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, optsTea...)
	} else {
		// Progress goes to stderr so stdout stays reserved for the report.
		renderer = linear.NewRenderer(a.stderr, a.stderr)
	}

	// 5. Initialize Telemetry
	// Create a bridge that sends OTel spans to the renderer.
	bridge := telemetry.NewBridge(renderer)

	// Configure the global OTel SDK to use our bridge for spans.
	// This ensures that when OTelTracer uses otel.Tracer(), it uses a provider
	// that forwards events to our bridge.
	setupOTel(bridge)

	// Create and configure the OTel Tracer adapter.
	// We inject the renderer so it can stream logs directly via the batcher.
	tracer := telemetry.NewOTelTracer("lookalike").WithRenderer(renderer)
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	// 6. Build the scanner for this run
	scanner := scan.NewScanner(store, a.enumerator, a.source, a.logger, tracer, settings.Thresholds)

	// 7. Run Renderer and Scanner concurrently
	g, gctx := errgroup.WithContext(ctx)
	scanCtx, cancelScan := context.WithCancel(gctx)
	defer cancelScan()

	var (
		result  *domain.ScanResult
		scanErr error
	)

	// Renderer Routine
	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		waitErr := renderer.Wait()
		if mode == detector.ModeTUI {
			// Closing the UI interrupts a scan still in flight.
			cancelScan()
		}
		return waitErr
	})

	// Scanner Routine
	g.Go(func() error {
		defer func() {
			// Handle panic recovery for the scanner goroutine
			if r := recover(); r != nil {
				_, _ = fmt.Fprintf(a.stderr, "Scanner panic: %v\n", r)
			}
			// Ensure renderer stops when the scan finishes.
			_ = renderer.Stop()
		}()

		result, scanErr = scanner.Run(scanCtx, req)
		return nil
	})

	// The scan outcome takes precedence over renderer shutdown errors, so an
	// interrupted scan still surfaces as interrupted.
	waitErr := g.Wait()
	if scanErr != nil {
		return result, scanErr
	}
	return result, waitErr
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	CachePath  string
}

// Clean removes the fingerprint cache snapshot. A missing snapshot is not an
// error.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	settings, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	path, err := resolveCachePath(opts.CachePath, settings.CachePath)
	if err != nil {
		return err
	}

	a.logger.Info("removing fingerprint cache...")
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			a.logger.Info("no fingerprint cache at " + path)
			return nil
		}
		return zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error())
	}
	a.logger.Info("removed fingerprint cache at " + path)
	return nil
}

// buildRequest merges command line overrides over the configured settings
// and validates the combined request.
func buildRequest(folders []string, settings domain.Settings, opts RunOptions) (domain.ScanRequest, error) {
	req := domain.ScanRequest{
		Folders:     folders,
		Recursive:   settings.Recursive,
		Sensitivity: settings.Sensitivity,
		Extensions:  settings.Extensions,
		Filters:     settings.Filters,
		Workers:     settings.Workers,
		NoCache:     opts.NoCache,
	}

	if opts.Sensitivity != "" {
		sensitivity, err := domain.ParseSensitivity(opts.Sensitivity)
		if err != nil {
			return domain.ScanRequest{}, err
		}
		req.Sensitivity = sensitivity
	}
	if opts.Workers > 0 {
		req.Workers = opts.Workers
	}
	if opts.Recursive != nil {
		req.Recursive = *opts.Recursive
	}
	if exts := domain.NormalizeExtensions(opts.Extensions); len(exts) > 0 {
		req.Extensions = exts
	}
	if opts.MinWidth > 0 {
		req.Filters.MinWidth = opts.MinWidth
	}
	if opts.MinHeight > 0 {
		req.Filters.MinHeight = opts.MinHeight
	}
	if opts.MaxWidth > 0 {
		req.Filters.MaxWidth = opts.MaxWidth
	}
	if opts.MaxHeight > 0 {
		req.Filters.MaxHeight = opts.MaxHeight
	}

	if err := req.Validate(); err != nil {
		return domain.ScanRequest{}, err
	}
	return req, nil
}

// resolveCachePath picks the cache location: the command line flag wins over
// the config file, which wins over the user cache directory.
func resolveCachePath(flagPath, configPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if configPath != "" {
		return configPath, nil
	}
	return domain.DefaultCachePath()
}

// setupOTel configures the OpenTelemetry SDK with the renderer bridge.
func setupOTel(bridge *telemetry.Bridge) {
	// Create a new TracerProvider with the bridge as a SpanProcessor.
	// This ensures that all started spans are reported to the renderer.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)

	// Register it as the global provider.
	otel.SetTracerProvider(tp)
}
