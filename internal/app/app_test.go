package app_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/lookalike/internal/app"
	"go.trai.ch/lookalike/internal/core/domain"
	"go.trai.ch/lookalike/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// stubLogger returns a MockLogger that tolerates any log traffic.
func stubLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return mockLogger
}

func TestApp_Run(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLoader := mocks.NewMockConfigLoader(ctrl)
		mockEnumerator := mocks.NewMockEnumerator(ctrl)
		mockSource := mocks.NewMockImageSource(ctrl)
		mockLogger := stubLogger(ctrl)

		settings := domain.DefaultSettings()
		mockLoader.EXPECT().Load("").Return(&settings, nil)

		now := time.Now()
		records := []domain.ImageRecord{
			{Path: "/photos/a.png", Size: 10, ModTime: now},
			{Path: "/photos/b.png", Size: 11, ModTime: now},
			{Path: "/photos/c.png", Size: 12, ModTime: now},
		}
		mockEnumerator.EXPECT().Enumerate(gomock.Any(), gomock.Any()).Return(records, nil, nil)

		// a and b differ by one gradient bit, c is far away from both.
		mockSource.EXPECT().Fingerprint("/photos/a.png").Return(domain.Fingerprint(0xff00ff00ff00ff00), nil)
		mockSource.EXPECT().Fingerprint("/photos/b.png").Return(domain.Fingerprint(0xff00ff00ff00ff01), nil)
		mockSource.EXPECT().Fingerprint("/photos/c.png").Return(domain.Fingerprint(0x00ff00ff00ff00ff), nil)

		a := app.New(mockLoader, mockEnumerator, mockSource, mockLogger).WithStderr(io.Discard)

		result, err := a.Run(context.Background(), []string{"/photos"}, app.RunOptions{
			CachePath:  filepath.Join(t.TempDir(), "cache.json"),
			OutputMode: "linear",
		})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if result == nil {
			t.Fatal("Expected a result, got nil")
		}
		if len(result.Groups) != 1 {
			t.Fatalf("Expected 1 duplicate group, got %d", len(result.Groups))
		}
		if result.Groups[0].Len() != 2 {
			t.Errorf("Expected 2 members in the group, got %d", result.Groups[0].Len())
		}
		if result.Stats.Computed != 3 {
			t.Errorf("Expected 3 computed fingerprints, got %d", result.Stats.Computed)
		}
		if result.Stats.Duplicates != 2 {
			t.Errorf("Expected 2 duplicates, got %d", result.Stats.Duplicates)
		}
	})
}

func TestApp_Run_FlagOverrides(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLoader := mocks.NewMockConfigLoader(ctrl)
		mockEnumerator := mocks.NewMockEnumerator(ctrl)
		mockSource := mocks.NewMockImageSource(ctrl)
		mockLogger := stubLogger(ctrl)

		settings := domain.DefaultSettings()
		mockLoader.EXPECT().Load("lookalike.yml").Return(&settings, nil)

		var captured domain.ScanRequest
		mockEnumerator.EXPECT().Enumerate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req domain.ScanRequest) ([]domain.ImageRecord, []domain.Issue, error) {
				captured = req
				return nil, nil, nil
			})

		a := app.New(mockLoader, mockEnumerator, mockSource, mockLogger).WithStderr(io.Discard)

		recursive := false
		_, err := a.Run(context.Background(), []string{"/photos"}, app.RunOptions{
			ConfigPath:  "lookalike.yml",
			CachePath:   filepath.Join(t.TempDir(), "cache.json"),
			Sensitivity: "high",
			Workers:     2,
			Recursive:   &recursive,
			Extensions:  []string{"JPG", ".png"},
			MinWidth:    100,
			MaxHeight:   4000,
			NoCache:     true,
			OutputMode:  "linear",
		})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if captured.Sensitivity != domain.SensitivityHigh {
			t.Errorf("Expected sensitivity high, got %q", captured.Sensitivity)
		}
		if captured.Workers != 2 {
			t.Errorf("Expected 2 workers, got %d", captured.Workers)
		}
		if captured.Recursive {
			t.Error("Expected recursive to be overridden to false")
		}
		if len(captured.Extensions) != 2 || captured.Extensions[0] != ".jpg" || captured.Extensions[1] != ".png" {
			t.Errorf("Expected normalized extensions, got %v", captured.Extensions)
		}
		if captured.Filters.MinWidth != 100 || captured.Filters.MaxHeight != 4000 {
			t.Errorf("Expected merged filters, got %+v", captured.Filters)
		}
		if !captured.NoCache {
			t.Error("Expected NoCache to be set")
		}
	})
}

func TestApp_Run_NoFolders(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLoader := mocks.NewMockConfigLoader(ctrl)
		settings := domain.DefaultSettings()
		mockLoader.EXPECT().Load("").Return(&settings, nil)

		a := app.New(mockLoader, mocks.NewMockEnumerator(ctrl), mocks.NewMockImageSource(ctrl), stubLogger(ctrl)).
			WithStderr(io.Discard)

		_, err := a.Run(context.Background(), nil, app.RunOptions{})
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "no folders specified") {
			t.Errorf("Expected 'no folders specified', got '%v'", err)
		}
	})
}

func TestApp_Run_ConfigLoaderError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLoader := mocks.NewMockConfigLoader(ctrl)
		mockLoader.EXPECT().Load("").Return(nil, errors.New("config load error"))

		a := app.New(mockLoader, mocks.NewMockEnumerator(ctrl), mocks.NewMockImageSource(ctrl), stubLogger(ctrl)).
			WithStderr(io.Discard)

		_, err := a.Run(context.Background(), []string{"/photos"}, app.RunOptions{})
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "failed to load configuration") {
			t.Errorf("Expected error to contain 'failed to load configuration', got '%v'", err)
		}
	})
}

func TestApp_Run_InvalidSensitivity(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLoader := mocks.NewMockConfigLoader(ctrl)
		settings := domain.DefaultSettings()
		mockLoader.EXPECT().Load("").Return(&settings, nil)

		a := app.New(mockLoader, mocks.NewMockEnumerator(ctrl), mocks.NewMockImageSource(ctrl), stubLogger(ctrl)).
			WithStderr(io.Discard)

		_, err := a.Run(context.Background(), []string{"/photos"}, app.RunOptions{Sensitivity: "extreme"})
		if err == nil {
			t.Fatal("Expected error, got nil")
		}
		if !strings.Contains(err.Error(), "invalid sensitivity") {
			t.Errorf("Expected 'invalid sensitivity', got '%v'", err)
		}
	})
}

func TestApp_Run_Interrupted(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockLoader := mocks.NewMockConfigLoader(ctrl)
		mockEnumerator := mocks.NewMockEnumerator(ctrl)

		settings := domain.DefaultSettings()
		mockLoader.EXPECT().Load("").Return(&settings, nil)
		mockEnumerator.EXPECT().Enumerate(gomock.Any(), gomock.Any()).Return(nil, nil, context.Canceled)

		a := app.New(mockLoader, mockEnumerator, mocks.NewMockImageSource(ctrl), stubLogger(ctrl)).
			WithStderr(io.Discard)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := a.Run(ctx, []string{"/photos"}, app.RunOptions{
			CachePath:  filepath.Join(t.TempDir(), "cache.json"),
			OutputMode: "linear",
		})
		if !errors.Is(err, domain.ErrScanInterrupted) {
			t.Errorf("Expected ErrScanInterrupted, got: %v", err)
		}
	})
}

// The TUI path runs a real bubbletea program, so it stays outside synctest.
func TestApp_Run_TUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockEnumerator := mocks.NewMockEnumerator(ctrl)
	mockSource := mocks.NewMockImageSource(ctrl)
	mockLogger := stubLogger(ctrl)

	settings := domain.DefaultSettings()
	mockLoader.EXPECT().Load("").Return(&settings, nil)

	now := time.Now()
	records := []domain.ImageRecord{
		{Path: "/photos/a.png", Size: 10, ModTime: now},
		{Path: "/photos/b.png", Size: 10, ModTime: now},
	}
	mockEnumerator.EXPECT().Enumerate(gomock.Any(), gomock.Any()).Return(records, nil, nil)
	mockSource.EXPECT().Fingerprint("/photos/a.png").Return(domain.Fingerprint(42), nil)
	mockSource.EXPECT().Fingerprint("/photos/b.png").Return(domain.Fingerprint(42), nil)

	a := app.New(mockLoader, mockEnumerator, mockSource, mockLogger).
		WithStderr(io.Discard).
		WithDisableTick().
		WithTeaOptions(
			tea.WithInput(strings.NewReader("")),
			tea.WithOutput(io.Discard),
			tea.WithoutSignalHandler(),
			tea.WithoutRenderer(),
		)

	result, err := a.Run(context.Background(), []string{"/photos"}, app.RunOptions{
		CachePath:  filepath.Join(t.TempDir(), "cache.json"),
		OutputMode: "tui",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result == nil {
		t.Fatal("Expected a result, got nil")
	}
	if len(result.Groups) != 1 {
		t.Errorf("Expected 1 duplicate group, got %d", len(result.Groups))
	}
}

func TestApp_Clean(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	settings := domain.DefaultSettings()
	mockLoader.EXPECT().Load("").Return(&settings, nil).Times(2)

	a := app.New(mockLoader, mocks.NewMockEnumerator(ctrl), mocks.NewMockImageSource(ctrl), stubLogger(ctrl))

	cachePath := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(cachePath, []byte("{}"), 0o644); err != nil {
		t.Fatalf("Failed to seed cache file: %v", err)
	}

	if err := a.Clean(context.Background(), app.CleanOptions{CachePath: cachePath}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := os.Stat(cachePath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected cache file to be removed, stat returned: %v", err)
	}

	// A second clean finds nothing to remove and still succeeds.
	if err := a.Clean(context.Background(), app.CleanOptions{CachePath: cachePath}); err != nil {
		t.Fatalf("Expected no error on missing cache, got: %v", err)
	}
}

func TestApp_Clean_ConfigLoaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load("").Return(nil, errors.New("config load error"))

	a := app.New(mockLoader, mocks.NewMockEnumerator(ctrl), mocks.NewMockImageSource(ctrl), stubLogger(ctrl))

	err := a.Clean(context.Background(), app.CleanOptions{})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("Expected error to contain 'failed to load configuration', got '%v'", err)
	}
}
