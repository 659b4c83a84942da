package domain_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lookalike/internal/core/domain"
)

func TestDimensionFilters_Allows(t *testing.T) {
	tests := []struct {
		name     string
		filters  domain.DimensionFilters
		width    int
		height   int
		expected bool
	}{
		{name: "unbounded", width: 1, height: 1, expected: true},
		{name: "within bounds", filters: domain.DimensionFilters{MinWidth: 100, MaxWidth: 2000}, width: 800, height: 600, expected: true},
		{name: "below min width", filters: domain.DimensionFilters{MinWidth: 100}, width: 99, height: 600, expected: false},
		{name: "below min height", filters: domain.DimensionFilters{MinHeight: 100}, width: 800, height: 99, expected: false},
		{name: "above max width", filters: domain.DimensionFilters{MaxWidth: 1000}, width: 1001, height: 600, expected: false},
		{name: "above max height", filters: domain.DimensionFilters{MaxHeight: 1000}, width: 800, height: 1001, expected: false},
		{name: "exactly at bounds", filters: domain.DimensionFilters{MinWidth: 800, MaxWidth: 800, MinHeight: 600, MaxHeight: 600}, width: 800, height: 600, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filters.Allows(tt.width, tt.height))
		})
	}
}

func TestDimensionFilters_Validate(t *testing.T) {
	require.NoError(t, domain.DimensionFilters{}.Validate())
	require.NoError(t, domain.DimensionFilters{MinWidth: 10, MaxWidth: 20}.Validate())
	require.Error(t, domain.DimensionFilters{MinWidth: -1}.Validate())
	require.Error(t, domain.DimensionFilters{MinWidth: 21, MaxWidth: 20}.Validate())
	require.Error(t, domain.DimensionFilters{MinHeight: 21, MaxHeight: 20}.Validate())
}

func TestPoolSize(t *testing.T) {
	cores := runtime.NumCPU()

	assert.Equal(t, cores, domain.PoolSize(0), "zero defaults to one worker per core")
	assert.Equal(t, 1, domain.PoolSize(1))
	assert.Equal(t, cores, domain.PoolSize(cores))
	assert.Equal(t, cores, domain.PoolSize(cores+8), "requests above the core count are clamped")
	assert.Equal(t, cores, domain.PoolSize(-4))
}

func TestSettings_Validate(t *testing.T) {
	valid := domain.DefaultSettings()
	require.NoError(t, valid.Validate())

	t.Run("negative workers", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.Workers = -1
		require.Error(t, s.Validate())
	})

	t.Run("unknown renderer", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.Renderer = "fancy"
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid renderer")
	})

	t.Run("no extensions", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.Extensions = nil
		require.Error(t, s.Validate())
	})

	t.Run("unknown sensitivity", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.Sensitivity = domain.Sensitivity("extreme")
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid sensitivity")
	})

	t.Run("bad thresholds", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.Thresholds = domain.Thresholds{High: 10, Medium: 5, Low: 0}
		require.Error(t, s.Validate())
	})

	t.Run("bad filters", func(t *testing.T) {
		s := domain.DefaultSettings()
		s.Filters = domain.DimensionFilters{MinWidth: 100, MaxWidth: 10}
		require.Error(t, s.Validate())
	})
}

func TestDimensionFilters_Active(t *testing.T) {
	assert.False(t, domain.DimensionFilters{}.Active())
	assert.True(t, domain.DimensionFilters{MinWidth: 1}.Active())
	assert.True(t, domain.DimensionFilters{MaxHeight: 10}.Active())
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Equal(t,
		[]string{".jpg", ".png", ".webp"},
		domain.NormalizeExtensions([]string{"JPG", ".png", " webp "}),
	)
	assert.Empty(t, domain.NormalizeExtensions([]string{"", ".", "  "}))
	assert.Empty(t, domain.NormalizeExtensions(nil))
}
