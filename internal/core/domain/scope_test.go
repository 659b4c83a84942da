package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lookalike/internal/core/domain"
)

func TestScanScope(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := domain.ScanScope([]string{"/photos", "/backup"})
		b := domain.ScanScope([]string{"/photos", "/backup"})
		assert.Equal(t, a, b)
		assert.Len(t, a, 16)
	})

	t.Run("order independent", func(t *testing.T) {
		a := domain.ScanScope([]string{"/photos", "/backup"})
		b := domain.ScanScope([]string{"/backup", "/photos"})
		assert.Equal(t, a, b)
	})

	t.Run("duplicate folders collapse", func(t *testing.T) {
		a := domain.ScanScope([]string{"/photos"})
		b := domain.ScanScope([]string{"/photos", "/photos"})
		assert.Equal(t, a, b)
	})

	t.Run("different sets differ", func(t *testing.T) {
		a := domain.ScanScope([]string{"/photos"})
		b := domain.ScanScope([]string{"/backup"})
		assert.NotEqual(t, a, b)
	})

	t.Run("separator prevents boundary collisions", func(t *testing.T) {
		a := domain.ScanScope([]string{"/photos/a", "b"})
		b := domain.ScanScope([]string{"/photos/ab"})
		assert.NotEqual(t, a, b)
	})
}
