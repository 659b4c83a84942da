package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lookalike/internal/core/domain"
)

func TestFingerprint_Distance(t *testing.T) {
	tests := []struct {
		name     string
		a        domain.Fingerprint
		b        domain.Fingerprint
		expected int
	}{
		{
			name:     "identical fingerprints",
			a:        0xDEADBEEFDEADBEEF,
			b:        0xDEADBEEFDEADBEEF,
			expected: 0,
		},
		{
			name:     "single bit flipped",
			a:        0x0000000000000000,
			b:        0x0000000000000001,
			expected: 1,
		},
		{
			name:     "all bits flipped",
			a:        0x0000000000000000,
			b:        0xFFFFFFFFFFFFFFFF,
			expected: 64,
		},
		{
			name:     "alternating bits",
			a:        0xAAAAAAAAAAAAAAAA,
			b:        0x5555555555555555,
			expected: 64,
		},
		{
			name:     "one byte differs",
			a:        0xFF00000000000000,
			b:        0x0000000000000000,
			expected: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Distance(tt.b))
			// Distance is symmetric.
			assert.Equal(t, tt.expected, tt.b.Distance(tt.a))
		})
	}
}

func TestFingerprint_String(t *testing.T) {
	assert.Equal(t, "deadbeefdeadbeef", domain.Fingerprint(0xDEADBEEFDEADBEEF).String())
	// Small values are zero-padded to a fixed width.
	assert.Equal(t, "000000000000002a", domain.Fingerprint(42).String())
	assert.Equal(t, "0000000000000000", domain.Fingerprint(0).String())
}

func TestParseFingerprint(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		for _, fp := range []domain.Fingerprint{0, 1, 42, 0xDEADBEEFDEADBEEF, ^domain.Fingerprint(0)} {
			parsed, err := domain.ParseFingerprint(fp.String())
			require.NoError(t, err)
			assert.Equal(t, fp, parsed)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := domain.ParseFingerprint("not-a-fingerprint")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid fingerprint")
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := domain.ParseFingerprint("")
		require.Error(t, err)
	})
}

func TestFingerprint_TextMarshaling(t *testing.T) {
	fp := domain.Fingerprint(0x0123456789ABCDEF)

	text, err := fp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef", string(text))

	var decoded domain.Fingerprint
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, fp, decoded)

	require.Error(t, decoded.UnmarshalText([]byte("zz")))
}
