package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"45.50", 4550},
		{"-45.50", -4550},
		{"0", 0},
		{"12", 1200},
		{"0.005", 1}, // rounds half away from zero
		{"-0.005", -1},
		{"1234.56", 123456},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseCents_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "12,50"} {
		_, err := ParseCents(in)
		assert.Error(t, err, in)
	}
}

func TestCentsFromFloat(t *testing.T) {
	assert.Equal(t, int64(4550), CentsFromFloat(45.50))
	assert.Equal(t, int64(-4550), CentsFromFloat(-45.50))
	assert.Equal(t, int64(0), CentsFromFloat(0))
	// Classic float representation noise must still land on the right cent.
	assert.Equal(t, int64(1910), CentsFromFloat(19.10))
	assert.Equal(t, int64(29), CentsFromFloat(0.29))
}
