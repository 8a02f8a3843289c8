package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1250, "12.50"},
		{-1250, "-12.50"},
		{-1, "-0.01"},
		{math.MinInt64, "-92233720368547758.08"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "FormatAmount(%d)", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12.50", 1250},
		{"12.5", 1250},
		{"12", 1200},
		{" 0.01 ", 1},
		{".5", 50},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "-1", "+1", "1.234", "1.2.3", "abc", "99999999999999999999"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestCompareAmounts(t *testing.T) {
	cmp, err := CompareAmounts("1.5", "1.50")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareAmounts("-0.50", "0.10")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareAmounts("10", "9.99")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = CompareAmounts("x", "1")
	assert.Error(t, err)
}
