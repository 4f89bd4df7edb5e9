package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate_TextLayouts(t *testing.T) {
	for _, cell := range []string{"2023-07-15", "15/07/2023", "15-07-2023"} {
		got := ParseFlexibleDate(cell)
		require.NotNil(t, got, "cell %q", cell)
		assert.Equal(t, 2023, got.Year())
		assert.Equal(t, time.July, got.Month())
		assert.Equal(t, 15, got.Day())
	}
}

func TestParseFlexibleDate_SpreadsheetSerial(t *testing.T) {
	// 45292 days after 1899-12-30 is 2024-01-01.
	got := ParseFlexibleDate("45292")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *got)
}

func TestParseFlexibleDate_UnparseableIsNil(t *testing.T) {
	assert.Nil(t, ParseFlexibleDate(""))
	assert.Nil(t, ParseFlexibleDate("-"))
	assert.Nil(t, ParseFlexibleDate("bukan tanggal"))
	assert.Nil(t, ParseFlexibleDate("-12"))
}

func TestParseFlexibleNumber(t *testing.T) {
	cases := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"500000", 500000, true},
		{"1,250,000", 1250000, true},
		{"Rp 750000", 750000, true},
		{"-1", -1, true},
		{"0", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseFlexibleNumber(tc.cell)
		assert.Equal(t, tc.ok, ok, "cell %q", tc.cell)
		assert.Equal(t, tc.want, got, "cell %q", tc.cell)
	}
}

func TestParseFlexibleInt_Truncates(t *testing.T) {
	got, ok := ParseFlexibleInt("3.7")
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}
