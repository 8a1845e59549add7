package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_TruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	in := time.Date(2024, 3, 5, 23, 30, 0, 0, loc)

	got := Day(in)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysInclusive(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"2024-01-01", "2024-01-01", 1},
		{"2024-01-01", "2024-01-05", 5},
		{"2024-02-28", "2024-03-01", 3}, // leap year
		{"2024-01-05", "2024-01-01", 0},
	}
	for _, c := range cases {
		got := DaysInclusive(MustDay(c.start), MustDay(c.end))
		assert.Equal(t, c.want, got, "%s..%s", c.start, c.end)
	}
}

func TestParseMonth(t *testing.T) {
	first, last, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", FormatDay(first))
	assert.Equal(t, "2024-02-29", FormatDay(last))

	_, _, err = ParseMonth("2024-13")
	assert.Error(t, err)
}
