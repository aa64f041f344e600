package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	base := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"identical instant", base, base, true},
		{"same day different hours", base, time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC), true},
		{"different day", base, time.Date(2024, time.March, 16, 9, 30, 0, 0, time.UTC), false},
		{"different month", base, time.Date(2024, time.April, 15, 9, 30, 0, 0, time.UTC), false},
		{"different year", base, time.Date(2025, time.March, 15, 9, 30, 0, 0, time.UTC), false},
		{
			// 2024-03-16T01:00 in New York is 2024-03-16T05:00 UTC; the
			// comparison must use each instant's own calendar fields, so
			// against a UTC value on the 16th they agree.
			"own calendar fields per instant",
			time.Date(2024, time.March, 16, 1, 0, 0, 0, ny),
			time.Date(2024, time.March, 16, 22, 0, 0, 0, time.UTC),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameDay(tt.a, tt.b))
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midweek",
			time.Date(2024, time.March, 15, 14, 45, 0, 0, time.UTC), // Friday
			time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),   // Sunday
		},
		{
			"sunday is its own week start",
			time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"week start crosses months",
			time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC), // Wednesday
			time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, time.Sunday, got.Weekday())
		})
	}
}

func TestFormatHour(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{1, "1 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{13, "1 PM"},
		{23, "11 PM"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestParseDueDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := ParseDueDate("2024-03-15", loc)
	require.NoError(t, err)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, loc, got.Location())

	for _, bad := range []string{"", "2024-3-15", "15/03/2024", "2024-03-15T00:00:00Z", "not a date"} {
		_, err := ParseDueDate(bad, time.UTC)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatDueDate(t *testing.T) {
	assert.Equal(t, "2024-03-15", FormatDueDate(2024, time.March, 15))
	assert.Equal(t, "0900-01-02", FormatDueDate(900, time.January, 2))
}
