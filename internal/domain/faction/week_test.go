package faction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekHelpers(t *testing.T) {
	tests := []struct {
		name    string
		at      time.Time
		week    string
		weekday int
		end     time.Time
	}{
		{
			name:    "wednesday",
			at:      time.Date(2025, 1, 1, 15, 30, 0, 0, time.UTC),
			week:    "2024-12-30",
			weekday: 3,
			end:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "monday midnight starts a week",
			at:      time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			week:    "2025-01-06",
			weekday: 1,
			end:     time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "sunday is the last day",
			at:      time.Date(2025, 1, 5, 23, 59, 59, 0, time.UTC),
			week:    "2024-12-30",
			weekday: 7,
			end:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "non-UTC input",
			at:      time.Date(2025, 1, 6, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
			week:    "2024-12-30",
			weekday: 7,
			end:     time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.week, WeekKey(tt.at))
			assert.Equal(t, tt.weekday, Weekday(tt.at))
			assert.True(t, tt.end.Equal(WeekEndTime(tt.at)), "expected %s, got %s", tt.end, WeekEndTime(tt.at))
		})
	}
}

func TestResetTimer(t *testing.T) {
	timer := NewResetTimer(time.Date(2025, 1, 5, 23, 0, 0, 0, time.UTC))

	assert.False(t, timer.ShouldReset())
	assert.False(t, timer.ShouldWarn())
	assert.Equal(t, time.Hour, timer.Remaining())

	timer.Now = time.Date(2025, 1, 5, 23, 58, 30, 0, time.UTC)
	assert.True(t, timer.ShouldWarn())
	assert.False(t, timer.ShouldReset())

	timer.Now = time.Date(2025, 1, 6, 0, 0, 1, 0, time.UTC)
	assert.True(t, timer.ShouldReset())
	assert.Equal(t, time.Duration(0), timer.Remaining())
}
