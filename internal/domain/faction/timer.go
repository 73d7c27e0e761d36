package faction

import "time"

// warnWindow is how close to the reset the timer turns into a warning
const warnWindow = 100 * time.Second

// ResetTimer counts down to the next weekly chores reset
type ResetTimer struct {
	ResetsAt time.Time
	Now      time.Time
}

// NewResetTimer returns the countdown to the end of the week containing now
func NewResetTimer(now time.Time) ResetTimer {
	return ResetTimer{ResetsAt: WeekEndTime(now), Now: now.UTC()}
}

// ShouldReset reports whether the reset moment has passed
func (r ResetTimer) ShouldReset() bool {
	return r.ResetsAt.Before(r.Now)
}

// ShouldWarn reports whether the reset is less than 100 seconds away
func (r ResetTimer) ShouldWarn() bool {
	return r.Remaining() < warnWindow
}

// Remaining is the time left until the reset, zero once it has passed
func (r ResetTimer) Remaining() time.Duration {
	left := r.ResetsAt.Sub(r.Now)
	if left < 0 {
		return 0
	}
	return left
}
