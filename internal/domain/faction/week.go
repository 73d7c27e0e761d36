package faction

import "time"

// WeekKeyLayout formats the Monday that starts a faction week
const WeekKeyLayout = "2006-01-02"

// WeekStart returns Monday 00:00 UTC of the faction week containing t
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, 1-Weekday(t))
}

// WeekKey identifies the faction week containing t
func WeekKey(t time.Time) string {
	return WeekStart(t).Format(WeekKeyLayout)
}

// Weekday returns the day of the faction week, 1 for Monday through 7 for Sunday
func Weekday(t time.Time) int {
	day := int(t.UTC().Weekday())
	if day == 0 {
		return 7
	}
	return day
}

// WeekEndTime returns the moment the faction week containing t ends
func WeekEndTime(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}
