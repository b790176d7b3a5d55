package model

import "time"

// LookbackWindow is a named calendar offset from the reference date.
type LookbackWindow struct {
	Name   string
	Years  int
	Months int
	Days   int
}

// Windows is the fixed window set, longest first. Table columns follow this order.
var Windows = []LookbackWindow{
	{Name: "max", Years: -10},
	{Name: "5yr", Years: -5},
	{Name: "1yr", Years: -1},
	{Name: "6m", Months: -6},
	{Name: "3m", Months: -3},
	{Name: "2m", Months: -2},
	{Name: "1m", Months: -1},
	{Name: "2w", Days: -14},
	{Name: "1w", Days: -7},
}

// WindowByName looks up a window in Windows.
func WindowByName(name string) (LookbackWindow, bool) {
	for _, w := range Windows {
		if w.Name == name {
			return w, true
		}
	}
	return LookbackWindow{}, false
}

// WindowNames returns the window names in column order.
func WindowNames() []string {
	names := make([]string, len(Windows))
	for i, w := range Windows {
		names[i] = w.Name
	}
	return names
}

// From returns the window's target date relative to ref.
// Year and month offsets clamp to the last day of the target month.
func (w LookbackWindow) From(ref time.Time) time.Time {
	return AddCalendar(ref, w.Years, w.Months, w.Days)
}

// AddCalendar shifts t by whole years and months, clamping the day of month
// (2024-03-31 minus one month is 2024-02-29), then adds days.
func AddCalendar(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 + years*12 + months
	ty, tm := total/12, time.Month(total%12+1)
	if last := daysIn(ty, tm, t.Location()); d > last {
		d = last
	}
	shifted := time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	return shifted.AddDate(0, 0, days)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
