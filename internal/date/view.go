package date

import "time"

// ViewOfMonth returns the days shown by a month calendar focused on d: whole
// weeks from the week containing the 1st through the week containing the last
// day of the month. The length is always a multiple of 7.
func ViewOfMonth(d Date, firstDayOfWeek time.Weekday) []Date {
	start := StartOfWeek(StartOfMonth(d), firstDayOfWeek)
	end := EndOfWeek(EndOfMonth(d), firstDayOfWeek)

	return DaysInRange(start, end)
}

// DaysInRange returns every day from start through end inclusive.
// It returns nil when end is before start or either bound is absent.
func DaysInRange(start, end Date) []Date {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}

	var days []Date
	current := start
	for !IsEqual(current, end) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return append(days, current)
}

// Weeks splits days into rows of seven.
func Weeks(days []Date) [][]Date {
	var weeks [][]Date
	for i := 0; i < len(days); i += 7 {
		end := i + 7
		if end > len(days) {
			end = len(days)
		}
		weeks = append(weeks, days[i:end])
	}
	return weeks
}
