package date

import "time"

// AddDays shifts d by n days.
func (d Date) AddDays(n int) Date {
	return New(d.year, d.month, d.day+n)
}

// AddMonths shifts d by n months. The day of month is kept and overflow rolls
// into the following month: 31 January + 1 month is 2 or 3 March.
// Use ClampToMonth when the day must stay inside the target month.
func (d Date) AddMonths(n int) Date {
	return New(d.year, d.month+time.Month(n), d.day)
}

// AddYears shifts d by n years with the same rollover as AddMonths,
// so 29 February + 1 year is 1 March.
func (d Date) AddYears(n int) Date {
	return New(d.year+n, d.month, d.day)
}

// SetMonth replaces the month of d. Months outside 1-12 move the year.
func (d Date) SetMonth(m time.Month) Date {
	return New(d.year, m, d.day)
}

// SetYear replaces the year of d.
func (d Date) SetYear(y int) Date {
	return New(y, d.month, d.day)
}

// StartOfWeek returns the first day of the week containing d, where weeks
// begin on firstDayOfWeek.
func StartOfWeek(d Date, firstDayOfWeek time.Weekday) Date {
	day := int(d.Weekday())
	first := int(firstDayOfWeek)

	diff := day - first
	if day < first {
		diff += 7
	}
	return d.AddDays(-diff)
}

// EndOfWeek returns the last day of the week containing d.
func EndOfWeek(d Date, firstDayOfWeek time.Weekday) Date {
	return StartOfWeek(d, firstDayOfWeek).AddDays(6)
}

func StartOfMonth(d Date) Date {
	return New(d.year, d.month, 1)
}

// EndOfMonth is day 0 of the following month.
func EndOfMonth(d Date) Date {
	return New(d.year, d.month+1, 0)
}

// ClampToMonth moves d into the given month keeping its day of month where
// possible: 31 January moved to February lands on the 28th or 29th.
func ClampToMonth(d Date, year int, month time.Month) Date {
	first := New(year, month, 1)
	return Clamp(New(year, month, d.day), first, EndOfMonth(first))
}

// Clamp returns min if d is before min, max if d is after max and d
// otherwise. Zero bounds impose no constraint.
func Clamp(d, min, max Date) Date {
	if !min.IsZero() && d.Before(min) {
		return min
	}
	if !max.IsZero() && d.After(max) {
		return max
	}
	return d
}

// InRange reports whether d lies within [min, max].
func InRange(d, min, max Date) bool {
	return Clamp(d, min, max) == d
}

// IsEqual reports whether a and b are the same day. The zero date is not
// equal to anything, itself included.
func IsEqual(a, b Date) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a == b
}

// IsEqualMonth reports whether a and b fall in the same month of the same year.
func IsEqualMonth(a, b Date) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.year == b.year && a.month == b.month
}
