// Package dateutil provides the calendar arithmetic used by the benefit
// calculations. Spans between two dates are decomposed into whole years,
// months and leftover days against the calendar, the same way spreadsheet
// DATEDIF-style functions work, rather than by dividing a raw day count. Downstream discounting exponents depend on this exact
// decomposition.
package dateutil

import "time"

// Decompose breaks the span from start to end into whole years, months and
// days. The month count is the largest n for which start advanced by n
// calendar months (day of month clamped to the target month's length) does
// not pass end; the leftover days run from that anchor date to end, so they
// are never negative for a forward span. Callers are responsible for
// chronological ordering: if end precedes start the components all negate.
func Decompose(start, end time.Time) (years, months, days int) {
	if end.Before(start) {
		// Decompose the forward span and negate, so all components carry
		// the same sign.
		y, m, d := Decompose(end, start)
		return -y, -m, -d
	}

	total := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if addMonthsClamped(start, total).After(end) {
		// The clamped anchor lands in end's month, so one step back is
		// always enough to get under end.
		total--
	}
	anchor := addMonthsClamped(start, total)

	years = total / 12
	months = total % 12
	days = dayCount(anchor, end)
	return years, months, days
}

// addMonthsClamped advances t by n calendar months, clamping the day of
// month to the target month's length rather than letting it spill over the
// way time.AddDate does.
func addMonthsClamped(t time.Time, n int) time.Time {
	m := int(t.Month()) - 1 + n
	year := t.Year() + m/12
	month := time.Month(m%12 + 1)

	day := t.Day()
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// dayCount returns whole calendar days from a to b, ignoring time of day.
func dayCount(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// YearsBetween returns the number of whole calendar years elapsed from start
// to end.
func YearsBetween(start, end time.Time) int {
	years, _, _ := Decompose(start, end)
	return years
}

// MonthsBetween returns the number of whole calendar months elapsed from
// start to end.
func MonthsBetween(start, end time.Time) int {
	years, months, _ := Decompose(start, end)
	return years*12 + months
}

// YearFraction returns the elapsed time from start to end in fractional
// years: whole years plus months/12 plus leftover days/365.25.
func YearFraction(start, end time.Time) float64 {
	years, months, days := Decompose(start, end)
	return float64(years) + float64(months)/12 + float64(days)/365.25
}
