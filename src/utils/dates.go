package utils

import (
	"time"
)

// MonthRange returns the first and last instant of the calendar month that
// contains the given date, in that date's location.
func MonthRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// LastMonthStarts returns the first day of each of the n calendar months
// ending at the month of the reference date, oldest first.
func LastMonthStarts(reference time.Time, n int) []time.Time {
	starts := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		starts = append(starts, time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location()).AddDate(0, -i, 0))
	}
	return starts
}

// ShortMonthName returns the localized short month label used on trend
// charts. Follows the Turkish month names of the price feed's market.
func ShortMonthName(date time.Time) string {
	names := [...]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}
	return names[date.Month()-1]
}
