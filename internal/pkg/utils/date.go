package utils

import "time"

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CompletedMonths counts whole months elapsed from from to to; never negative.
func CompletedMonths(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// CompletedYears counts whole years elapsed from from to to; never negative.
func CompletedYears(from, to time.Time) int {
	return CompletedMonths(from, to) / 12
}

// AtMinutes returns the instant that is minutes past midnight of day.
func AtMinutes(day time.Time, minutes int) time.Time {
	return CivilDate(day).Add(time.Duration(minutes) * time.Minute)
}
