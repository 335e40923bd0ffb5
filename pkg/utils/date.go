package utils

import "time"

// DateRange returns the from/to dates (YYYY-MM-DD, UTC) covering the last
// `days` days up to today.
func DateRange(days int) (string, string) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -days)
	return from.Format("2006-01-02"), now.Format("2006-01-02")
}

// FormatDateToday renders today's date the way it appears in the digest email
// subject, e.g. "Monday, January 2, 2006".
func FormatDateToday() string {
	return time.Now().UTC().Format("Monday, January 2, 2006")
}
