// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates a timestamp to UTC midnight of its calendar day.
// Day-scoped columns are stored and compared in UTC only, so equality works
// no matter what zone the request or the host clock carries.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
