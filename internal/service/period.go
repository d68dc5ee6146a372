package service

import "time"

// Leaderboard periods. Anything unrecognized falls back to PeriodAll.
const (
	PeriodWeek     = "week"
	PeriodMonth    = "month"
	PeriodSemester = "semester"
	PeriodAll      = "all"
)

// periodStart resolves a period name to its lower-bound timestamp. The
// semester starts September 1 when the query lands in September or later,
// otherwise January 1 of the same year. A zero return means no lower bound.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodSemester:
		if now.Month() >= time.September {
			return time.Date(now.Year(), time.September, 1, 0, 0, 0, 0, now.Location())
		}
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Time{}
}
