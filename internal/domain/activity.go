package domain

import "time"

// DateKey is the calendar-day key used throughout activity tracking.
// All day comparisons go through this one format.
const DateKey = "2006-01-02"

// DayKey formats a timestamp as the activity map key.
func DayKey(t time.Time) string { return t.Format(DateKey) }

// DailyProgress tracks the current day's goal progress. Reset wholesale when
// the date rolls over.
type DailyProgress struct {
	Date         string `json:"date"`
	WordsToday   int    `json:"words_today"`
	MinutesToday int    `json:"minutes_today"`
}

// ActivityState holds daily practice counts and the visit streak.
// dailyActivityByDate is append-only historically; only the current day's
// bucket mutates.
type ActivityState struct {
	DailyActivity map[string]int
	StreakDays    int
	LastVisitDate string
	Daily         DailyProgress
}

// NewActivityState returns an empty activity state.
func NewActivityState() *ActivityState {
	return &ActivityState{DailyActivity: map[string]int{}}
}

// RollDailyWindow resets the daily progress bucket when the stored date no
// longer matches now's date. A now earlier than the stored date is treated as
// "same day": a clock moving backward must never wipe counters.
func (a *ActivityState) RollDailyWindow(now time.Time) {
	today := DayKey(now)
	if a.Daily.Date == today {
		return
	}
	if a.Daily.Date != "" && today < a.Daily.Date {
		return
	}
	a.Daily = DailyProgress{Date: today}
}

// RecordActivity adds count practiced words to today's buckets. The daily
// window is rolled first so a stale bucket never absorbs today's work.
func (a *ActivityState) RecordActivity(count int, now time.Time) {
	a.RollDailyWindow(now)
	if a.DailyActivity == nil {
		a.DailyActivity = map[string]int{}
	}
	a.DailyActivity[DayKey(now)] += count
	a.Daily.WordsToday += count
}

// AddMinutes accrues study minutes into today's bucket.
func (a *ActivityState) AddMinutes(minutes int, now time.Time) {
	a.RollDailyWindow(now)
	a.Daily.MinutesToday += minutes
}

// RecordVisit updates the login streak. Same day is a no-op; exactly
// yesterday extends the streak; any wider gap (or a first visit) resets it
// to 1. A now earlier than the stored visit date is treated as same day.
func (a *ActivityState) RecordVisit(now time.Time) {
	today := DayKey(now)
	switch {
	case a.LastVisitDate == today:
		return
	case a.LastVisitDate != "" && today < a.LastVisitDate:
		return
	case a.LastVisitDate == DayKey(now.AddDate(0, 0, -1)):
		a.StreakDays++
	default:
		a.StreakDays = 1
	}
	a.LastVisitDate = today
}
