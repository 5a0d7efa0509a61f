package program

import (
	"strings"
	"time"
)

const (
	// ProgramWeeks is the length of the repeating training cycle.
	ProgramWeeks = 6

	// StartDateKey is the per-user config key holding the date of the
	// program's first week. The Italian key survives from the original
	// spreadsheet layout and stays for data compatibility.
	StartDateKey = "data_inizio_scheda"

	DateLayout = "2006-01-02"
)

// WeekNumber computes which of the 6 program weeks the target date falls
// in. Week 1 starts on the Monday of the calendar week containing the
// start date, and the cycle repeats every 6 weeks indefinitely. Target
// dates before that Monday clamp to week 1.
func WeekNumber(startDate, targetDate time.Time) int {
	monday := mondayOf(startDate)
	deltaDays := daysBetween(monday, targetDate)
	if deltaDays < 0 {
		return 1
	}
	return (deltaDays/7)%ProgramWeeks + 1
}

// WeekNumberFromString is WeekNumber with a raw start date string, as
// stored in the user config. A malformed start date falls back to week 1.
func WeekNumberFromString(startDate string, targetDate time.Time) int {
	start, err := time.Parse(DateLayout, strings.TrimSpace(startDate))
	if err != nil {
		return 1
	}
	return WeekNumber(start, targetDate)
}

func mondayOf(date time.Time) time.Time {
	// time.Weekday starts the week on Sunday
	daysSinceMonday := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -daysSinceMonday)
}

func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}
