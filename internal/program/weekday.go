package program

import "time"

// Weekdays lists the plan's day labels in display order, Monday first.
// The Italian labels survive from the original spreadsheet data and are
// kept verbatim so existing rows keep matching.
var Weekdays = []string{
	"Lunedì",
	"Martedì",
	"Mercoledì",
	"Giovedì",
	"Venerdì",
	"Sabato",
	"Domenica",
}

// WeekdayLabel maps a date to its plan day label.
func WeekdayLabel(date time.Time) string {
	return Weekdays[(int(date.Weekday())+6)%7]
}

// IsWeekday reports whether the given label is one of the 7 day labels.
func IsWeekday(label string) bool {
	for _, day := range Weekdays {
		if day == label {
			return true
		}
	}
	return false
}
