package calendar

import "time"

// Indonesian weekday names, used as tally keys so the counts line up
// with the weekly timetable vocabulary they feed.
var weekdayNames = [...]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

// WeekdayName returns the Indonesian name of a weekday.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// SemesterWindow returns the inclusive calendar window of a semester:
// July 1 through December 31 of the start year for the first semester,
// January 1 through June 30 of the following year otherwise.
func SemesterWindow(startYear, semester int) (time.Time, time.Time) {
	if semester == 1 {
		return time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC),
			time.Date(startYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(startYear+1, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(startYear+1, time.June, 30, 0, 0, 0, 0, time.UTC)
}

// Tally maps weekday names to their effective-instructional-day counts.
type Tally map[string]int

// Total sums the counts across all weekdays.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// EffectiveDays counts, per weekday, the days of the inclusive window
// that are instructional: Sundays are skipped unconditionally, and so is
// every date present in the exclusion set (keyed by DateLayout).
func EffectiveDays(start, end time.Time, excluded map[string]bool) Tally {
	tally := make(Tally)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Sunday {
			continue
		}
		if excluded[day.Format(DateLayout)] {
			continue
		}
		tally[WeekdayName(day.Weekday())]++
	}
	return tally
}
