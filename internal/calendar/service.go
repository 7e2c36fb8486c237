package calendar

import "time"

// DayLabel pairs one date with its resolved rendering category and the
// single-letter label printed in calendar grids.
type DayLabel struct {
	Date     string `json:"date"`
	Category string `json:"category"`
	Letter   string `json:"letter"`
}

// Labels resolves the category of every day in the inclusive window.
// Each day takes the highest-priority category among its events,
// Sundays included; days with nothing on them get an empty letter.
func Labels(start, end time.Time, events []Event, t Tables) []DayLabel {
	var labels []DayLabel
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		c := DayCategory(day, events, t)
		labels = append(labels, DayLabel{
			Date:     day.Format(DateLayout),
			Category: c.String(),
			Letter:   c.Letter(),
		})
	}
	return labels
}
