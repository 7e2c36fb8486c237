// Package calendar classifies school-calendar events and derives
// effective-instructional-day tallies for semester windows. Everything
// here is a pure function of its inputs; categories are recomputed on
// every use and never persisted.
package calendar

import (
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// EventType is the authored type tag of a calendar event.
type EventType string

const (
	TypeHoliday    EventType = "holiday"
	TypeAssessment EventType = "assessment"
	TypeEvent      EventType = "event"
	TypeOther      EventType = "other"
)

// Event is one school-calendar entry.
type Event struct {
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
}

// Day parses the event date.
func (e Event) Day() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// Category is the rendering category of a calendar day or event. The
// ordering is the rendering-priority contract: when one day carries
// several categories, the highest wins its single-letter label.
type Category int

const (
	CategoryNone Category = iota
	CategoryActivity
	CategoryAssessment
	CategoryBreak
	CategoryJointLeave
	CategorySunday
	CategoryNationalHoliday
)

// Letter returns the single-letter label printed in calendar grids.
func (c Category) Letter() string {
	switch c {
	case CategoryNationalHoliday:
		return "H"
	case CategorySunday:
		return "M"
	case CategoryJointLeave:
		return "C"
	case CategoryBreak:
		return "L"
	case CategoryAssessment:
		return "S"
	case CategoryActivity:
		return "K"
	}
	return ""
}

func (c Category) String() string {
	switch c {
	case CategoryNationalHoliday:
		return "national-holiday"
	case CategorySunday:
		return "sunday"
	case CategoryJointLeave:
		return "joint-leave"
	case CategoryBreak:
		return "school-break"
	case CategoryAssessment:
		return "summative-assessment"
	case CategoryActivity:
		return "school-activity"
	}
	return "none"
}

// Instructional reports whether a day of this category still counts as
// an instructional day. Assessments and activities take place on school
// days; only holiday kinds and Sundays do not.
func (c Category) Instructional() bool {
	switch c {
	case CategoryBreak, CategoryJointLeave, CategorySunday, CategoryNationalHoliday:
		return false
	}
	return true
}

// Classify maps one event to its category. Assessment-typed events and
// events whose description carries an assessment keyword are summative
// assessments; holidays run through the ordered keyword sets (joint
// leave, then generic break, then named national/religious holidays) and
// default to a generic break when nothing matches; plain events are
// school activities.
func Classify(e Event, t Tables) Category {
	desc := strings.ToLower(e.Description)

	if e.Type == TypeAssessment || matchAny(desc, t.Assessment) {
		return CategoryAssessment
	}

	switch e.Type {
	case TypeHoliday:
		switch {
		case matchAny(desc, t.JointLeave):
			return CategoryJointLeave
		case matchAny(desc, t.Break):
			return CategoryBreak
		case matchAny(desc, t.National):
			return CategoryNationalHoliday
		}
		return CategoryBreak
	case TypeEvent:
		return CategoryActivity
	}
	return CategoryNone
}

// DayCategory resolves the single category of one calendar day from
// every event falling on it, Sundays included.
func DayCategory(day time.Time, events []Event, t Tables) Category {
	best := CategoryNone
	if day.Weekday() == time.Sunday {
		best = CategorySunday
	}

	date := day.Format(DateLayout)
	for _, e := range events {
		if e.Date != date {
			continue
		}
		if c := Classify(e, t); c > best {
			best = c
		}
	}
	return best
}

// NonInstructional collects the dates whose events make the day not
// count as instructional: breaks, joint leave and national holidays.
// Sundays are excluded unconditionally by the day counter and are not
// part of this set.
func NonInstructional(events []Event, t Tables) map[string]bool {
	dates := make(map[string]bool)
	for _, e := range events {
		if c := Classify(e, t); !c.Instructional() {
			dates[e.Date] = true
		}
	}
	return dates
}

func matchAny(desc string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
