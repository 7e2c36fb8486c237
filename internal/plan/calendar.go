package plan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sekolahku/perencana/internal/calendar"
)

// CalendarDocument is the persisted shape of a school calendar.
type CalendarDocument struct {
	Events []calendar.Event `json:"events"`
}

// Calendar loads the school calendar of an academic year. A missing
// document is an empty event list.
func (p *Planner) Calendar(ctx context.Context, year, teacherID string) ([]calendar.Event, error) {
	var doc CalendarDocument
	if err := p.readInto(ctx, CalendarPath(year, teacherID), &doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}

// SaveCalendar replaces the school calendar of an academic year.
func (p *Planner) SaveCalendar(ctx context.Context, year, teacherID string, events []calendar.Event) error {
	if events == nil {
		events = []calendar.Event{}
	}
	doc := CalendarDocument{Events: events}
	if err := validateShape(calendarDocumentSchema, doc); err != nil {
		return fmt.Errorf("calendar document: %w", err)
	}
	return p.writeFrom(ctx, CalendarPath(year, teacherID), doc)
}

// EffectiveDayTally derives the per-weekday effective-instructional-day
// counts of a semester from the stored calendar: Sundays and every date
// the calendar marks non-instructional are skipped.
func (p *Planner) EffectiveDayTally(ctx context.Context, year, teacherID string, semester int, tables calendar.Tables) (calendar.Tally, error) {
	startYear, err := academicStartYear(year)
	if err != nil {
		return nil, err
	}

	events, err := p.Calendar(ctx, year, teacherID)
	if err != nil {
		return nil, err
	}

	start, end := calendar.SemesterWindow(startYear, semester)
	return calendar.EffectiveDays(start, end, calendar.NonInstructional(events, tables)), nil
}

// CalendarLabels resolves the per-day rendering labels of a semester
// window from the stored calendar. Every day of the window appears in
// order; the highest-priority category among its events wins the label.
func (p *Planner) CalendarLabels(ctx context.Context, year, teacherID string, semester int, tables calendar.Tables) ([]calendar.DayLabel, error) {
	startYear, err := academicStartYear(year)
	if err != nil {
		return nil, err
	}

	events, err := p.Calendar(ctx, year, teacherID)
	if err != nil {
		return nil, err
	}

	start, end := calendar.SemesterWindow(startYear, semester)
	return calendar.Labels(start, end, events, tables), nil
}

// academicStartYear extracts the starting year of an academic-year
// label such as "2025/2026".
func academicStartYear(year string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(year), "/")
	head, _, _ = strings.Cut(head, "-")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, fmt.Errorf("malformed academic year %q", year)
	}
	return n, nil
}
