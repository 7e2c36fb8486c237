package calendar_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/sekolahku/perencana/internal/calendar"
)

func TestLabels(t *testing.T) {
	events := []calendar.Event{
		{Date: "2025-08-17", Description: "Hari Kemerdekaan RI", Type: calendar.TypeHoliday},
		{Date: "2025-08-18", Description: "Cuti bersama", Type: calendar.TypeHoliday},
	}

	start := time.Date(2025, time.August, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.August, 19, 0, 0, 0, 0, time.UTC)

	got := calendar.Labels(start, end, events, calendar.DefaultTables())
	want := []calendar.DayLabel{
		{Date: "2025-08-16", Category: "none", Letter: ""},
		// Independence day falls on a Sunday; the national holiday
		// outranks the Sunday label.
		{Date: "2025-08-17", Category: "national-holiday", Letter: "H"},
		{Date: "2025-08-18", Category: "joint-leave", Letter: "C"},
		{Date: "2025-08-19", Category: "none", Letter: ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %+v, want %+v", got, want)
	}
}

func TestLabels_SundayWithoutEvents(t *testing.T) {
	sunday := time.Date(2025, time.August, 24, 0, 0, 0, 0, time.UTC)

	got := calendar.Labels(sunday, sunday, nil, calendar.DefaultTables())
	if len(got) != 1 {
		t.Fatalf("Labels() = %d labels, want 1", len(got))
	}
	if got[0].Category != "sunday" || got[0].Letter != "M" {
		t.Errorf("Labels()[0] = %+v, want sunday/M", got[0])
	}
}

func TestLabels_SingleDayWindow(t *testing.T) {
	day := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	events := []calendar.Event{
		{Date: "2025-09-01", Description: "Sumatif lingkup materi", Type: calendar.TypeAssessment},
	}

	got := calendar.Labels(day, day, events, calendar.DefaultTables())
	want := []calendar.DayLabel{
		{Date: "2025-09-01", Category: "summative-assessment", Letter: "S"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %+v, want %+v", got, want)
	}
}
