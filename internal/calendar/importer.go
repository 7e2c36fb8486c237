package calendar

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Date layouts accepted in imported sheets, tried in order.
var importLayouts = []string{
	DateLayout,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-Jan-2006",
}

// ImportXLSX reads calendar events from the first sheet of an Excel
// workbook. Expected columns: date, description, type. A header row and
// rows with unparseable dates are skipped with a warning; an empty type
// column defaults to "other".
func ImportXLSX(r io.Reader) ([]Event, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var events []Event
	for i, row := range rows {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		day, ok := parseImportDate(row[0])
		if !ok {
			if i > 0 {
				slog.Warn("skipping calendar row with unparseable date",
					"sheet", sheet, "row", i+1, "value", row[0])
			}
			continue
		}

		events = append(events, Event{
			Date:        day.Format(DateLayout),
			Description: strings.TrimSpace(row[1]),
			Type:        parseImportType(row),
		})
	}

	slog.Info("calendar imported", "sheet", sheet, "events", len(events))
	return events, nil
}

func parseImportDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	for _, layout := range importLayouts {
		if day, err := time.Parse(layout, cell); err == nil {
			return day, true
		}
	}
	return time.Time{}, false
}

func parseImportType(row []string) EventType {
	if len(row) < 3 {
		return TypeOther
	}
	switch EventType(strings.ToLower(strings.TrimSpace(row[2]))) {
	case TypeHoliday:
		return TypeHoliday
	case TypeAssessment:
		return TypeAssessment
	case TypeEvent:
		return TypeEvent
	}
	return TypeOther
}
