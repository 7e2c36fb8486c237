package plan

import (
	"fmt"
	"regexp"
	"strings"
)

// SummativeSuffix marks the synthetic per-material summative assessment
// row appended to every semester skeleton.
const SummativeSuffix = "_slm"

// defaultSummativePeriods is the allocation a summative row starts with
// before any user edit.
const defaultSummativePeriods = 2

// enumMarker matches leading enumeration markers: "1.", "2)", dashes and
// bullet characters. Markers are stripped for display only; composite ids
// count the line's position, not its text.
var enumMarker = regexp.MustCompile(`^(?:\d+[.)]|[-–*•])\s*`)

// CompositeID derives the stable child-row id for the line at the given
// 0-based position among the parent's retained lines. Read and save paths
// both go through this function.
func CompositeID(parentID string, index int) string {
	return fmt.Sprintf("%s_%d", parentID, index)
}

// line is one retained line of a newline-delimited source field.
type line struct {
	index   int    // 0-based position among retained lines
	display string // trimmed text with enumeration markers stripped
}

// splitField splits a newline-delimited field into its retained lines.
// Empty and whitespace-only lines are dropped; order is preserved and
// indices are assigned over the retained lines only.
func splitField(text string) []line {
	var lines []line
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		lines = append(lines, line{
			index:   len(lines),
			display: strings.TrimSpace(enumMarker.ReplaceAllString(trimmed, "")),
		})
	}
	return lines
}

// CriteriaSkeleton derives the achievement-criteria rows for a pathway
// row list: one row per non-empty line of each parent's pathway text.
// Parents with zero retained lines contribute no rows.
func CriteriaSkeleton(parents []LearningPathwayRow) []AchievementCriteriaRow {
	var rows []AchievementCriteriaRow
	for _, parent := range parents {
		for _, l := range splitField(parent.PathwayText) {
			rows = append(rows, AchievementCriteriaRow{
				ID:          CompositeID(parent.ID, l.index),
				OriginalID:  parent.ID,
				Material:    parent.Material,
				PathwayLine: l.display,
			})
		}
	}
	return rows
}

// AnnualSkeleton derives the annual plan rows, one per pathway row,
// sharing the parent id.
func AnnualSkeleton(parents []LearningPathwayRow) []AnnualPlanRow {
	rows := make([]AnnualPlanRow, 0, len(parents))
	for _, parent := range parents {
		rows = append(rows, AnnualPlanRow{
			ID:       parent.ID,
			Element:  parent.Element,
			Material: parent.Material,
		})
	}
	return rows
}

// SemesterSkeleton derives the semester plan rows: one row per non-empty
// line of each parent's material scope text, plus exactly one synthetic
// summative row per parent, appended even when the parent has zero scope
// lines.
func SemesterSkeleton(parents []LearningPathwayRow) []SemesterPlanRow {
	var rows []SemesterPlanRow
	for _, parent := range parents {
		for _, l := range splitField(parent.MaterialScopeText) {
			rows = append(rows, SemesterPlanRow{
				ID:         CompositeID(parent.ID, l.index),
				OriginalID: parent.ID,
				Material:   parent.Material,
				ScopeLine:  l.display,
			})
		}
		rows = append(rows, SemesterPlanRow{
			ID:               parent.ID + SummativeSuffix,
			OriginalID:       parent.ID,
			Material:         parent.Material,
			Summative:        true,
			AllocatedPeriods: defaultSummativePeriods,
		})
	}
	return rows
}
