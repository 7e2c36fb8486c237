package plan

// Override merging: each derived family pairs a merge function (splice
// stored editable fields onto a freshly regenerated skeleton) with an
// extract function (collect the editable fields of every current row back
// into the persisted sparse map). Merging is a pure function of the
// skeleton and the stored map; re-reading after a save reproduces the
// saved state exactly.
//
// Extract rebuilds the map from the current skeleton only, so ids
// orphaned by source edits are not carried into the next save. Until such
// a save happens the stored map keeps them, and a later edit that
// restores the old line count revives their overrides. That shrink-then-
// grow revival matches the historical behavior and is kept for
// persisted-data compatibility.

// MergeCriteria splices stored criteria overrides onto a criteria
// skeleton. Rows without a stored entry keep empty level texts.
func MergeCriteria(skeleton []AchievementCriteriaRow, doc CriteriaDocument) []AchievementCriteriaRow {
	rows := make([]AchievementCriteriaRow, len(skeleton))
	for i, row := range skeleton {
		if levels, ok := doc.CriteriaByID[row.ID]; ok {
			row.Criteria = levels
		} else {
			row.Criteria = CriteriaLevels{}
		}
		rows[i] = row
	}
	return rows
}

// ExtractCriteria builds the persisted criteria map from the current
// rows. Every current row id is written, emptied bundles included; the
// map is replaced in full on save.
func ExtractCriteria(intervals CriteriaLevels, rows []AchievementCriteriaRow) CriteriaDocument {
	doc := CriteriaDocument{
		Intervals:    intervals,
		CriteriaByID: make(map[string]CriteriaLevels, len(rows)),
	}
	for _, row := range rows {
		doc.CriteriaByID[row.ID] = row.Criteria
	}
	return doc
}

// MergeAnnual splices stored period allocations onto an annual skeleton.
func MergeAnnual(skeleton []AnnualPlanRow, doc AnnualDocument) []AnnualPlanRow {
	rows := make([]AnnualPlanRow, len(skeleton))
	for i, row := range skeleton {
		row.AllocatedPeriods = doc.AllocatedPeriodsByID[row.ID]
		rows[i] = row
	}
	return rows
}

// ExtractAnnual builds the persisted allocation map from the current
// rows.
func ExtractAnnual(rows []AnnualPlanRow) AnnualDocument {
	doc := AnnualDocument{
		AllocatedPeriodsByID: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		doc.AllocatedPeriodsByID[row.ID] = row.AllocatedPeriods
	}
	return doc
}

// MergeSemester splices stored semester overrides onto a semester
// skeleton. Rows without a stored entry keep the skeleton defaults, which
// carry the summative rows' initial allocation.
func MergeSemester(skeleton []SemesterPlanRow, doc SemesterDocument) []SemesterPlanRow {
	rows := make([]SemesterPlanRow, len(skeleton))
	for i, row := range skeleton {
		if o, ok := doc.Rows[row.ID]; ok {
			row.AllocatedPeriods = o.AllocatedPeriods
			row.Weeks = o.WeekSelections
			row.Notes = o.Notes
		}
		rows[i] = row
	}
	return rows
}

// ExtractSemester builds the persisted semester map from the current
// rows.
func ExtractSemester(rows []SemesterPlanRow) SemesterDocument {
	doc := SemesterDocument{
		Rows: make(map[string]SemesterOverride, len(rows)),
	}
	for _, row := range rows {
		doc.Rows[row.ID] = SemesterOverride{
			AllocatedPeriods: row.AllocatedPeriods,
			WeekSelections:   row.Weeks,
			Notes:            row.Notes,
		}
	}
	return doc
}
