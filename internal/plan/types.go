// Package plan implements the derivation-and-synchronization engine for
// curriculum planning documents: learning-pathway rows are decomposed into
// achievement-criteria, annual and semester planning rows, sparse per-row
// user edits are merged back onto freshly regenerated skeletons, and
// administrator master documents can be pulled into teacher-scoped copies.
package plan

import (
	"encoding/json"
	"fmt"

	"github.com/sekolahku/perencana/internal/store"
)

// Scope addresses one planning document family.
type Scope struct {
	Year     string // academic year, e.g. "2025/2026"
	Class    string // class label, e.g. "Kelas 1A"
	Subject  string // subject identifier within the class catalog
	Semester int    // 1 or 2
	// TeacherID selects a teacher-scoped copy; empty addresses the
	// shared administrator scope.
	TeacherID string
}

// Master returns the same scope addressed at the administrator level.
func (s Scope) Master() Scope {
	s.TeacherID = ""
	return s
}

// LearningPathwayRow is a directly authored source record. Its newline
// delimited text fields are the inputs every derived document is
// regenerated from.
type LearningPathwayRow struct {
	ID                string `json:"id"`
	Element           string `json:"element"`
	PathwayText       string `json:"pathwayText"`
	Material          string `json:"material"`
	MaterialScopeText string `json:"materialScopeText"`
}

// PathwayDocument is the persisted shape of one pathway row list.
type PathwayDocument struct {
	Rows []LearningPathwayRow `json:"rows"`
}

// CriteriaLevels holds the four ordered achievement descriptions.
type CriteriaLevels struct {
	Below    string `json:"below"`
	Partial  string `json:"partial"`
	Met      string `json:"met"`
	Exceeded string `json:"exceeded"`
}

// AchievementCriteriaRow is derived from one non-empty line of a parent
// row's pathway text. Only Criteria is user-editable and persisted.
type AchievementCriteriaRow struct {
	ID          string         `json:"id"`
	OriginalID  string         `json:"originalId"`
	Material    string         `json:"material"`
	PathwayLine string         `json:"pathwayLine"`
	Criteria    CriteriaLevels `json:"criteria"`
}

// CriteriaDocument is the persisted sparse override map for criteria.
type CriteriaDocument struct {
	Intervals    CriteriaLevels            `json:"intervals"`
	CriteriaByID map[string]CriteriaLevels `json:"criteriaById"`
}

// CriteriaSheet is the materialized criteria document handed to the UI.
type CriteriaSheet struct {
	Intervals CriteriaLevels
	Rows      []AchievementCriteriaRow
}

// AnnualPlanRow is derived 1:1 from a pathway row; it shares the parent
// id. Only AllocatedPeriods is user-editable and persisted.
type AnnualPlanRow struct {
	ID               string `json:"id"`
	Element          string `json:"element"`
	Material         string `json:"material"`
	AllocatedPeriods int    `json:"allocatedPeriods"`
}

// AnnualDocument is the persisted sparse override map for annual plans.
// It is scoped to the subject only and shared across both semesters.
type AnnualDocument struct {
	AllocatedPeriodsByID map[string]int `json:"allocatedPeriodsById"`
}

// weekMonths and weekSlots fix the week-selection grid shape: six months
// of five selectable weeks each.
const (
	weekMonths = 6
	weekSlots  = 5
)

// WeekGrid is the fixed 6x5 week-selection structure of a semester row.
type WeekGrid [weekMonths][weekSlots]bool

// SemesterPlanRow is derived from one non-empty line of a parent row's
// material scope text, plus exactly one synthetic summative row per
// parent. AllocatedPeriods, Weeks and Notes are editable and persisted.
type SemesterPlanRow struct {
	ID               string   `json:"id"`
	OriginalID       string   `json:"originalId"`
	Material         string   `json:"material"`
	ScopeLine        string   `json:"scopeLine"`
	Summative        bool     `json:"summative"`
	AllocatedPeriods int      `json:"allocatedPeriods"`
	Weeks            WeekGrid `json:"weekSelections"`
	Notes            string   `json:"notes"`
}

// SemesterOverride is the editable bundle of one semester row.
type SemesterOverride struct {
	AllocatedPeriods int      `json:"allocatedPeriods"`
	WeekSelections   WeekGrid `json:"weekSelections"`
	Notes            string   `json:"notes"`
}

// SemesterDocument is the persisted sparse override map for semester
// plans.
type SemesterDocument struct {
	Rows map[string]SemesterOverride `json:"rows"`
}

// Subject is one entry of a class subject catalog.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubjectCatalog is the persisted list of subjects for one class.
type SubjectCatalog struct {
	Subjects []Subject `json:"subjects"`
}

// encodeDocument converts a typed document into its stored field-map
// form.
func encodeDocument(v any) (store.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return doc, nil
}

// decodeDocument converts a stored field map into a typed document.
func decodeDocument(doc store.Document, v any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
