package plan

import (
	"strconv"
	"strings"

	"github.com/sekolahku/perencana/internal/store"
)

// UnknownSegment is the sentinel path segment malformed year or class
// labels degrade to. Reads under it find no data instead of erroring.
const UnknownSegment = "unknown"

const (
	rootSegment     = "plans"
	teachersSegment = "teachers"
	classesSegment  = "classes"
	phasesSegment   = "phases"
	subjectsSegment = "subjects"
)

// NormalizeYear converts an academic year label to its dash form:
// "2025/2026" becomes "2025-2026". Empty labels resolve to the unknown
// sentinel.
func NormalizeYear(year string) string {
	year = strings.TrimSpace(year)
	if year == "" {
		return UnknownSegment
	}
	return strings.ReplaceAll(year, "/", "-")
}

// NormalizeClass converts a class label to its lowercase dash form:
// "Kelas 1A" becomes "kelas-1a". Empty labels resolve to the unknown
// sentinel.
func NormalizeClass(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return UnknownSegment
	}
	return strings.Join(strings.Fields(strings.ToLower(label)), "-")
}

// PhaseBucket maps a class label to its coarser phase segment: class
// levels 1-2 are fase-a, 3-4 fase-b, 5-6 fase-c. The level is the first
// digit found in the label; labels without a recognized level resolve to
// the unknown sentinel.
func PhaseBucket(label string) string {
	for _, r := range label {
		if r < '0' || r > '9' {
			continue
		}
		switch r {
		case '1', '2':
			return "fase-a"
		case '3', '4':
			return "fase-b"
		case '5', '6':
			return "fase-c"
		}
		return UnknownSegment
	}
	return UnknownSegment
}

// scopePrefix returns the owner prefix: teacher copies live under
// teachers/<id>, the administrator master scope is addressed directly.
func scopePrefix(teacherID string) store.Path {
	if teacherID == "" {
		return nil
	}
	return store.Path{teachersSegment, teacherID}
}

// classBase addresses the per-class grouping of a scope.
func classBase(s Scope) store.Path {
	p := scopePrefix(s.TeacherID)
	return append(p, rootSegment, NormalizeYear(s.Year), classesSegment, NormalizeClass(s.Class))
}

// subjectBase addresses one subject inside the per-class grouping.
func subjectBase(s Scope) store.Path {
	return append(classBase(s), subjectsSegment, s.Subject)
}

// SubjectCatalogPath addresses the subject catalog of a class.
func SubjectCatalogPath(s Scope) store.Path {
	return append(classBase(s), subjectsSegment)
}

// PathwayPath addresses the authored pathway row list of a subject
// semester.
func PathwayPath(s Scope) store.Path {
	return append(subjectBase(s), "pathways", strconv.Itoa(s.Semester))
}

// CriteriaPath addresses the criteria override map of a subject semester.
func CriteriaPath(s Scope) store.Path {
	return append(subjectBase(s), "criteria", strconv.Itoa(s.Semester))
}

// AnnualPath addresses the annual allocation map of a subject. Annual
// allocations are shared across both semesters, so the path carries no
// semester segment.
func AnnualPath(s Scope) store.Path {
	return append(subjectBase(s), "annual")
}

// SemesterPlanPath addresses the semester override map of a subject
// semester.
func SemesterPlanPath(s Scope) store.Path {
	return append(subjectBase(s), "semester-plan", strconv.Itoa(s.Semester))
}

// CocurricularPath addresses the cross-class cocurricular program, which
// is defined once per phase rather than per class.
func CocurricularPath(s Scope) store.Path {
	p := scopePrefix(s.TeacherID)
	p = append(p, rootSegment, NormalizeYear(s.Year), phasesSegment, PhaseBucket(s.Class))
	return append(p, "cocurricular", strconv.Itoa(s.Semester))
}

// CalendarPath addresses the school calendar of an academic year.
func CalendarPath(year, teacherID string) store.Path {
	p := scopePrefix(teacherID)
	return append(p, rootSegment, NormalizeYear(year), "calendar")
}
