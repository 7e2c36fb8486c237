package plan_test

import (
	"testing"

	"github.com/sekolahku/perencana/internal/plan"
)

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		name string
		year string
		want string
	}{
		{"slash form", "2025/2026", "2025-2026"},
		{"dash form kept", "2025-2026", "2025-2026"},
		{"padded", "  2025/2026 ", "2025-2026"},
		{"empty", "", "unknown"},
		{"blank", "   ", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.NormalizeYear(tt.year); got != tt.want {
				t.Errorf("NormalizeYear(%q) = %q, want %q", tt.year, got, tt.want)
			}
		})
	}
}

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"simple", "Kelas 1", "kelas-1"},
		{"with section", "Kelas 1A", "kelas-1a"},
		{"extra spaces", "  Kelas   2  B ", "kelas-2-b"},
		{"empty", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.NormalizeClass(tt.label); got != tt.want {
				t.Errorf("NormalizeClass(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestPhaseBucket(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Kelas 1", "fase-a"},
		{"Kelas 2B", "fase-a"},
		{"Kelas 3", "fase-b"},
		{"Kelas 4", "fase-b"},
		{"Kelas 5", "fase-c"},
		{"Kelas 6A", "fase-c"},
		{"Kelas 7", "unknown"},
		{"Kelas 0", "unknown"},
		{"Kelas", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := plan.PhaseBucket(tt.label); got != tt.want {
				t.Errorf("PhaseBucket(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestPaths_AdminScope(t *testing.T) {
	scope := plan.Scope{Year: "2025/2026", Class: "Kelas 1", Subject: "mat", Semester: 1}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pathways", plan.PathwayPath(scope).String(), "plans/2025-2026/classes/kelas-1/subjects/mat/pathways/1"},
		{"criteria", plan.CriteriaPath(scope).String(), "plans/2025-2026/classes/kelas-1/subjects/mat/criteria/1"},
		{"annual has no semester", plan.AnnualPath(scope).String(), "plans/2025-2026/classes/kelas-1/subjects/mat/annual"},
		{"semester plan", plan.SemesterPlanPath(scope).String(), "plans/2025-2026/classes/kelas-1/subjects/mat/semester-plan/1"},
		{"catalog", plan.SubjectCatalogPath(scope).String(), "plans/2025-2026/classes/kelas-1/subjects"},
		{"cocurricular uses phase", plan.CocurricularPath(scope).String(), "plans/2025-2026/phases/fase-a/cocurricular/1"},
		{"calendar", plan.CalendarPath(scope.Year, "").String(), "plans/2025-2026/calendar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("path = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestPaths_TeacherScopePrefix(t *testing.T) {
	scope := plan.Scope{Year: "2025/2026", Class: "Kelas 5", Subject: "ipas", Semester: 2, TeacherID: "t42"}

	got := plan.CriteriaPath(scope).String()
	want := "teachers/t42/plans/2025-2026/classes/kelas-5/subjects/ipas/criteria/2"
	if got != want {
		t.Errorf("CriteriaPath() = %q, want %q", got, want)
	}

	if got := plan.CocurricularPath(scope).String(); got != "teachers/t42/plans/2025-2026/phases/fase-c/cocurricular/2" {
		t.Errorf("CocurricularPath() = %q", got)
	}
}

func TestPaths_MalformedLabelsDegradeToSentinel(t *testing.T) {
	scope := plan.Scope{Year: "", Class: "", Subject: "mat", Semester: 1}

	got := plan.PathwayPath(scope).String()
	want := "plans/unknown/classes/unknown/subjects/mat/pathways/1"
	if got != want {
		t.Errorf("PathwayPath() = %q, want %q", got, want)
	}
}
