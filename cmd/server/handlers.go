package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sekolahku/perencana/internal/calendar"
	"github.com/sekolahku/perencana/internal/plan"
	"github.com/sekolahku/perencana/internal/platform/cache"
	"github.com/sekolahku/perencana/internal/platform/database"
)

// maxImportBytes caps uploaded workbook bodies.
const maxImportBytes = 10 << 20

// server bundles the handler dependencies.
type server struct {
	planner *plan.Planner
	tables  calendar.Tables
	db      *database.DB
	cache   *cache.Cache
}

// newMux creates the HTTP router.
func newMux(s server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /v1/effective-days", s.handleEffectiveDays)
	mux.HandleFunc("GET /v1/calendar/labels", s.handleCalendarLabels)
	mux.HandleFunc("POST /v1/pull", s.handlePull)
	mux.HandleFunc("POST /v1/calendar/import", s.handleCalendarImport)
	return mux
}

func (s server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.HealthCheck(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
		return
	}
	if s.cache != nil {
		if err := s.cache.HealthCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "cache unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleEffectiveDays returns the per-weekday instructional-day tally of
// a semester window.
func (s server) handleEffectiveDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	semester, err := strconv.Atoi(q.Get("semester"))
	if err != nil || semester < 1 || semester > 2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "semester must be 1 or 2"})
		return
	}

	tally, err := s.planner.EffectiveDayTally(r.Context(), q.Get("year"), q.Get("teacher_id"), semester, s.tables)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tally": tally, "total": tally.Total()})
}

// handleCalendarLabels returns the per-day rendering labels of a
// semester window.
func (s server) handleCalendarLabels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	semester, err := strconv.Atoi(q.Get("semester"))
	if err != nil || semester < 1 || semester > 2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "semester must be 1 or 2"})
		return
	}

	labels, err := s.planner.CalendarLabels(r.Context(), q.Get("year"), q.Get("teacher_id"), semester, s.tables)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"labels": labels})
}

// handlePull copies a master document into the caller's teacher scope.
func (s server) handlePull(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind      string `json:"kind"`
		Year      string `json:"year"`
		Class     string `json:"class"`
		Subject   string `json:"subject"`
		Semester  int    `json:"semester"`
		TeacherID string `json:"teacherId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	doc, err := s.planner.Pull(r.Context(), plan.DocKind(req.Kind), plan.Scope{
		Year:      req.Year,
		Class:     req.Class,
		Subject:   req.Subject,
		Semester:  req.Semester,
		TeacherID: req.TeacherID,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, plan.ErrMasterNotPopulated) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleCalendarImport reads calendar events from an uploaded workbook
// and replaces the year's calendar document.
func (s server) handleCalendarImport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	events, err := calendar.ImportXLSX(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := s.planner.SaveCalendar(r.Context(), q.Get("year"), q.Get("teacher_id"), events); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(events)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
