package plan_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/sekolahku/perencana/internal/plan"
	"github.com/sekolahku/perencana/internal/store"
)

func teacherScope() plan.Scope {
	return plan.Scope{
		Year:      "2025/2026",
		Class:     "Kelas 1",
		Subject:   "mat",
		Semester:  1,
		TeacherID: "t42",
	}
}

func seed(t *testing.T, st store.Store, path store.Path, doc store.Document) {
	t.Helper()
	if err := st.Write(context.Background(), path, doc); err != nil {
		t.Fatalf("seed %s: %v", path, err)
	}
}

func TestPull_ExactMatch(t *testing.T) {
	st := store.NewMemoryStore()
	scope := teacherScope()
	master := store.Document{"rows": []any{map[string]any{"id": "tp1", "pathwayText": "Baris"}}}
	seed(t, st, plan.PathwayPath(scope.Master()), master)

	sync := plan.NewSynchronizer(st)
	got, err := sync.Pull(t.Context(), plan.KindPathways, scope)
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if !reflect.DeepEqual(got, master) {
		t.Errorf("Pull() = %+v, want master content %+v", got, master)
	}

	copied, err := st.Read(t.Context(), plan.PathwayPath(scope))
	if err != nil {
		t.Fatalf("reading teacher copy: %v", err)
	}
	if !reflect.DeepEqual(copied, master) {
		t.Errorf("teacher copy = %+v, want %+v", copied, master)
	}
}

func TestPull_NameFallbackKeepsCallerKey(t *testing.T) {
	st := store.NewMemoryStore()
	scope := teacherScope()

	// The teacher knows the subject as id "mat"; the master catalog
	// carries it under id "matematika" with a differently cased, padded
	// name.
	seed(t, st, plan.SubjectCatalogPath(scope), store.Document{
		"subjects": []any{map[string]any{"id": "mat", "name": " matematika "}},
	})
	seed(t, st, plan.SubjectCatalogPath(scope.Master()), store.Document{
		"subjects": []any{
			map[string]any{"id": "ipas", "name": "IPAS"},
			map[string]any{"id": "matematika", "name": "MATEMATIKA"},
		},
	})

	masterScope := scope.Master()
	masterScope.Subject = "matematika"
	master := store.Document{"allocatedPeriodsById": map[string]any{"tp1": float64(10)}}
	seed(t, st, plan.AnnualPath(masterScope), master)

	sync := plan.NewSynchronizer(st)
	got, err := sync.Pull(t.Context(), plan.KindAnnual, scope)
	if err != nil {
		t.Fatalf("Pull() error = %v", err)
	}
	if !reflect.DeepEqual(got, master) {
		t.Errorf("Pull() = %+v, want %+v", got, master)
	}

	// The teacher copy lives under the caller's own subject id, not the
	// catalog entry's.
	copied, err := st.Read(t.Context(), plan.AnnualPath(scope))
	if err != nil {
		t.Fatalf("teacher copy not written under caller key: %v", err)
	}
	if !reflect.DeepEqual(copied, master) {
		t.Errorf("teacher copy = %+v, want %+v", copied, master)
	}
	if _, err := st.Read(t.Context(), plan.AnnualPath(withSubject(scope, "matematika"))); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unexpected teacher copy under master key, err = %v", err)
	}
}

func TestPull_MasterNotPopulated(t *testing.T) {
	st := store.NewMemoryStore()
	scope := teacherScope()

	prior := store.Document{"rows": []any{map[string]any{"id": "lama"}}}
	seed(t, st, plan.PathwayPath(scope), prior)

	sync := plan.NewSynchronizer(st)
	_, err := sync.Pull(t.Context(), plan.KindPathways, scope)
	if !errors.Is(err, plan.ErrMasterNotPopulated) {
		t.Fatalf("Pull() error = %v, want ErrMasterNotPopulated", err)
	}

	// The teacher document is untouched on failure.
	after, err := st.Read(t.Context(), plan.PathwayPath(scope))
	if err != nil {
		t.Fatalf("reading teacher document: %v", err)
	}
	if !reflect.DeepEqual(after, prior) {
		t.Errorf("teacher document changed on failed pull: %+v", after)
	}
}

func TestPull_RequiresTeacherScope(t *testing.T) {
	sync := plan.NewSynchronizer(store.NewMemoryStore())

	scope := teacherScope()
	scope.TeacherID = ""
	if _, err := sync.Pull(t.Context(), plan.KindPathways, scope); err == nil {
		t.Fatal("Pull() without teacher scope should fail")
	}
}

func TestPull_StorageFailureLeavesTeacherUntouched(t *testing.T) {
	inner := store.NewMemoryStore()
	scope := teacherScope()

	prior := store.Document{"rows": []any{}}
	seed(t, inner, plan.PathwayPath(scope), prior)

	broken := &failingStore{Store: inner, failPrefix: "plans/"}
	sync := plan.NewSynchronizer(broken)

	_, err := sync.Pull(t.Context(), plan.KindPathways, scope)
	if err == nil {
		t.Fatal("Pull() should propagate storage failure")
	}
	if errors.Is(err, plan.ErrMasterNotPopulated) {
		t.Fatalf("storage failure misreported as not populated: %v", err)
	}
	if broken.writes != 0 {
		t.Errorf("writes = %d, want 0 on failed pull", broken.writes)
	}
}

func withSubject(s plan.Scope, subject string) plan.Scope {
	s.Subject = subject
	return s
}

// failingStore fails reads under a path prefix and counts writes.
type failingStore struct {
	store.Store
	failPrefix string
	writes     int
}

func (f *failingStore) Read(ctx context.Context, path store.Path) (store.Document, error) {
	if len(f.failPrefix) > 0 && len(path) > 0 && path[0]+"/" == f.failPrefix {
		return nil, fmt.Errorf("storage unavailable")
	}
	return f.Store.Read(ctx, path)
}

func (f *failingStore) Write(ctx context.Context, path store.Path, doc store.Document) error {
	f.writes++
	return f.Store.Write(ctx, path, doc)
}
