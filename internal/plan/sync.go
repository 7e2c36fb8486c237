package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sekolahku/perencana/internal/store"
)

// ErrMasterNotPopulated is returned by Pull when no master document
// exists for the requested scope, after the name-match fallback has been
// exhausted. Copying nothing would mislead the caller into believing
// synchronization succeeded, so the condition is loud.
var ErrMasterNotPopulated = errors.New("master data not populated for this scope")

// DocKind names one derived-document family a pull operates on.
type DocKind string

const (
	KindPathways     DocKind = "pathways"
	KindCriteria     DocKind = "criteria"
	KindAnnual       DocKind = "annual"
	KindSemesterPlan DocKind = "semester-plan"
	KindCocurricular DocKind = "cocurricular"
)

// kindPath builds the storage address of a document family for a scope.
func kindPath(kind DocKind, s Scope) (store.Path, error) {
	switch kind {
	case KindPathways:
		return PathwayPath(s), nil
	case KindCriteria:
		return CriteriaPath(s), nil
	case KindAnnual:
		return AnnualPath(s), nil
	case KindSemesterPlan:
		return SemesterPlanPath(s), nil
	case KindCocurricular:
		return CocurricularPath(s), nil
	}
	return nil, fmt.Errorf("unknown document kind %q", kind)
}

// subjectKeyed reports whether a family's address is keyed by subject
// identifier, making the catalog name-match fallback applicable.
func subjectKeyed(kind DocKind) bool {
	return kind != KindCocurricular
}

// Synchronizer copies master-scoped documents into teacher-scoped copies.
type Synchronizer struct {
	store store.Store
}

// NewSynchronizer creates a synchronizer over the given store.
func NewSynchronizer(st store.Store) *Synchronizer {
	return &Synchronizer{store: st}
}

// Pull copies the master document of one family into the caller's
// teacher scope. Resolution is ordered: an identifier-exact master read
// first, then a case-insensitive name match against the master's subject
// catalog for the same class. The teacher document is written under the
// caller's original subject identifier regardless of which key the
// lookup succeeded with, and is left untouched when every strategy
// fails.
func (y *Synchronizer) Pull(ctx context.Context, kind DocKind, scope Scope) (store.Document, error) {
	if scope.TeacherID == "" {
		return nil, fmt.Errorf("pull requires a teacher scope")
	}

	doc, err := y.resolveMaster(ctx, kind, scope)
	if err != nil {
		return nil, err
	}

	target, err := kindPath(kind, scope)
	if err != nil {
		return nil, err
	}
	if err := y.store.Write(ctx, target, doc); err != nil {
		return nil, fmt.Errorf("write teacher copy: %w", err)
	}

	slog.Info("pulled master document",
		"kind", string(kind),
		"teacher_id", scope.TeacherID,
		"path", target.String(),
	)
	return doc, nil
}

// resolveMaster tries each resolution strategy in order and returns the
// first master document found.
func (y *Synchronizer) resolveMaster(ctx context.Context, kind DocKind, scope Scope) (store.Document, error) {
	master := scope.Master()

	exact, err := kindPath(kind, master)
	if err != nil {
		return nil, err
	}
	doc, err := y.store.Read(ctx, exact)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("read master document: %w", err)
	}

	if subjectKeyed(kind) {
		doc, err := y.resolveByName(ctx, kind, scope)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %s %s/%s/%s", ErrMasterNotPopulated,
		kind, NormalizeYear(scope.Year), NormalizeClass(scope.Class), scope.Subject)
}

// resolveByName retries the master read keyed by a catalog entry whose
// name matches the teacher's locally stored name for the requested
// subject, compared case-folded and trimmed.
func (y *Synchronizer) resolveByName(ctx context.Context, kind DocKind, scope Scope) (store.Document, error) {
	localName, err := y.subjectName(ctx, SubjectCatalogPath(scope), scope.Subject)
	if err != nil {
		return nil, err
	}

	catalog, err := y.readCatalog(ctx, SubjectCatalogPath(scope.Master()))
	if err != nil {
		return nil, err
	}

	want := y.foldName(localName)
	for _, subject := range catalog.Subjects {
		if y.foldName(subject.Name) != want {
			continue
		}
		retry := scope.Master()
		retry.Subject = subject.ID
		path, err := kindPath(kind, retry)
		if err != nil {
			return nil, err
		}
		doc, err := y.store.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		slog.Info("master document resolved by subject name",
			"kind", string(kind),
			"subject_id", scope.Subject,
			"master_subject_id", subject.ID,
		)
		return doc, nil
	}
	return nil, store.ErrNotFound
}

// subjectName looks up the stored display name of a subject identifier
// in the catalog at the given path.
func (y *Synchronizer) subjectName(ctx context.Context, path store.Path, subjectID string) (string, error) {
	catalog, err := y.readCatalog(ctx, path)
	if err != nil {
		return "", err
	}
	for _, subject := range catalog.Subjects {
		if subject.ID == subjectID {
			return subject.Name, nil
		}
	}
	return "", store.ErrNotFound
}

func (y *Synchronizer) readCatalog(ctx context.Context, path store.Path) (SubjectCatalog, error) {
	doc, err := y.store.Read(ctx, path)
	if err != nil {
		return SubjectCatalog{}, err
	}
	var catalog SubjectCatalog
	if err := decodeDocument(doc, &catalog); err != nil {
		return SubjectCatalog{}, err
	}
	return catalog, nil
}

// foldName normalizes a subject name for comparison. Casers are
// stateful, so one is built per call.
func (y *Synchronizer) foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
