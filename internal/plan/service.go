package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/sekolahku/perencana/internal/store"
)

// Config holds dependencies for the planner service.
type Config struct {
	Store store.Store
}

// Planner orchestrates the read-merge and extract-save cycles of every
// derived document family over the document store.
type Planner struct {
	store store.Store
	sync  *Synchronizer
}

// New creates a planner service. A nil store defaults to an in-memory
// one.
func New(cfg Config) *Planner {
	st := cfg.Store
	if st == nil {
		st = store.NewMemoryStore()
	}
	return &Planner{
		store: st,
		sync:  NewSynchronizer(st),
	}
}

// Pathways loads the authored pathway rows of a scope. A missing
// document is an empty row list, never an error.
func (p *Planner) Pathways(ctx context.Context, scope Scope) ([]LearningPathwayRow, error) {
	var doc PathwayDocument
	if err := p.readInto(ctx, PathwayPath(scope), &doc); err != nil {
		return nil, err
	}
	return doc.Rows, nil
}

// SavePathways replaces the authored pathway rows of a scope.
func (p *Planner) SavePathways(ctx context.Context, scope Scope, rows []LearningPathwayRow) error {
	return p.writeFrom(ctx, PathwayPath(scope), PathwayDocument{Rows: rows})
}

// Subjects loads the subject catalog of a scope's class.
func (p *Planner) Subjects(ctx context.Context, scope Scope) ([]Subject, error) {
	var catalog SubjectCatalog
	if err := p.readInto(ctx, SubjectCatalogPath(scope), &catalog); err != nil {
		return nil, err
	}
	return catalog.Subjects, nil
}

// SaveSubjects replaces the subject catalog of a scope's class.
func (p *Planner) SaveSubjects(ctx context.Context, scope Scope, subjects []Subject) error {
	return p.writeFrom(ctx, SubjectCatalogPath(scope), SubjectCatalog{Subjects: subjects})
}

// Criteria materializes the achievement-criteria sheet of a scope: the
// skeleton is regenerated from the current pathway text and the stored
// sparse overrides are spliced on.
func (p *Planner) Criteria(ctx context.Context, scope Scope) (CriteriaSheet, error) {
	parents, err := p.Pathways(ctx, scope)
	if err != nil {
		return CriteriaSheet{}, err
	}

	var doc CriteriaDocument
	if err := p.readInto(ctx, CriteriaPath(scope), &doc); err != nil {
		return CriteriaSheet{}, err
	}

	return CriteriaSheet{
		Intervals: doc.Intervals,
		Rows:      MergeCriteria(CriteriaSkeleton(parents), doc),
	}, nil
}

// SaveCriteria extracts the editable fields of the sheet back into the
// sparse override map and persists it in full.
func (p *Planner) SaveCriteria(ctx context.Context, scope Scope, sheet CriteriaSheet) error {
	doc := ExtractCriteria(sheet.Intervals, sheet.Rows)
	if err := validateShape(criteriaDocumentSchema, doc); err != nil {
		return fmt.Errorf("criteria document: %w", err)
	}
	return p.writeFrom(ctx, CriteriaPath(scope), doc)
}

// AnnualPlan materializes the annual allocation rows of a scope. The
// allocation map is scoped to the subject only; the semester on the
// scope selects which parents contribute rows.
func (p *Planner) AnnualPlan(ctx context.Context, scope Scope) ([]AnnualPlanRow, error) {
	parents, err := p.Pathways(ctx, scope)
	if err != nil {
		return nil, err
	}

	var doc AnnualDocument
	if err := p.readInto(ctx, AnnualPath(scope), &doc); err != nil {
		return nil, err
	}

	return MergeAnnual(AnnualSkeleton(parents), doc), nil
}

// SaveAnnualPlan persists the allocation map extracted from the rows.
func (p *Planner) SaveAnnualPlan(ctx context.Context, scope Scope, rows []AnnualPlanRow) error {
	doc := ExtractAnnual(rows)
	if err := validateShape(annualDocumentSchema, doc); err != nil {
		return fmt.Errorf("annual document: %w", err)
	}
	return p.writeFrom(ctx, AnnualPath(scope), doc)
}

// SemesterPlan materializes the semester rows of a scope, including the
// synthetic summative row per material.
func (p *Planner) SemesterPlan(ctx context.Context, scope Scope) ([]SemesterPlanRow, error) {
	parents, err := p.Pathways(ctx, scope)
	if err != nil {
		return nil, err
	}

	var doc SemesterDocument
	if err := p.readInto(ctx, SemesterPlanPath(scope), &doc); err != nil {
		return nil, err
	}

	return MergeSemester(SemesterSkeleton(parents), doc), nil
}

// SaveSemesterPlan persists the override map extracted from the rows.
func (p *Planner) SaveSemesterPlan(ctx context.Context, scope Scope, rows []SemesterPlanRow) error {
	doc := ExtractSemester(rows)
	if err := validateShape(semesterDocumentSchema, doc); err != nil {
		return fmt.Errorf("semester document: %w", err)
	}
	return p.writeFrom(ctx, SemesterPlanPath(scope), doc)
}

// Pull copies the master document of one family into the scope's teacher
// copy. See Synchronizer.Pull for the resolution order and atomicity
// guarantee.
func (p *Planner) Pull(ctx context.Context, kind DocKind, scope Scope) (store.Document, error) {
	return p.sync.Pull(ctx, kind, scope)
}

// readInto reads a document into a typed shape. Not-found substitutes
// the zero shape: derivation treats an absent document as empty, never
// as an error.
func (p *Planner) readInto(ctx context.Context, path store.Path, v any) error {
	doc, err := p.store.Read(ctx, path)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := decodeDocument(doc, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeFrom persists a typed shape at the given path.
func (p *Planner) writeFrom(ctx context.Context, path store.Path, v any) error {
	doc, err := encodeDocument(v)
	if err != nil {
		return err
	}
	if err := p.store.Write(ctx, path, doc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
