package repository

import (
	"context"

	"clarity/internal/model"
	"clarity/internal/store"
)

// ResultRepository appends scored reflection/baseline records. Records are
// never mutated or removed.
type ResultRepository interface {
	Append(ctx context.Context, record model.Result) error
	AppendClarity(ctx context.Context, record model.Result) error
	ListByUser(ctx context.Context, userID string) []model.Result
}

type resultRepository struct {
	store       *store.Store
	resultsPath string
	clarityPath string
}

// NewResultRepository builds a repository over results.json and
// clarity_results.json.
func NewResultRepository(s *store.Store, resultsPath, clarityPath string) ResultRepository {
	return &resultRepository{store: s, resultsPath: resultsPath, clarityPath: clarityPath}
}

func (r *resultRepository) Append(ctx context.Context, record model.Result) error {
	return appendResult(r.store, r.resultsPath, record)
}

func (r *resultRepository) AppendClarity(ctx context.Context, record model.Result) error {
	return appendResult(r.store, r.clarityPath, record)
}

func appendResult(s *store.Store, path string, record model.Result) error {
	_, err := store.Update(s, path, []model.Result{}, func(existing []model.Result) ([]model.Result, error) {
		return append(existing, record), nil
	})
	return err
}

// ListByUser returns the user's records, normalized: a missing context
// defaults to "reflection" and a missing task_meta to an empty object.
func (r *resultRepository) ListByUser(ctx context.Context, userID string) []model.Result {
	raw := store.Read(r.store, r.resultsPath, []model.Result{})
	results := make([]model.Result, 0, len(raw))
	for _, entry := range raw {
		if entry.UserID != userID {
			continue
		}
		if entry.Context == "" {
			entry.Context = "reflection"
		}
		if entry.TaskMeta == nil {
			entry.TaskMeta = map[string]any{}
		}
		results = append(results, entry)
	}
	return results
}
