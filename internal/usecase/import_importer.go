package usecase

import (
	"context"

	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

// RowImporter is the typed contract of one entity importer. ParseRow reports false to skip a
// row (missing required field, invalid enum, unresolved required reference) and only
// returns an error when the store itself fails. Upsert reports whether a new row was created.
type RowImporter[T any] interface {
	ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (T, bool, error)
	Upsert(ctx context.Context, repos ImportRepositories, record T) (bool, error)
}

// RowWriter writes one parsed row and reports whether it created a new entity.
type RowWriter func(ctx context.Context, repos ImportRepositories) (bool, error)

// Importer is the type-erased form the batch runner drives.
type Importer interface {
	Kind() EntityKind
	// Prepare parses the row. A nil writer means the row was rejected.
	Prepare(ctx context.Context, repos ImportRepositories, row csvfile.Row) (RowWriter, error)
}

type rowImporter[T any] struct {
	kind EntityKind
	impl RowImporter[T]
}

// NewImporter binds a typed importer to its entity kind.
func NewImporter[T any](kind EntityKind, impl RowImporter[T]) Importer {
	return rowImporter[T]{kind: kind, impl: impl}
}

func (a rowImporter[T]) Kind() EntityKind {
	return a.kind
}

func (a rowImporter[T]) Prepare(ctx context.Context, repos ImportRepositories, row csvfile.Row) (RowWriter, error) {
	record, ok, err := a.impl.ParseRow(ctx, repos, row)
	if err != nil || !ok {
		return nil, err
	}
	return func(ctx context.Context, repos ImportRepositories) (bool, error) {
		return a.impl.Upsert(ctx, repos, record)
	}, nil
}
