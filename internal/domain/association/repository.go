package association

import "context"

type Repository interface {
	FindIDByCode(ctx context.Context, code string) (int64, bool, error)
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Association, bool, error)
	// Upsert inserts or updates by Code and reports whether a row was created.
	Upsert(ctx context.Context, a Association) (int64, bool, error)
	// ReplaceParents makes parentIDs the complete parent set of the association.
	ReplaceParents(ctx context.Context, id int64, parentIDs []int64) error
	ListParents(ctx context.Context, id int64) ([]int64, error)
}
