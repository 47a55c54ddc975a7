package stadium

import "context"

type Repository interface {
	FindIDs(ctx context.Context, q Query) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Stadium, bool, error)
	Create(ctx context.Context, s Stadium) (int64, error)
	// Patch writes the non-nil optional fields of s onto the row with s.ID.
	Patch(ctx context.Context, s Stadium) error
}
