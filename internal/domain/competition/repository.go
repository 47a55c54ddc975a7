package competition

import "context"

type Repository interface {
	FindIDBySlug(ctx context.Context, slug string) (int64, bool, error)
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	Upsert(ctx context.Context, c Competition) (int64, bool, error)
}
