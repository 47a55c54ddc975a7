package club

import "context"

type Repository interface {
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Club, bool, error)
	List(ctx context.Context) ([]Club, error)
	Upsert(ctx context.Context, c Club) (int64, bool, error)
}
