package country

import "context"

type Repository interface {
	FindIDByFIFACode(ctx context.Context, code string) (int64, bool, error)
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Country, bool, error)
	List(ctx context.Context) ([]Country, error)
	// Upsert matches on case-insensitive name.
	Upsert(ctx context.Context, c Country) (int64, bool, error)
	ReplaceSubConfederations(ctx context.Context, countryID int64, associationIDs []int64) error
	ListSubConfederations(ctx context.Context, countryID int64) ([]int64, error)
}
