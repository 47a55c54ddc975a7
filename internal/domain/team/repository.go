package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	FindClubTeamIDs(ctx context.Context, clubID int64) ([]int64, error)
	// FindNationalTeamIDs matches age group and gender exactly, nil matching only NULL.
	FindNationalTeamIDs(ctx context.Context, countryID int64, ageGroup, gender *string) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	ListByClub(ctx context.Context, clubID int64) ([]Team, error)
	// Upsert matches on (case-insensitive name, type).
	Upsert(ctx context.Context, t Team) (int64, bool, error)
	Rename(ctx context.Context, id int64, name string) error
}
