package season

import "context"

type Repository interface {
	FindID(ctx context.Context, competitionID int64, name string) (int64, bool, error)
	FindIDsByName(ctx context.Context, name string) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Season, bool, error)
	// Upsert matches on (competition, name); dates are only overwritten when non-nil.
	Upsert(ctx context.Context, s Season) (int64, bool, error)
	// SetPointsRule stores a rule for the season, or removes the stored rule when rule is nil.
	SetPointsRule(ctx context.Context, seasonID int64, rule *PointsRule) error
	GetPointsRule(ctx context.Context, seasonID int64) (*PointsRule, error)
}
