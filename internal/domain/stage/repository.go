package stage

import "context"

type Repository interface {
	FindStageID(ctx context.Context, seasonID int64, name string) (int64, bool, error)
	UpsertStage(ctx context.Context, s Stage) (int64, bool, error)

	FindRoundID(ctx context.Context, stageID int64, name string) (int64, bool, error)
	GetRound(ctx context.Context, id int64) (Round, bool, error)
	UpsertRound(ctx context.Context, r Round) (int64, bool, error)

	// FindGroupIDs matches the token against group name (case-insensitive) or code.
	FindGroupIDs(ctx context.Context, stageID int64, token string) ([]int64, error)
	// UpsertGroup matches on (stage, name); a nil code leaves the stored code alone.
	UpsertGroup(ctx context.Context, g Group) (int64, bool, error)

	AddGroupTeam(ctx context.Context, gt GroupTeam) (bool, error)
	// GroupIDsForTeam lists the groups of the stage that the team belongs to.
	GroupIDsForTeam(ctx context.Context, stageID, teamID int64) ([]int64, error)
}
