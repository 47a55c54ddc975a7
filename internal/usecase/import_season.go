package usecase

import (
	"context"

	"github.com/mouxlas21/football-db/internal/domain/season"
	"github.com/mouxlas21/football-db/internal/domain/stage"
	"github.com/mouxlas21/football-db/internal/platform/coerce"
	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

type seasonRecord struct {
	Season season.Season
	Rule   season.PointsRule
}

// SeasonImporter loads seasons of a competition and their league points rule.
type SeasonImporter struct{}

func (SeasonImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (seasonRecord, bool, error) {
	name := coerce.String(row.Value("name", "season_name", "season"))
	if name == nil {
		return seasonRecord{}, false, nil
	}
	competitionID, err := newResolvers(repos).Competition(ctx, row.Value(competitionColumns...))
	if err != nil || competitionID == nil {
		return seasonRecord{}, false, err
	}

	return seasonRecord{
		Season: season.Season{
			CompetitionID: *competitionID,
			Name:          *name,
			StartDate:     coerce.ToDate(row.Value("start_date", "start")),
			EndDate:       coerce.ToDate(row.Value("end_date", "end")),
		},
		Rule: parsePointsRule(row),
	}, true, nil
}

// parsePointsRule reads a "W-D-L" cell, else the separate win/draw/loss cells, filling gaps
// from the 3-1-0 default.
func parsePointsRule(row csvfile.Row) season.PointsRule {
	if rule, ok := season.ParsePointsRule(row.Value("points_rule", "points")); ok {
		return rule
	}
	rule := season.DefaultPointsRule
	if v := coerce.ToInt(row.Value("points_win", "win_points")); v != nil {
		rule.Win = *v
	}
	if v := coerce.ToInt(row.Value("points_draw", "draw_points")); v != nil {
		rule.Draw = *v
	}
	if v := coerce.ToInt(row.Value("points_loss", "loss_points")); v != nil {
		rule.Loss = *v
	}
	return rule
}

func (SeasonImporter) Upsert(ctx context.Context, repos ImportRepositories, rec seasonRecord) (bool, error) {
	id, inserted, err := repos.Seasons.Upsert(ctx, rec.Season)
	if err != nil {
		return false, err
	}
	var rule *season.PointsRule
	if !rec.Rule.IsDefault() {
		rule = &rec.Rule
	}
	if err := repos.Seasons.SetPointsRule(ctx, id, rule); err != nil {
		return false, err
	}
	return inserted, nil
}

// StageImporter loads the phases of a season.
type StageImporter struct{}

func (StageImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (stage.Stage, bool, error) {
	name := coerce.String(row.Value("name", "stage_name", "stage"))
	if name == nil {
		return stage.Stage{}, false, nil
	}
	seasonID, err := newResolvers(repos).seasonFromRow(ctx, row)
	if err != nil || seasonID == nil {
		return stage.Stage{}, false, err
	}

	s := stage.Stage{
		SeasonID: *seasonID,
		Name:     *name,
		Order:    stage.DefaultOrder,
		Format:   stage.ParseFormat(row.Value("format", "stage_format")),
	}
	if order := coerce.ToInt(row.Value("stage_order", "order")); order != nil {
		s.Order = *order
	}
	return s, true, nil
}

func (StageImporter) Upsert(ctx context.Context, repos ImportRepositories, s stage.Stage) (bool, error) {
	_, inserted, err := repos.Stages.UpsertStage(ctx, s)
	return inserted, err
}

// StageRoundImporter loads the rounds (matchdays, legs, ties) of a stage.
type StageRoundImporter struct{}

func (StageRoundImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (stage.Round, bool, error) {
	name := coerce.String(row.Value("name", "round_name", "stage_round_name"))
	if name == nil {
		return stage.Round{}, false, nil
	}
	stageID, err := newResolvers(repos).stageFromRow(ctx, row)
	if err != nil || stageID == nil {
		return stage.Round{}, false, err
	}

	r := stage.Round{
		StageID: *stageID,
		Name:    *name,
		Order:   stage.DefaultOrder,
		TwoLegs: coerce.ToBool(row.Value("two_legs", "two_legged"), false),
	}
	if order := coerce.ToInt(row.Value("stage_round_order", "round_order", "order")); order != nil {
		r.Order = *order
	}
	return r, true, nil
}

func (StageRoundImporter) Upsert(ctx context.Context, repos ImportRepositories, r stage.Round) (bool, error) {
	_, inserted, err := repos.Stages.UpsertRound(ctx, r)
	return inserted, err
}

// StageGroupImporter loads the groups of a group stage.
type StageGroupImporter struct{}

func (StageGroupImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (stage.Group, bool, error) {
	name := coerce.String(row.Value("name", "group_name", "group"))
	if name == nil {
		return stage.Group{}, false, nil
	}
	stageID, err := newResolvers(repos).stageFromRow(ctx, row)
	if err != nil || stageID == nil {
		return stage.Group{}, false, err
	}
	return stage.Group{
		StageID: *stageID,
		Name:    *name,
		Code:    coerce.Upper(row.Value("code", "group_code")),
	}, true, nil
}

func (StageGroupImporter) Upsert(ctx context.Context, repos ImportRepositories, g stage.Group) (bool, error) {
	_, inserted, err := repos.Stages.UpsertGroup(ctx, g)
	return inserted, err
}

// StageGroupTeamImporter loads group memberships. Existing memberships are left as they are.
type StageGroupTeamImporter struct{}

func (StageGroupTeamImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (stage.GroupTeam, bool, error) {
	r := newResolvers(repos)

	groupToken := row.Value("group_id", "stage_group_id", "group", "group_name", "group_code")
	groupID := coerce.ToInt64(groupToken)
	if groupID == nil && groupToken != "" {
		stageID, err := r.stageFromRow(ctx, row)
		if err != nil {
			return stage.GroupTeam{}, false, err
		}
		if groupID, err = r.Group(ctx, groupToken, stageID); err != nil {
			return stage.GroupTeam{}, false, err
		}
	}
	if groupID == nil {
		return stage.GroupTeam{}, false, nil
	}

	bucket, err := r.teamBucketFromRow(ctx, row, "")
	if err != nil {
		return stage.GroupTeam{}, false, err
	}
	teamID, err := r.Team(ctx, row.Value("team_id", "team", "team_name"), bucket)
	if err != nil || teamID == nil {
		return stage.GroupTeam{}, false, err
	}
	return stage.GroupTeam{GroupID: *groupID, TeamID: *teamID}, true, nil
}

func (StageGroupTeamImporter) Upsert(ctx context.Context, repos ImportRepositories, gt stage.GroupTeam) (bool, error) {
	return repos.Stages.AddGroupTeam(ctx, gt)
}
