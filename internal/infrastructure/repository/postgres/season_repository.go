package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/internal/domain/season"
	"github.com/mouxlas21/football-db/internal/domain/stage"
	qb "github.com/mouxlas21/football-db/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db sqlx.ExtContext
}

func NewSeasonRepository(db sqlx.ExtContext) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) FindID(ctx context.Context, competitionID int64, name string) (int64, bool, error) {
	return selectID(ctx, r.db,
		qb.Select("season_id").From("season").Where(qb.Eq("competition_id", competitionID), qb.EqFold("name", name)),
		"season by competition and name",
	)
}

func (r *SeasonRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	return selectIDs(ctx, r.db, qb.Select("season_id").From("season").Where(qb.EqFold("name", name)).OrderBy("season_id"), "seasons by name")
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (season.Season, bool, error) {
	var row seasonTableModel
	ok, err := getRow(ctx, r.db, &row,
		qb.Select("season_id", "competition_id", "name", "start_date", "end_date").From("season").Where(qb.Eq("season_id", id)),
		"season",
	)
	if err != nil || !ok {
		return season.Season{}, false, err
	}
	return season.Season{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		Name:          row.Name,
		StartDate:     nullTimePtr(row.StartDate),
		EndDate:       nullTimePtr(row.EndDate),
	}, true, nil
}

func (r *SeasonRepository) Upsert(ctx context.Context, s season.Season) (int64, bool, error) {
	id, ok, err := r.FindID(ctx, s.CompetitionID, s.Name)
	if err != nil {
		return 0, false, err
	}
	if ok {
		b := qb.Update("season").SetPresent("start_date", s.StartDate).SetPresent("end_date", s.EndDate)
		if b.Empty() {
			return id, false, nil
		}
		_, err := exec(ctx, r.db, b.SetExpr("updated_at", "NOW()").Where(qb.Eq("season_id", id)), "update season")
		return id, false, err
	}

	id, err = insertReturningID(ctx, r.db, qb.InsertInto("season").
		Set("competition_id", s.CompetitionID).
		Set("name", s.Name).
		Set("start_date", s.StartDate).
		Set("end_date", s.EndDate).
		Returning("season_id"), "season")
	return id, err == nil, err
}

func (r *SeasonRepository) SetPointsRule(ctx context.Context, seasonID int64, rule *season.PointsRule) error {
	if rule == nil {
		_, err := exec(ctx, r.db, qb.DeleteFrom("season_points_rule").Where(qb.Eq("season_id", seasonID)), "delete season points rule")
		return err
	}

	n, err := exec(ctx, r.db, qb.Update("season_points_rule").
		Set("points_win", rule.Win).
		Set("points_draw", rule.Draw).
		Set("points_loss", rule.Loss).
		Where(qb.Eq("season_id", seasonID)), "update season points rule")
	if err != nil || n > 0 {
		return err
	}
	_, err = exec(ctx, r.db, qb.InsertInto("season_points_rule").
		Set("season_id", seasonID).
		Set("points_win", rule.Win).
		Set("points_draw", rule.Draw).
		Set("points_loss", rule.Loss), "insert season points rule")
	return err
}

func (r *SeasonRepository) GetPointsRule(ctx context.Context, seasonID int64) (*season.PointsRule, error) {
	var row pointsRuleTableModel
	ok, err := getRow(ctx, r.db, &row,
		qb.Select("points_win", "points_draw", "points_loss").From("season_points_rule").Where(qb.Eq("season_id", seasonID)),
		"season points rule",
	)
	if err != nil || !ok {
		return nil, err
	}
	return &season.PointsRule{Win: row.Win, Draw: row.Draw, Loss: row.Loss}, nil
}

type StageRepository struct {
	db sqlx.ExtContext
}

func NewStageRepository(db sqlx.ExtContext) *StageRepository {
	return &StageRepository{db: db}
}

func (r *StageRepository) FindStageID(ctx context.Context, seasonID int64, name string) (int64, bool, error) {
	return selectID(ctx, r.db,
		qb.Select("stage_id").From("stage").Where(qb.Eq("season_id", seasonID), qb.EqFold("name", name)),
		"stage by season and name",
	)
}

func (r *StageRepository) UpsertStage(ctx context.Context, s stage.Stage) (int64, bool, error) {
	id, ok, err := r.FindStageID(ctx, s.SeasonID, s.Name)
	if err != nil {
		return 0, false, err
	}
	if ok {
		_, err := exec(ctx, r.db, qb.Update("stage").
			Set("stage_order", s.Order).
			Set("format", string(s.Format)).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("stage_id", id)), "update stage")
		return id, false, err
	}

	id, err = insertReturningID(ctx, r.db, qb.InsertInto("stage").
		Set("season_id", s.SeasonID).
		Set("name", s.Name).
		Set("stage_order", s.Order).
		Set("format", string(s.Format)).
		Returning("stage_id"), "stage")
	return id, err == nil, err
}

func (r *StageRepository) FindRoundID(ctx context.Context, stageID int64, name string) (int64, bool, error) {
	return selectID(ctx, r.db,
		qb.Select("stage_round_id").From("stage_round").Where(qb.Eq("stage_id", stageID), qb.EqFold("name", name)),
		"stage round by stage and name",
	)
}

func (r *StageRepository) GetRound(ctx context.Context, id int64) (stage.Round, bool, error) {
	var row roundTableModel
	ok, err := getRow(ctx, r.db, &row,
		qb.Select("stage_round_id", "stage_id", "name", "stage_round_order", "two_legs").From("stage_round").Where(qb.Eq("stage_round_id", id)),
		"stage round",
	)
	if err != nil || !ok {
		return stage.Round{}, false, err
	}
	return stage.Round{ID: row.ID, StageID: row.StageID, Name: row.Name, Order: row.Order, TwoLegs: row.TwoLegs}, true, nil
}

func (r *StageRepository) UpsertRound(ctx context.Context, round stage.Round) (int64, bool, error) {
	id, ok, err := r.FindRoundID(ctx, round.StageID, round.Name)
	if err != nil {
		return 0, false, err
	}
	if ok {
		_, err := exec(ctx, r.db, qb.Update("stage_round").
			Set("stage_round_order", round.Order).
			Set("two_legs", round.TwoLegs).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("stage_round_id", id)), "update stage round")
		return id, false, err
	}

	id, err = insertReturningID(ctx, r.db, qb.InsertInto("stage_round").
		Set("stage_id", round.StageID).
		Set("name", round.Name).
		Set("stage_round_order", round.Order).
		Set("two_legs", round.TwoLegs).
		Returning("stage_round_id"), "stage round")
	return id, err == nil, err
}

func (r *StageRepository) FindGroupIDs(ctx context.Context, stageID int64, token string) ([]int64, error) {
	token = strings.TrimSpace(token)
	return selectIDs(ctx, r.db,
		qb.Select("group_id").From("stage_group").
			Where(
				qb.Eq("stage_id", stageID),
				qb.Expr("(LOWER(name) = LOWER(?) OR UPPER(code) = UPPER(?))", token, token),
			).
			OrderBy("group_id"),
		"stage groups",
	)
}

func (r *StageRepository) UpsertGroup(ctx context.Context, g stage.Group) (int64, bool, error) {
	id, ok, err := selectID(ctx, r.db,
		qb.Select("group_id").From("stage_group").Where(qb.Eq("stage_id", g.StageID), qb.EqFold("name", g.Name)),
		"stage group by stage and name",
	)
	if err != nil {
		return 0, false, err
	}
	if ok {
		b := qb.Update("stage_group").SetPresent("code", g.Code)
		if b.Empty() {
			return id, false, nil
		}
		_, err := exec(ctx, r.db, b.SetExpr("updated_at", "NOW()").Where(qb.Eq("group_id", id)), "update stage group")
		return id, false, err
	}

	id, err = insertReturningID(ctx, r.db, qb.InsertInto("stage_group").
		Set("stage_id", g.StageID).
		Set("name", g.Name).
		Set("code", g.Code).
		Returning("group_id"), "stage group")
	return id, err == nil, err
}

func (r *StageRepository) AddGroupTeam(ctx context.Context, gt stage.GroupTeam) (bool, error) {
	n, err := exec(ctx, r.db, qb.InsertInto("stage_group_team").
		Set("group_id", gt.GroupID).
		Set("team_id", gt.TeamID).
		OnConflictDoNothing("group_id", "team_id"), "insert stage group team")
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *StageRepository) GroupIDsForTeam(ctx context.Context, stageID, teamID int64) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("g.group_id").
			From("stage_group g JOIN stage_group_team gt ON gt.group_id = g.group_id").
			Where(qb.Eq("g.stage_id", stageID), qb.Eq("gt.team_id", teamID)).
			OrderBy("g.group_id"),
		"groups for team",
	)
}
