package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/internal/domain/fixture"
	qb "github.com/mouxlas21/football-db/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db sqlx.ExtContext
}

func NewFixtureRepository(db sqlx.ExtContext) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) FindIDByKey(ctx context.Context, key fixture.Key) (int64, bool, error) {
	return selectID(ctx, r.db,
		qb.Select("fixture_id").From("fixture").
			Where(
				qb.Eq("stage_round_id", key.StageRoundID),
				qb.Eq("home_team_id", key.HomeTeamID),
				qb.Eq("away_team_id", key.AwayTeamID),
				qb.Eq("kickoff_utc", key.KickoffUTC.UTC()),
			),
		"fixture by key",
	)
}

func (r *FixtureRepository) GetByID(ctx context.Context, id int64) (fixture.Fixture, bool, error) {
	var row fixtureTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(fixtureColumns...).From("fixture").Where(qb.Eq("fixture_id", id)), "fixture")
	if err != nil || !ok {
		return fixture.Fixture{}, false, err
	}
	return fixture.Fixture{
		ID:              row.ID,
		StageRoundID:    row.StageRoundID,
		GroupID:         nullInt64Ptr(row.GroupID),
		HomeTeamID:      row.HomeTeamID,
		AwayTeamID:      row.AwayTeamID,
		KickoffUTC:      row.KickoffUTC.UTC(),
		StadiumID:       nullInt64Ptr(row.StadiumID),
		Attendance:      nullIntPtr(row.Attendance),
		Status:          row.Status,
		HTHomeScore:     nullIntPtr(row.HTHomeScore),
		HTAwayScore:     nullIntPtr(row.HTAwayScore),
		FTHomeScore:     nullIntPtr(row.FTHomeScore),
		FTAwayScore:     nullIntPtr(row.FTAwayScore),
		ETHomeScore:     nullIntPtr(row.ETHomeScore),
		ETAwayScore:     nullIntPtr(row.ETAwayScore),
		PenHomeScore:    nullIntPtr(row.PenHomeScore),
		PenAwayScore:    nullIntPtr(row.PenAwayScore),
		WentToExtraTime: row.WentToExtraTime,
		WentToPenalties: row.WentToPenalties,
		HomeScore:       row.HomeScore,
		AwayScore:       row.AwayScore,
		WinnerTeamID:    nullInt64Ptr(row.WinnerTeamID),
	}, true, nil
}

func (r *FixtureRepository) Create(ctx context.Context, f fixture.Fixture) (int64, error) {
	b, err := qb.InsertModel("fixture", fixtureInsertModel{
		StageRoundID:    f.StageRoundID,
		GroupID:         f.GroupID,
		HomeTeamID:      f.HomeTeamID,
		AwayTeamID:      f.AwayTeamID,
		KickoffUTC:      f.KickoffUTC.UTC(),
		StadiumID:       f.StadiumID,
		Attendance:      f.Attendance,
		Status:          fixture.NormalizeStatus(f.Status),
		HTHomeScore:     f.HTHomeScore,
		HTAwayScore:     f.HTAwayScore,
		FTHomeScore:     f.FTHomeScore,
		FTAwayScore:     f.FTAwayScore,
		ETHomeScore:     f.ETHomeScore,
		ETAwayScore:     f.ETAwayScore,
		PenHomeScore:    f.PenHomeScore,
		PenAwayScore:    f.PenAwayScore,
		WentToExtraTime: f.WentToExtraTime,
		WentToPenalties: f.WentToPenalties,
		HomeScore:       f.HomeScore,
		AwayScore:       f.AwayScore,
		WinnerTeamID:    f.WinnerTeamID,
	})
	if err != nil {
		return 0, fmt.Errorf("build fixture insert: %w", err)
	}
	return insertReturningID(ctx, r.db, b.Returning("fixture_id"), "fixture")
}

func (r *FixtureRepository) PatchResult(ctx context.Context, f fixture.Fixture) error {
	b := qb.Update("fixture").
		Set("fixture_status", fixture.NormalizeStatus(f.Status)).
		Set("ht_home_score", f.HTHomeScore).
		Set("ht_away_score", f.HTAwayScore).
		Set("ft_home_score", f.FTHomeScore).
		Set("ft_away_score", f.FTAwayScore).
		Set("et_home_score", f.ETHomeScore).
		Set("et_away_score", f.ETAwayScore).
		Set("pen_home_score", f.PenHomeScore).
		Set("pen_away_score", f.PenAwayScore).
		Set("went_to_extra_time", f.WentToExtraTime).
		Set("went_to_penalties", f.WentToPenalties).
		Set("home_score", f.HomeScore).
		Set("away_score", f.AwayScore).
		SetPresent("stadium_id", f.StadiumID).
		SetPresent("group_id", f.GroupID).
		SetPresent("attendance", f.Attendance).
		SetPresent("winner_team_id", f.WinnerTeamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("fixture_id", f.ID))

	n, err := exec(ctx, r.db, b, "update fixture result")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: fixture %d", ErrRowNotFound, f.ID)
	}
	return nil
}
