package memory

import (
	"context"
	"fmt"

	"github.com/mouxlas21/football-db/internal/domain/fixture"
)

type FixtureRepository struct {
	tx *Tx
}

func (r *FixtureRepository) FindIDByKey(_ context.Context, key fixture.Key) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().fixtures, func(f fixture.Fixture) bool { return f.Key() == key })
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, id int64) (fixture.Fixture, bool, error) {
	f, ok := r.tx.tables().fixtures[id]
	return f, ok, nil
}

func (r *FixtureRepository) Create(ctx context.Context, f fixture.Fixture) (int64, error) {
	if err := r.checkReferences(f); err != nil {
		return 0, err
	}
	if _, ok, _ := r.FindIDByKey(ctx, f.Key()); ok {
		return 0, fmt.Errorf("%w: fixture already exists", ErrUniqueViolation)
	}
	t := r.tx.tables()
	f.KickoffUTC = f.KickoffUTC.UTC()
	f.ID = t.newID()
	put(r.tx, t.fixtures, f.ID, f)
	return f.ID, nil
}

func (r *FixtureRepository) PatchResult(_ context.Context, f fixture.Fixture) error {
	t := r.tx.tables()
	current, ok := t.fixtures[f.ID]
	if !ok {
		return fmt.Errorf("%w: fixture %d", ErrRowNotFound, f.ID)
	}
	if err := r.checkReferences(f); err != nil {
		return err
	}

	current.Status = f.Status
	current.HTHomeScore, current.HTAwayScore = f.HTHomeScore, f.HTAwayScore
	current.FTHomeScore, current.FTAwayScore = f.FTHomeScore, f.FTAwayScore
	current.ETHomeScore, current.ETAwayScore = f.ETHomeScore, f.ETAwayScore
	current.PenHomeScore, current.PenAwayScore = f.PenHomeScore, f.PenAwayScore
	current.WentToExtraTime = f.WentToExtraTime
	current.WentToPenalties = f.WentToPenalties
	current.HomeScore, current.AwayScore = f.HomeScore, f.AwayScore
	current.StadiumID = patch(current.StadiumID, f.StadiumID)
	current.GroupID = patch(current.GroupID, f.GroupID)
	current.Attendance = patch(current.Attendance, f.Attendance)
	current.WinnerTeamID = patch(current.WinnerTeamID, f.WinnerTeamID)
	put(r.tx, t.fixtures, f.ID, current)
	return nil
}

func (r *FixtureRepository) checkReferences(f fixture.Fixture) error {
	t := r.tx.tables()
	if _, ok := t.rounds[f.StageRoundID]; !ok {
		return fmt.Errorf("%w: stage round %d", ErrForeignKeyViolation, f.StageRoundID)
	}
	for _, teamID := range []int64{f.HomeTeamID, f.AwayTeamID} {
		if _, ok := t.teams[teamID]; !ok {
			return fmt.Errorf("%w: team %d", ErrForeignKeyViolation, teamID)
		}
	}
	if !exists(t.groups, f.GroupID) {
		return fmt.Errorf("%w: group %d", ErrForeignKeyViolation, *f.GroupID)
	}
	if !exists(t.stadiums, f.StadiumID) {
		return fmt.Errorf("%w: stadium %d", ErrForeignKeyViolation, *f.StadiumID)
	}
	if !exists(t.teams, f.WinnerTeamID) {
		return fmt.Errorf("%w: winner team %d", ErrForeignKeyViolation, *f.WinnerTeamID)
	}
	return nil
}
