package memory

import (
	"context"
	"fmt"

	"github.com/mouxlas21/football-db/internal/domain/season"
	"github.com/mouxlas21/football-db/internal/domain/stage"
)

type SeasonRepository struct {
	tx *Tx
}

func (r *SeasonRepository) FindID(_ context.Context, competitionID int64, name string) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().seasons, func(s season.Season) bool {
		return s.CompetitionID == competitionID && sameName(s.Name, name)
	})
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *SeasonRepository) FindIDsByName(_ context.Context, name string) ([]int64, error) {
	return matchIDs(r.tx.tables().seasons, func(s season.Season) bool { return sameName(s.Name, name) }), nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id int64) (season.Season, bool, error) {
	s, ok := r.tx.tables().seasons[id]
	return s, ok, nil
}

func (r *SeasonRepository) Upsert(ctx context.Context, s season.Season) (int64, bool, error) {
	t := r.tx.tables()
	if _, ok := t.competitions[s.CompetitionID]; !ok {
		return 0, false, fmt.Errorf("%w: competition %d", ErrForeignKeyViolation, s.CompetitionID)
	}
	id, ok, _ := r.FindID(ctx, s.CompetitionID, s.Name)
	if !ok {
		s.ID = t.newID()
		put(r.tx, t.seasons, s.ID, s)
		return s.ID, true, nil
	}
	current := t.seasons[id]
	current.StartDate = patch(current.StartDate, s.StartDate)
	current.EndDate = patch(current.EndDate, s.EndDate)
	put(r.tx, t.seasons, id, current)
	return id, false, nil
}

func (r *SeasonRepository) SetPointsRule(_ context.Context, seasonID int64, rule *season.PointsRule) error {
	t := r.tx.tables()
	if rule == nil {
		remove(r.tx, t.pointsRules, seasonID)
		return nil
	}
	if _, ok := t.seasons[seasonID]; !ok {
		return fmt.Errorf("%w: season %d", ErrForeignKeyViolation, seasonID)
	}
	put(r.tx, t.pointsRules, seasonID, *rule)
	return nil
}

func (r *SeasonRepository) GetPointsRule(_ context.Context, seasonID int64) (*season.PointsRule, error) {
	rule, ok := r.tx.tables().pointsRules[seasonID]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

type StageRepository struct {
	tx *Tx
}

func (r *StageRepository) FindStageID(_ context.Context, seasonID int64, name string) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().stages, func(s stage.Stage) bool {
		return s.SeasonID == seasonID && sameName(s.Name, name)
	})
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *StageRepository) UpsertStage(ctx context.Context, s stage.Stage) (int64, bool, error) {
	t := r.tx.tables()
	if _, ok := t.seasons[s.SeasonID]; !ok {
		return 0, false, fmt.Errorf("%w: season %d", ErrForeignKeyViolation, s.SeasonID)
	}
	id, ok, _ := r.FindStageID(ctx, s.SeasonID, s.Name)
	if !ok {
		id = t.newID()
	}
	s.ID = id
	put(r.tx, t.stages, id, s)
	return id, !ok, nil
}

func (r *StageRepository) FindRoundID(_ context.Context, stageID int64, name string) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().rounds, func(rd stage.Round) bool {
		return rd.StageID == stageID && sameName(rd.Name, name)
	})
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *StageRepository) GetRound(_ context.Context, id int64) (stage.Round, bool, error) {
	rd, ok := r.tx.tables().rounds[id]
	return rd, ok, nil
}

func (r *StageRepository) UpsertRound(ctx context.Context, rd stage.Round) (int64, bool, error) {
	t := r.tx.tables()
	if _, ok := t.stages[rd.StageID]; !ok {
		return 0, false, fmt.Errorf("%w: stage %d", ErrForeignKeyViolation, rd.StageID)
	}
	id, ok, _ := r.FindRoundID(ctx, rd.StageID, rd.Name)
	if !ok {
		id = t.newID()
	}
	rd.ID = id
	put(r.tx, t.rounds, id, rd)
	return id, !ok, nil
}

func (r *StageRepository) FindGroupIDs(_ context.Context, stageID int64, token string) ([]int64, error) {
	return matchIDs(r.tx.tables().groups, func(g stage.Group) bool {
		if g.StageID != stageID {
			return false
		}
		return sameName(g.Name, token) || (g.Code != nil && sameName(*g.Code, token))
	}), nil
}

func (r *StageRepository) UpsertGroup(_ context.Context, g stage.Group) (int64, bool, error) {
	t := r.tx.tables()
	if _, ok := t.stages[g.StageID]; !ok {
		return 0, false, fmt.Errorf("%w: stage %d", ErrForeignKeyViolation, g.StageID)
	}
	ids := matchIDs(t.groups, func(existing stage.Group) bool {
		return existing.StageID == g.StageID && sameName(existing.Name, g.Name)
	})
	inserted := len(ids) == 0
	if inserted {
		g.ID = t.newID()
	} else {
		g.ID = ids[0]
		g.Code = patch(t.groups[g.ID].Code, g.Code)
	}
	if g.Code != nil {
		for otherID, other := range t.groups {
			if otherID != g.ID && other.StageID == g.StageID && other.Code != nil && *other.Code == *g.Code {
				return 0, false, fmt.Errorf("%w: group code %s", ErrUniqueViolation, *g.Code)
			}
		}
	}
	put(r.tx, t.groups, g.ID, g)
	return g.ID, inserted, nil
}

func (r *StageRepository) AddGroupTeam(_ context.Context, gt stage.GroupTeam) (bool, error) {
	t := r.tx.tables()
	if _, ok := t.groups[gt.GroupID]; !ok {
		return false, fmt.Errorf("%w: group %d", ErrForeignKeyViolation, gt.GroupID)
	}
	if _, ok := t.teams[gt.TeamID]; !ok {
		return false, fmt.Errorf("%w: team %d", ErrForeignKeyViolation, gt.TeamID)
	}
	if _, ok := t.groupTeams[gt]; ok {
		return false, nil
	}
	put(r.tx, t.groupTeams, gt, struct{}{})
	return true, nil
}

func (r *StageRepository) GroupIDsForTeam(_ context.Context, stageID, teamID int64) ([]int64, error) {
	t := r.tx.tables()
	return matchIDs(t.groups, func(g stage.Group) bool {
		if g.StageID != stageID {
			return false
		}
		_, ok := t.groupTeams[stage.GroupTeam{GroupID: g.ID, TeamID: teamID}]
		return ok
	}), nil
}
