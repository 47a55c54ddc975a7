package memory

import (
	"context"
	"fmt"

	"github.com/mouxlas21/football-db/internal/domain/team"
)

type TeamRepository struct {
	tx *Tx
}

func (r *TeamRepository) FindIDsByName(_ context.Context, name string) ([]int64, error) {
	return matchIDs(r.tx.tables().teams, func(t team.Team) bool { return sameName(t.Name, name) }), nil
}

func (r *TeamRepository) FindClubTeamIDs(_ context.Context, clubID int64) ([]int64, error) {
	return matchIDs(r.tx.tables().teams, func(t team.Team) bool {
		return t.Type == team.TypeClub && t.ClubID != nil && *t.ClubID == clubID
	}), nil
}

func (r *TeamRepository) FindNationalTeamIDs(_ context.Context, countryID int64, ageGroup, gender *string) ([]int64, error) {
	return matchIDs(r.tx.tables().teams, func(t team.Team) bool {
		return t.Type == team.TypeNational &&
			t.NationalCountryID != nil && *t.NationalCountryID == countryID &&
			equalPtr(t.AgeGroup, ageGroup) &&
			equalPtr(t.Gender, gender)
	}), nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	t, ok := r.tx.tables().teams[id]
	return t, ok, nil
}

func (r *TeamRepository) ListByClub(ctx context.Context, clubID int64) ([]team.Team, error) {
	ids, _ := r.FindClubTeamIDs(ctx, clubID)
	out := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.tx.tables().teams[id])
	}
	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) (int64, bool, error) {
	t := r.tx.tables()
	if err := item.Validate(); err != nil {
		return 0, false, err
	}
	if !exists(t.clubs, item.ClubID) {
		return 0, false, fmt.Errorf("%w: club %d", ErrForeignKeyViolation, *item.ClubID)
	}
	if !exists(t.countries, item.NationalCountryID) {
		return 0, false, fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *item.NationalCountryID)
	}

	ids := matchIDs(t.teams, func(existing team.Team) bool {
		return existing.Type == item.Type && sameName(existing.Name, item.Name)
	})
	inserted := len(ids) == 0
	if inserted {
		item.ID = t.newID()
	} else {
		// The stored name and type are the match key and stay as first written.
		item.ID = ids[0]
		item.Name = t.teams[item.ID].Name
	}
	put(r.tx, t.teams, item.ID, item)
	return item.ID, inserted, nil
}

func (r *TeamRepository) Rename(_ context.Context, id int64, name string) error {
	t := r.tx.tables()
	item, ok := t.teams[id]
	if !ok {
		return fmt.Errorf("%w: team %d", ErrRowNotFound, id)
	}
	for otherID, other := range t.teams {
		if otherID != id && other.Type == item.Type && sameName(other.Name, name) {
			return fmt.Errorf("%w: team name %q", ErrUniqueViolation, name)
		}
	}
	item.Name = name
	put(r.tx, t.teams, id, item)
	return nil
}
