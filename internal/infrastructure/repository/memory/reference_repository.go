package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/mouxlas21/football-db/internal/domain/association"
	"github.com/mouxlas21/football-db/internal/domain/club"
	"github.com/mouxlas21/football-db/internal/domain/competition"
	"github.com/mouxlas21/football-db/internal/domain/country"
	"github.com/mouxlas21/football-db/internal/domain/stadium"
)

type AssociationRepository struct {
	tx *Tx
}

func (r *AssociationRepository) FindIDByCode(_ context.Context, code string) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().associations, func(a association.Association) bool { return a.Code == code })
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *AssociationRepository) FindIDsByName(_ context.Context, name string) ([]int64, error) {
	return matchIDs(r.tx.tables().associations, func(a association.Association) bool { return sameName(a.Name, name) }), nil
}

func (r *AssociationRepository) GetByID(_ context.Context, id int64) (association.Association, bool, error) {
	a, ok := r.tx.tables().associations[id]
	return a, ok, nil
}

func (r *AssociationRepository) Upsert(ctx context.Context, a association.Association) (int64, bool, error) {
	t := r.tx.tables()
	id, ok, _ := r.FindIDByCode(ctx, a.Code)
	inserted := !ok
	if inserted {
		id = t.newID()
	}
	a.ID = id
	put(r.tx, t.associations, id, a)
	return id, inserted, nil
}

func (r *AssociationRepository) ReplaceParents(_ context.Context, id int64, parentIDs []int64) error {
	t := r.tx.tables()
	if _, ok := t.associations[id]; !ok {
		return fmt.Errorf("%w: association %d", ErrRowNotFound, id)
	}
	for _, parentID := range parentIDs {
		if _, ok := t.associations[parentID]; !ok {
			return fmt.Errorf("%w: parent association %d", ErrForeignKeyViolation, parentID)
		}
	}
	parents := slices.Clone(parentIDs)
	slices.Sort(parents)
	put(r.tx, t.associationParents, id, slices.Compact(parents))
	return nil
}

func (r *AssociationRepository) ListParents(_ context.Context, id int64) ([]int64, error) {
	return slices.Clone(r.tx.tables().associationParents[id]), nil
}

type CountryRepository struct {
	tx *Tx
}

func (r *CountryRepository) FindIDByFIFACode(_ context.Context, code string) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().countries, func(c country.Country) bool { return c.FIFACode != nil && *c.FIFACode == code })
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *CountryRepository) FindIDsByName(_ context.Context, name string) ([]int64, error) {
	return matchIDs(r.tx.tables().countries, func(c country.Country) bool { return sameName(c.Name, name) }), nil
}

func (r *CountryRepository) GetByID(_ context.Context, id int64) (country.Country, bool, error) {
	c, ok := r.tx.tables().countries[id]
	return c, ok, nil
}

func (r *CountryRepository) List(_ context.Context) ([]country.Country, error) {
	t := r.tx.tables()
	ids := matchIDs(t.countries, func(country.Country) bool { return true })
	out := make([]country.Country, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.countries[id])
	}
	return out, nil
}

func (r *CountryRepository) Upsert(ctx context.Context, c country.Country) (int64, bool, error) {
	t := r.tx.tables()
	if !exists(t.associations, c.ConfedAssID) {
		return 0, false, fmt.Errorf("%w: confederation %d", ErrForeignKeyViolation, *c.ConfedAssID)
	}
	ids, _ := r.FindIDsByName(ctx, c.Name)
	inserted := len(ids) == 0
	id := int64(0)
	if inserted {
		id = t.newID()
	} else {
		id = ids[0]
	}
	if c.FIFACode != nil {
		if other, ok, _ := r.FindIDByFIFACode(ctx, *c.FIFACode); ok && other != id {
			return 0, false, fmt.Errorf("%w: country fifa_code %s", ErrUniqueViolation, *c.FIFACode)
		}
	}
	c.ID = id
	put(r.tx, t.countries, id, c)
	return id, inserted, nil
}

func (r *CountryRepository) ReplaceSubConfederations(_ context.Context, countryID int64, associationIDs []int64) error {
	t := r.tx.tables()
	for _, id := range associationIDs {
		if _, ok := t.associations[id]; !ok {
			return fmt.Errorf("%w: sub-confederation %d", ErrForeignKeyViolation, id)
		}
	}
	ids := slices.Clone(associationIDs)
	slices.Sort(ids)
	put(r.tx, t.countrySubConfeds, countryID, slices.Compact(ids))
	return nil
}

func (r *CountryRepository) ListSubConfederations(_ context.Context, countryID int64) ([]int64, error) {
	return slices.Clone(r.tx.tables().countrySubConfeds[countryID]), nil
}

type StadiumRepository struct {
	tx *Tx
}

func (r *StadiumRepository) FindIDs(_ context.Context, q stadium.Query) ([]int64, error) {
	return matchIDs(r.tx.tables().stadiums, func(s stadium.Stadium) bool {
		if !sameName(s.Name, q.Name) {
			return false
		}
		if q.City != nil && (s.City == nil || !sameName(*s.City, *q.City)) {
			return false
		}
		return q.CountryID == nil || equalPtr(s.CountryID, q.CountryID)
	}), nil
}

func (r *StadiumRepository) GetByID(_ context.Context, id int64) (stadium.Stadium, bool, error) {
	s, ok := r.tx.tables().stadiums[id]
	return s, ok, nil
}

func (r *StadiumRepository) Create(_ context.Context, s stadium.Stadium) (int64, error) {
	t := r.tx.tables()
	if !exists(t.countries, s.CountryID) {
		return 0, fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *s.CountryID)
	}
	s.ID = t.newID()
	put(r.tx, t.stadiums, s.ID, s)
	return s.ID, nil
}

func (r *StadiumRepository) Patch(_ context.Context, s stadium.Stadium) error {
	t := r.tx.tables()
	current, ok := t.stadiums[s.ID]
	if !ok {
		return fmt.Errorf("%w: stadium %d", ErrRowNotFound, s.ID)
	}
	if !exists(t.countries, s.CountryID) {
		return fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *s.CountryID)
	}
	current.City = patch(current.City, s.City)
	current.CountryID = patch(current.CountryID, s.CountryID)
	current.Capacity = patch(current.Capacity, s.Capacity)
	current.OpenedYear = patch(current.OpenedYear, s.OpenedYear)
	current.ClosedYear = patch(current.ClosedYear, s.ClosedYear)
	current.Lat = patch(current.Lat, s.Lat)
	current.Lng = patch(current.Lng, s.Lng)
	current.PhotoFilename = patch(current.PhotoFilename, s.PhotoFilename)
	if s.RenovatedYears != nil {
		current.RenovatedYears = s.RenovatedYears
	}
	if s.Tenants != nil {
		current.Tenants = s.Tenants
	}
	put(r.tx, t.stadiums, s.ID, current)
	return nil
}

func patch[T any](current, next *T) *T {
	if next != nil {
		return next
	}
	return current
}

type ClubRepository struct {
	tx *Tx
}

func (r *ClubRepository) FindIDsByName(_ context.Context, name string) ([]int64, error) {
	return matchIDs(r.tx.tables().clubs, func(c club.Club) bool { return sameName(c.Name, name) }), nil
}

func (r *ClubRepository) GetByID(_ context.Context, id int64) (club.Club, bool, error) {
	c, ok := r.tx.tables().clubs[id]
	return c, ok, nil
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	t := r.tx.tables()
	ids := matchIDs(t.clubs, func(club.Club) bool { return true })
	out := make([]club.Club, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.clubs[id])
	}
	return out, nil
}

func (r *ClubRepository) Upsert(ctx context.Context, c club.Club) (int64, bool, error) {
	t := r.tx.tables()
	if !exists(t.countries, c.CountryID) {
		return 0, false, fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *c.CountryID)
	}
	if !exists(t.stadiums, c.StadiumID) {
		return 0, false, fmt.Errorf("%w: stadium %d", ErrForeignKeyViolation, *c.StadiumID)
	}
	ids, _ := r.FindIDsByName(ctx, c.Name)
	inserted := len(ids) == 0
	if inserted {
		c.ID = t.newID()
	} else {
		c.ID = ids[0]
	}
	put(r.tx, t.clubs, c.ID, c)
	return c.ID, inserted, nil
}

type CompetitionRepository struct {
	tx *Tx
}

func (r *CompetitionRepository) FindIDBySlug(_ context.Context, slug string) (int64, bool, error) {
	ids := matchIDs(r.tx.tables().competitions, func(c competition.Competition) bool { return c.Slug == slug })
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *CompetitionRepository) FindIDsByName(_ context.Context, name string) ([]int64, error) {
	return matchIDs(r.tx.tables().competitions, func(c competition.Competition) bool { return sameName(c.Name, name) }), nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, c competition.Competition) (int64, bool, error) {
	t := r.tx.tables()
	if !exists(t.countries, c.CountryID) {
		return 0, false, fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *c.CountryID)
	}
	if !exists(t.associations, c.OrganizerAssID) {
		return 0, false, fmt.Errorf("%w: organizer %d", ErrForeignKeyViolation, *c.OrganizerAssID)
	}
	id, ok, _ := r.FindIDBySlug(ctx, c.Slug)
	if !ok {
		id = t.newID()
	}
	c.ID = id
	put(r.tx, t.competitions, id, c)
	return id, !ok, nil
}
