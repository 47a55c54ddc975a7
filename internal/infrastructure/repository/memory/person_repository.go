package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/mouxlas21/football-db/internal/domain/person"
)

type PersonRepository struct {
	tx *Tx
}

func (r *PersonRepository) FindIDs(_ context.Context, fullName string, birthDate *time.Time) ([]int64, error) {
	return matchIDs(r.tx.tables().people, func(p person.Person) bool {
		if !sameName(p.FullName, fullName) {
			return false
		}
		return birthDate == nil || (p.BirthDate != nil && p.BirthDate.Equal(*birthDate))
	}), nil
}

func (r *PersonRepository) GetByID(_ context.Context, id int64) (person.Person, bool, error) {
	p, ok := r.tx.tables().people[id]
	return p, ok, nil
}

func (r *PersonRepository) Create(_ context.Context, p person.Person) (int64, error) {
	t := r.tx.tables()
	if err := r.checkCountries(p); err != nil {
		return 0, err
	}
	p.ID = t.newID()
	put(r.tx, t.people, p.ID, p)
	return p.ID, nil
}

func (r *PersonRepository) Patch(_ context.Context, p person.Person) error {
	t := r.tx.tables()
	current, ok := t.people[p.ID]
	if !ok {
		return fmt.Errorf("%w: person %d", ErrRowNotFound, p.ID)
	}
	if err := r.checkCountries(p); err != nil {
		return err
	}
	current.FirstName = patch(current.FirstName, p.FirstName)
	current.LastName = patch(current.LastName, p.LastName)
	current.KnownAs = patch(current.KnownAs, p.KnownAs)
	current.BirthDate = patch(current.BirthDate, p.BirthDate)
	current.BirthPlace = patch(current.BirthPlace, p.BirthPlace)
	current.CountryID = patch(current.CountryID, p.CountryID)
	current.SecondCountryID = patch(current.SecondCountryID, p.SecondCountryID)
	current.Gender = patch(current.Gender, p.Gender)
	current.HeightCM = patch(current.HeightCM, p.HeightCM)
	current.WeightKG = patch(current.WeightKG, p.WeightKG)
	current.PhotoURL = patch(current.PhotoURL, p.PhotoURL)
	put(r.tx, t.people, p.ID, current)
	return nil
}

func (r *PersonRepository) checkCountries(p person.Person) error {
	t := r.tx.tables()
	if !exists(t.countries, p.CountryID) {
		return fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *p.CountryID)
	}
	if !exists(t.countries, p.SecondCountryID) {
		return fmt.Errorf("%w: country %d", ErrForeignKeyViolation, *p.SecondCountryID)
	}
	return nil
}

func (r *PersonRepository) requirePerson(id int64) error {
	if _, ok := r.tx.tables().people[id]; !ok {
		return fmt.Errorf("%w: person %d", ErrForeignKeyViolation, id)
	}
	return nil
}

func (r *PersonRepository) UpsertPlayer(_ context.Context, p person.Player) (bool, error) {
	if err := r.requirePerson(p.PersonID); err != nil {
		return false, err
	}
	t := r.tx.tables()
	_, found := t.players[p.PersonID]
	put(r.tx, t.players, p.PersonID, p)
	return !found, nil
}

func (r *PersonRepository) UpsertCoach(_ context.Context, c person.Coach) (bool, error) {
	if err := r.requirePerson(c.PersonID); err != nil {
		return false, err
	}
	t := r.tx.tables()
	_, found := t.coaches[c.PersonID]
	put(r.tx, t.coaches, c.PersonID, c)
	return !found, nil
}

func (r *PersonRepository) UpsertOfficial(_ context.Context, o person.Official) (bool, error) {
	if err := r.requirePerson(o.PersonID); err != nil {
		return false, err
	}
	t := r.tx.tables()
	if !exists(t.associations, o.AssociationID) {
		return false, fmt.Errorf("%w: association %d", ErrForeignKeyViolation, *o.AssociationID)
	}
	_, found := t.officials[o.PersonID]
	put(r.tx, t.officials, o.PersonID, o)
	return !found, nil
}
