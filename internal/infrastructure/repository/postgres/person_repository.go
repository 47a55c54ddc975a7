package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/internal/domain/person"
	qb "github.com/mouxlas21/football-db/internal/platform/querybuilder"
)

type PersonRepository struct {
	db sqlx.ExtContext
}

func NewPersonRepository(db sqlx.ExtContext) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) FindIDs(ctx context.Context, fullName string, birthDate *time.Time) ([]int64, error) {
	conds := []qb.Condition{qb.EqFold("full_name", fullName)}
	if birthDate != nil {
		conds = append(conds, qb.Eq("birth_date", birthDate.Format(time.DateOnly)))
	}
	return selectIDs(ctx, r.db, qb.Select("person_id").From("person").Where(conds...).OrderBy("person_id"), "people by name")
}

func (r *PersonRepository) GetByID(ctx context.Context, id int64) (person.Person, bool, error) {
	var row personTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(personColumns...).From("person").Where(qb.Eq("person_id", id)), "person")
	if err != nil || !ok {
		return person.Person{}, false, err
	}
	return person.Person{
		ID:              row.ID,
		FullName:        row.FullName,
		FirstName:       nullStringPtr(row.FirstName),
		LastName:        nullStringPtr(row.LastName),
		KnownAs:         nullStringPtr(row.KnownAs),
		BirthDate:       nullTimePtr(row.BirthDate),
		BirthPlace:      nullStringPtr(row.BirthPlace),
		CountryID:       nullInt64Ptr(row.CountryID),
		SecondCountryID: nullInt64Ptr(row.SecondCountryID),
		Gender:          nullStringPtr(row.Gender),
		HeightCM:        nullIntPtr(row.HeightCM),
		WeightKG:        nullIntPtr(row.WeightKG),
		PhotoURL:        nullStringPtr(row.PhotoURL),
	}, true, nil
}

func (r *PersonRepository) Create(ctx context.Context, p person.Person) (int64, error) {
	b, err := qb.InsertModel("person", personInsertModel{
		FullName:        p.FullName,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		KnownAs:         p.KnownAs,
		BirthDate:       p.BirthDate,
		BirthPlace:      p.BirthPlace,
		CountryID:       p.CountryID,
		SecondCountryID: p.SecondCountryID,
		Gender:          p.Gender,
		HeightCM:        p.HeightCM,
		WeightKG:        p.WeightKG,
		PhotoURL:        p.PhotoURL,
	})
	if err != nil {
		return 0, fmt.Errorf("build person insert: %w", err)
	}
	return insertReturningID(ctx, r.db, b.Returning("person_id"), "person")
}

func (r *PersonRepository) Patch(ctx context.Context, p person.Person) error {
	b := qb.Update("person").
		SetPresent("first_name", p.FirstName).
		SetPresent("last_name", p.LastName).
		SetPresent("known_as", p.KnownAs).
		SetPresent("birth_date", p.BirthDate).
		SetPresent("birth_place", p.BirthPlace).
		SetPresent("country_id", p.CountryID).
		SetPresent("second_country_id", p.SecondCountryID).
		SetPresent("gender", p.Gender).
		SetPresent("height_cm", p.HeightCM).
		SetPresent("weight_kg", p.WeightKG).
		SetPresent("photo_url", p.PhotoURL)
	if b.Empty() {
		return nil
	}

	n, err := exec(ctx, r.db, b.SetExpr("updated_at", "NOW()").Where(qb.Eq("person_id", p.ID)), "update person")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: person %d", ErrRowNotFound, p.ID)
	}
	return nil
}

func (r *PersonRepository) UpsertPlayer(ctx context.Context, p person.Player) (bool, error) {
	return r.upsertRole(ctx, "player", p.PersonID,
		qb.Update("player").Set("player_position", p.Position).Set("active", p.Active),
		qb.InsertInto("player").Set("person_id", p.PersonID).Set("player_position", p.Position).Set("active", p.Active),
	)
}

func (r *PersonRepository) UpsertCoach(ctx context.Context, c person.Coach) (bool, error) {
	return r.upsertRole(ctx, "coach", c.PersonID,
		qb.Update("coach").Set("role_default", c.RoleDefault).Set("active", c.Active),
		qb.InsertInto("coach").Set("person_id", c.PersonID).Set("role_default", c.RoleDefault).Set("active", c.Active),
	)
}

func (r *PersonRepository) UpsertOfficial(ctx context.Context, o person.Official) (bool, error) {
	return r.upsertRole(ctx, "official", o.PersonID,
		qb.Update("official").Set("association_id", o.AssociationID).Set("roles", o.Roles).Set("active", o.Active),
		qb.InsertInto("official").
			Set("person_id", o.PersonID).
			Set("association_id", o.AssociationID).
			Set("roles", o.Roles).
			Set("active", o.Active),
	)
}

// upsertRole updates the role row keyed by person_id, inserting it when the update touched nothing.
func (r *PersonRepository) upsertRole(ctx context.Context, table string, personID int64, update *qb.UpdateBuilder, insert *qb.InsertBuilder) (bool, error) {
	n, err := exec(ctx, r.db, update.Where(qb.Eq("person_id", personID)), "update "+table)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := exec(ctx, r.db, insert, "insert "+table); err != nil {
		return false, err
	}
	return true, nil
}
