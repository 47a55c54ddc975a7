package postgres

import (
	"database/sql"
	"time"
)

type personTableModel struct {
	ID              int64          `db:"person_id"`
	FullName        string         `db:"full_name"`
	FirstName       sql.NullString `db:"first_name"`
	LastName        sql.NullString `db:"last_name"`
	KnownAs         sql.NullString `db:"known_as"`
	BirthDate       sql.NullTime   `db:"birth_date"`
	BirthPlace      sql.NullString `db:"birth_place"`
	CountryID       sql.NullInt64  `db:"country_id"`
	SecondCountryID sql.NullInt64  `db:"second_country_id"`
	Gender          sql.NullString `db:"gender"`
	HeightCM        sql.NullInt64  `db:"height_cm"`
	WeightKG        sql.NullInt64  `db:"weight_kg"`
	PhotoURL        sql.NullString `db:"photo_url"`
}

var personColumns = []string{
	"person_id", "full_name", "first_name", "last_name", "known_as", "birth_date", "birth_place",
	"country_id", "second_country_id", "gender", "height_cm", "weight_kg", "photo_url",
}

// personInsertModel is written through qb.InsertModel; nil pointers become NULL.
type personInsertModel struct {
	FullName        string     `db:"full_name"`
	FirstName       *string    `db:"first_name"`
	LastName        *string    `db:"last_name"`
	KnownAs         *string    `db:"known_as"`
	BirthDate       *time.Time `db:"birth_date"`
	BirthPlace      *string    `db:"birth_place"`
	CountryID       *int64     `db:"country_id"`
	SecondCountryID *int64     `db:"second_country_id"`
	Gender          *string    `db:"gender"`
	HeightCM        *int       `db:"height_cm"`
	WeightKG        *int       `db:"weight_kg"`
	PhotoURL        *string    `db:"photo_url"`
}
