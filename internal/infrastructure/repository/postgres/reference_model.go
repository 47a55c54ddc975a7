package postgres

import (
	"database/sql"

	"github.com/lib/pq"
)

type associationTableModel struct {
	ID           int64          `db:"ass_id"`
	Code         string         `db:"code"`
	Name         string         `db:"name"`
	Level        string         `db:"level"`
	FoundedYear  sql.NullInt64  `db:"founded_year"`
	LogoFilename sql.NullString `db:"logo_filename"`
}

var associationColumns = []string{"ass_id", "code", "name", "level", "founded_year", "logo_filename"}

type countryTableModel struct {
	ID             int64          `db:"country_id"`
	Name           string         `db:"name"`
	FIFACode       sql.NullString `db:"fifa_code"`
	ConfedAssID    sql.NullInt64  `db:"confed_ass_id"`
	FlagFilename   sql.NullString `db:"flag_filename"`
	NatAssociation sql.NullString `db:"nat_association"`
	Status         string         `db:"c_status"`
}

var countryColumns = []string{"country_id", "name", "fifa_code", "confed_ass_id", "flag_filename", "nat_association", "c_status"}

type stadiumTableModel struct {
	ID             int64           `db:"stadium_id"`
	Name           string          `db:"name"`
	City           sql.NullString  `db:"city"`
	CountryID      sql.NullInt64   `db:"country_id"`
	Capacity       sql.NullInt64   `db:"capacity"`
	OpenedYear     sql.NullInt64   `db:"opened_year"`
	ClosedYear     sql.NullInt64   `db:"closed_year"`
	Lat            sql.NullFloat64 `db:"lat"`
	Lng            sql.NullFloat64 `db:"lng"`
	RenovatedYears pq.Int64Array   `db:"renovated_years"`
	Tenants        pq.StringArray  `db:"tenants"`
	PhotoFilename  sql.NullString  `db:"photo_filename"`
}

var stadiumColumns = []string{
	"stadium_id", "name", "city", "country_id", "capacity", "opened_year", "closed_year",
	"lat", "lng", "renovated_years", "tenants", "photo_filename",
}

type clubTableModel struct {
	ID           int64          `db:"club_id"`
	Name         string         `db:"name"`
	ShortName    sql.NullString `db:"short_name"`
	Founded      sql.NullInt64  `db:"founded"`
	CountryID    sql.NullInt64  `db:"country_id"`
	StadiumID    sql.NullInt64  `db:"stadium_id"`
	LogoFilename sql.NullString `db:"logo_filename"`
	Colors       sql.NullString `db:"colors"`
}

var clubColumns = []string{"club_id", "name", "short_name", "founded", "country_id", "stadium_id", "logo_filename", "colors"}

// competitionInsertModel feeds qb.InsertModel; pointer fields become NULL when nil.
type competitionInsertModel struct {
	Slug           string  `db:"slug"`
	Name           string  `db:"name"`
	Type           string  `db:"type"`
	Tier           *int    `db:"tier"`
	CupRank        *string `db:"cup_rank"`
	Gender         *string `db:"gender"`
	AgeGroup       *string `db:"age_group"`
	Status         string  `db:"status"`
	Notes          *string `db:"notes"`
	LogoFilename   *string `db:"logo_filename"`
	CountryID      *int64  `db:"country_id"`
	OrganizerAssID *int64  `db:"organizer_ass_id"`
}
