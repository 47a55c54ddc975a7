package postgres

import "database/sql"

type teamTableModel struct {
	ID                int64          `db:"team_id"`
	Name              string         `db:"name"`
	Type              string         `db:"team_type"`
	ClubID            sql.NullInt64  `db:"club_id"`
	NationalCountryID sql.NullInt64  `db:"national_country_id"`
	Gender            sql.NullString `db:"gender"`
	AgeGroup          sql.NullString `db:"age_group"`
	SquadLevel        sql.NullString `db:"squad_level"`
	LogoFilename      sql.NullString `db:"logo_filename"`
}

var teamColumns = []string{
	"team_id", "name", "team_type", "club_id", "national_country_id",
	"gender", "age_group", "squad_level", "logo_filename",
}
