package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/internal/domain/team"
	qb "github.com/mouxlas21/football-db/internal/platform/querybuilder"
)

type TeamRepository struct {
	db sqlx.ExtContext
}

func NewTeamRepository(db sqlx.ExtContext) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	return selectIDs(ctx, r.db, qb.Select("team_id").From("team").Where(qb.EqFold("name", name)).OrderBy("team_id"), "teams by name")
}

func (r *TeamRepository) FindClubTeamIDs(ctx context.Context, clubID int64) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("team_id").From("team").
			Where(qb.Eq("team_type", string(team.TypeClub)), qb.Eq("club_id", clubID)).
			OrderBy("team_id"),
		"club teams",
	)
}

func (r *TeamRepository) FindNationalTeamIDs(ctx context.Context, countryID int64, ageGroup, gender *string) ([]int64, error) {
	return selectIDs(ctx, r.db, nationalTeamQuery(countryID, ageGroup, gender), "national teams")
}

// nationalTeamQuery selects the national teams of a country; a nil age group or gender
// matches only NULL.
func nationalTeamQuery(countryID int64, ageGroup, gender *string) *qb.SelectBuilder {
	return qb.Select("team_id").From("team").
		Where(
			qb.Eq("team_type", string(team.TypeNational)),
			qb.Eq("national_country_id", countryID),
			eqOrNull("age_group", ageGroup),
			eqOrNull("gender", gender),
		).
		OrderBy("team_id")
}

// eqOrNull matches value, or NULL when value is nil.
func eqOrNull(column string, value *string) qb.Condition {
	if value == nil {
		return qb.IsNull(column)
	}
	return qb.Eq(column, *value)
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	var row teamTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(teamColumns...).From("team").Where(qb.Eq("team_id", id)), "team")
	if err != nil || !ok {
		return team.Team{}, false, err
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByClub(ctx context.Context, clubID int64) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("team").
		Where(qb.Eq("team_type", string(team.TypeClub)), qb.Eq("club_id", clubID)).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by club query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by club: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:                row.ID,
		Name:              row.Name,
		Type:              team.Type(row.Type),
		ClubID:            nullInt64Ptr(row.ClubID),
		NationalCountryID: nullInt64Ptr(row.NationalCountryID),
		Gender:            nullStringPtr(row.Gender),
		AgeGroup:          nullStringPtr(row.AgeGroup),
		SquadLevel:        nullStringPtr(row.SquadLevel),
		LogoFilename:      nullStringPtr(row.LogoFilename),
	}
}

func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) (int64, bool, error) {
	if err := t.Validate(); err != nil {
		return 0, false, fmt.Errorf("validate team %q: %w", t.Name, err)
	}

	id, ok, err := selectID(ctx, r.db,
		qb.Select("team_id").From("team").Where(qb.EqFold("name", t.Name), qb.Eq("team_type", string(t.Type))).OrderBy("team_id"),
		"team by name and type",
	)
	if err != nil {
		return 0, false, err
	}
	if ok {
		_, err := exec(ctx, r.db, qb.Update("team").
			Set("club_id", t.ClubID).
			Set("national_country_id", t.NationalCountryID).
			Set("gender", t.Gender).
			Set("age_group", t.AgeGroup).
			Set("squad_level", t.SquadLevel).
			Set("logo_filename", t.LogoFilename).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("team_id", id)), "update team")
		return id, false, err
	}

	id, err = insertReturningID(ctx, r.db, qb.InsertInto("team").
		Set("name", t.Name).
		Set("team_type", string(t.Type)).
		Set("club_id", t.ClubID).
		Set("national_country_id", t.NationalCountryID).
		Set("gender", t.Gender).
		Set("age_group", t.AgeGroup).
		Set("squad_level", t.SquadLevel).
		Set("logo_filename", t.LogoFilename).
		Returning("team_id"), "team")
	return id, err == nil, err
}

func (r *TeamRepository) Rename(ctx context.Context, id int64, name string) error {
	n, err := exec(ctx, r.db, qb.Update("team").
		Set("name", name).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("team_id", id)), "rename team")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: team %d", ErrRowNotFound, id)
	}
	return nil
}
