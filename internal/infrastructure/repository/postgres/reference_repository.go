package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/internal/domain/association"
	"github.com/mouxlas21/football-db/internal/domain/club"
	"github.com/mouxlas21/football-db/internal/domain/competition"
	"github.com/mouxlas21/football-db/internal/domain/country"
	"github.com/mouxlas21/football-db/internal/domain/stadium"
	qb "github.com/mouxlas21/football-db/internal/platform/querybuilder"
)

type AssociationRepository struct {
	db sqlx.ExtContext
}

func NewAssociationRepository(db sqlx.ExtContext) *AssociationRepository {
	return &AssociationRepository{db: db}
}

func (r *AssociationRepository) FindIDByCode(ctx context.Context, code string) (int64, bool, error) {
	return selectID(ctx, r.db, qb.Select("ass_id").From("association").Where(qb.Eq("code", code)), "association by code")
}

func (r *AssociationRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("ass_id").From("association").Where(qb.EqFold("name", name)).OrderBy("ass_id"),
		"associations by name",
	)
}

func (r *AssociationRepository) GetByID(ctx context.Context, id int64) (association.Association, bool, error) {
	var row associationTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(associationColumns...).From("association").Where(qb.Eq("ass_id", id)), "association")
	if err != nil || !ok {
		return association.Association{}, false, err
	}
	return association.Association{
		ID:           row.ID,
		Code:         row.Code,
		Name:         row.Name,
		Level:        association.Level(row.Level),
		FoundedYear:  nullIntPtr(row.FoundedYear),
		LogoFilename: nullStringPtr(row.LogoFilename),
	}, true, nil
}

func (r *AssociationRepository) Upsert(ctx context.Context, a association.Association) (int64, bool, error) {
	id, ok, err := r.FindIDByCode(ctx, a.Code)
	if err != nil {
		return 0, false, err
	}
	if ok {
		_, err := exec(ctx, r.db, qb.Update("association").
			Set("name", a.Name).
			Set("level", string(a.Level)).
			Set("founded_year", a.FoundedYear).
			Set("logo_filename", a.LogoFilename).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("ass_id", id)), "update association")
		return id, false, err
	}

	id, err = insertReturningID(ctx, r.db, qb.InsertInto("association").
		Set("code", a.Code).
		Set("name", a.Name).
		Set("level", string(a.Level)).
		Set("founded_year", a.FoundedYear).
		Set("logo_filename", a.LogoFilename).
		Returning("ass_id"), "association")
	return id, err == nil, err
}

func (r *AssociationRepository) ReplaceParents(ctx context.Context, id int64, parentIDs []int64) error {
	if _, err := exec(ctx, r.db, qb.DeleteFrom("association_parent").Where(qb.Eq("child_ass_id", id)), "delete association parents"); err != nil {
		return err
	}
	for _, parentID := range parentIDs {
		if _, err := exec(ctx, r.db, qb.InsertInto("association_parent").
			Set("child_ass_id", id).
			Set("parent_ass_id", parentID).
			OnConflictDoNothing("child_ass_id", "parent_ass_id"), "insert association parent"); err != nil {
			return err
		}
	}
	return nil
}

func (r *AssociationRepository) ListParents(ctx context.Context, id int64) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("parent_ass_id").From("association_parent").Where(qb.Eq("child_ass_id", id)).OrderBy("parent_ass_id"),
		"association parents",
	)
}

type CountryRepository struct {
	db sqlx.ExtContext
}

func NewCountryRepository(db sqlx.ExtContext) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) FindIDByFIFACode(ctx context.Context, code string) (int64, bool, error) {
	return selectID(ctx, r.db, qb.Select("country_id").From("country").Where(qb.Eq("fifa_code", code)), "country by fifa code")
}

func (r *CountryRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("country_id").From("country").Where(qb.EqFold("name", name)).OrderBy("country_id"),
		"countries by name",
	)
}

func (r *CountryRepository) GetByID(ctx context.Context, id int64) (country.Country, bool, error) {
	var row countryTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(countryColumns...).From("country").Where(qb.Eq("country_id", id)), "country")
	if err != nil || !ok {
		return country.Country{}, false, err
	}
	return countryFromRow(row), true, nil
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	query, args, err := qb.Select(countryColumns...).From("country").OrderBy("country_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select countries query: %w", err)
	}
	var rows []countryTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}
	out := make([]country.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, countryFromRow(row))
	}
	return out, nil
}

func countryFromRow(row countryTableModel) country.Country {
	return country.Country{
		ID:             row.ID,
		Name:           row.Name,
		FIFACode:       nullStringPtr(row.FIFACode),
		ConfedAssID:    nullInt64Ptr(row.ConfedAssID),
		FlagFilename:   nullStringPtr(row.FlagFilename),
		NatAssociation: nullStringPtr(row.NatAssociation),
		Status:         country.Status(row.Status),
	}
}

// fifaCodeOwnerQuery selects a country holding code other than selfID.
func fifaCodeOwnerQuery(code string, selfID *int64) *qb.SelectBuilder {
	conditions := []qb.Condition{qb.Eq("fifa_code", code)}
	if selfID != nil {
		conditions = append(conditions, qb.NotEq("country_id", *selfID))
	}
	return qb.Select("country_id").From("country").Where(conditions...)
}

func (r *CountryRepository) Upsert(ctx context.Context, c country.Country) (int64, bool, error) {
	ids, err := r.FindIDsByName(ctx, c.Name)
	if err != nil {
		return 0, false, err
	}
	if c.FIFACode != nil {
		var selfID *int64
		if len(ids) > 0 {
			selfID = &ids[0]
		}
		_, taken, err := selectID(ctx, r.db, fifaCodeOwnerQuery(*c.FIFACode, selfID), "country by fifa code")
		if err != nil {
			return 0, false, err
		}
		if taken {
			return 0, false, fmt.Errorf("%w: country fifa_code %s", ErrUniqueViolation, *c.FIFACode)
		}
	}
	if len(ids) > 0 {
		_, err := exec(ctx, r.db, qb.Update("country").
			Set("name", c.Name).
			Set("fifa_code", c.FIFACode).
			Set("confed_ass_id", c.ConfedAssID).
			Set("flag_filename", c.FlagFilename).
			Set("nat_association", c.NatAssociation).
			Set("c_status", string(c.Status)).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("country_id", ids[0])), "update country")
		return ids[0], false, err
	}

	id, err := insertReturningID(ctx, r.db, qb.InsertInto("country").
		Set("name", c.Name).
		Set("fifa_code", c.FIFACode).
		Set("confed_ass_id", c.ConfedAssID).
		Set("flag_filename", c.FlagFilename).
		Set("nat_association", c.NatAssociation).
		Set("c_status", string(c.Status)).
		Returning("country_id"), "country")
	return id, err == nil, err
}

func (r *CountryRepository) ReplaceSubConfederations(ctx context.Context, countryID int64, associationIDs []int64) error {
	if _, err := exec(ctx, r.db, qb.DeleteFrom("country_sub_confederation").Where(qb.Eq("country_id", countryID)), "delete country sub-confederations"); err != nil {
		return err
	}
	for _, assID := range associationIDs {
		if _, err := exec(ctx, r.db, qb.InsertInto("country_sub_confederation").
			Set("country_id", countryID).
			Set("ass_id", assID).
			OnConflictDoNothing("country_id", "ass_id"), "insert country sub-confederation"); err != nil {
			return err
		}
	}
	return nil
}

func (r *CountryRepository) ListSubConfederations(ctx context.Context, countryID int64) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("ass_id").From("country_sub_confederation").Where(qb.Eq("country_id", countryID)).OrderBy("ass_id"),
		"country sub-confederations",
	)
}

type StadiumRepository struct {
	db sqlx.ExtContext
}

func NewStadiumRepository(db sqlx.ExtContext) *StadiumRepository {
	return &StadiumRepository{db: db}
}

func (r *StadiumRepository) FindIDs(ctx context.Context, q stadium.Query) ([]int64, error) {
	conditions := []qb.Condition{qb.EqFold("name", q.Name)}
	if q.City != nil {
		conditions = append(conditions, qb.EqFold("city", *q.City))
	}
	if q.CountryID != nil {
		conditions = append(conditions, qb.Eq("country_id", *q.CountryID))
	}
	return selectIDs(ctx, r.db, qb.Select("stadium_id").From("stadium").Where(conditions...).OrderBy("stadium_id"), "stadiums")
}

func (r *StadiumRepository) GetByID(ctx context.Context, id int64) (stadium.Stadium, bool, error) {
	var row stadiumTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(stadiumColumns...).From("stadium").Where(qb.Eq("stadium_id", id)), "stadium")
	if err != nil || !ok {
		return stadium.Stadium{}, false, err
	}
	return stadium.Stadium{
		ID:             row.ID,
		Name:           row.Name,
		City:           nullStringPtr(row.City),
		CountryID:      nullInt64Ptr(row.CountryID),
		Capacity:       nullIntPtr(row.Capacity),
		OpenedYear:     nullIntPtr(row.OpenedYear),
		ClosedYear:     nullIntPtr(row.ClosedYear),
		Lat:            nullFloatPtr(row.Lat),
		Lng:            nullFloatPtr(row.Lng),
		RenovatedYears: intsFromArray(row.RenovatedYears),
		Tenants:        stringsFromArray(row.Tenants),
		PhotoFilename:  nullStringPtr(row.PhotoFilename),
	}, true, nil
}

func (r *StadiumRepository) Create(ctx context.Context, s stadium.Stadium) (int64, error) {
	b := qb.InsertInto("stadium").
		Set("name", s.Name).
		Set("city", s.City).
		Set("country_id", s.CountryID).
		Set("capacity", s.Capacity).
		Set("opened_year", s.OpenedYear).
		Set("closed_year", s.ClosedYear).
		Set("lat", s.Lat).
		Set("lng", s.Lng).
		Set("renovated_years", intsToArray(s.RenovatedYears)).
		Set("tenants", stringArray(s.Tenants)).
		Set("photo_filename", s.PhotoFilename).
		Returning("stadium_id")
	return insertReturningID(ctx, r.db, b, "stadium")
}

func (r *StadiumRepository) Patch(ctx context.Context, s stadium.Stadium) error {
	b := qb.Update("stadium").
		SetPresent("city", s.City).
		SetPresent("country_id", s.CountryID).
		SetPresent("capacity", s.Capacity).
		SetPresent("opened_year", s.OpenedYear).
		SetPresent("closed_year", s.ClosedYear).
		SetPresent("lat", s.Lat).
		SetPresent("lng", s.Lng).
		SetPresent("photo_filename", s.PhotoFilename)
	if s.RenovatedYears != nil {
		b.Set("renovated_years", intsToArray(s.RenovatedYears))
	}
	if s.Tenants != nil {
		b.Set("tenants", stringArray(s.Tenants))
	}
	if b.Empty() {
		return nil
	}

	n, err := exec(ctx, r.db, b.SetExpr("updated_at", "NOW()").Where(qb.Eq("stadium_id", s.ID)), "patch stadium")
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: stadium %d", ErrRowNotFound, s.ID)
	}
	return nil
}

type ClubRepository struct {
	db sqlx.ExtContext
}

func NewClubRepository(db sqlx.ExtContext) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	return selectIDs(ctx, r.db, qb.Select("club_id").From("club").Where(qb.EqFold("name", name)).OrderBy("club_id"), "clubs by name")
}

func (r *ClubRepository) GetByID(ctx context.Context, id int64) (club.Club, bool, error) {
	var row clubTableModel
	ok, err := getRow(ctx, r.db, &row, qb.Select(clubColumns...).From("club").Where(qb.Eq("club_id", id)), "club")
	if err != nil || !ok {
		return club.Club{}, false, err
	}
	return clubFromRow(row), true, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select(clubColumns...).From("club").OrderBy("club_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}
	var rows []clubTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}
	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:           row.ID,
		Name:         row.Name,
		ShortName:    nullStringPtr(row.ShortName),
		Founded:      nullIntPtr(row.Founded),
		CountryID:    nullInt64Ptr(row.CountryID),
		StadiumID:    nullInt64Ptr(row.StadiumID),
		LogoFilename: nullStringPtr(row.LogoFilename),
		Colors:       nullStringPtr(row.Colors),
	}
}

func (r *ClubRepository) Upsert(ctx context.Context, c club.Club) (int64, bool, error) {
	ids, err := r.FindIDsByName(ctx, c.Name)
	if err != nil {
		return 0, false, err
	}
	if len(ids) > 0 {
		_, err := exec(ctx, r.db, qb.Update("club").
			Set("short_name", c.ShortName).
			Set("founded", c.Founded).
			Set("country_id", c.CountryID).
			Set("stadium_id", c.StadiumID).
			Set("logo_filename", c.LogoFilename).
			Set("colors", c.Colors).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("club_id", ids[0])), "update club")
		return ids[0], false, err
	}

	id, err := insertReturningID(ctx, r.db, qb.InsertInto("club").
		Set("name", c.Name).
		Set("short_name", c.ShortName).
		Set("founded", c.Founded).
		Set("country_id", c.CountryID).
		Set("stadium_id", c.StadiumID).
		Set("logo_filename", c.LogoFilename).
		Set("colors", c.Colors).
		Returning("club_id"), "club")
	return id, err == nil, err
}

type CompetitionRepository struct {
	db sqlx.ExtContext
}

func NewCompetitionRepository(db sqlx.ExtContext) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) FindIDBySlug(ctx context.Context, slug string) (int64, bool, error) {
	return selectID(ctx, r.db, qb.Select("competition_id").From("competition").Where(qb.Eq("slug", slug)), "competition by slug")
}

func (r *CompetitionRepository) FindIDsByName(ctx context.Context, name string) ([]int64, error) {
	return selectIDs(ctx, r.db,
		qb.Select("competition_id").From("competition").Where(qb.EqFold("name", name)).OrderBy("competition_id"),
		"competitions by name",
	)
}

func (r *CompetitionRepository) Upsert(ctx context.Context, c competition.Competition) (int64, bool, error) {
	id, ok, err := r.FindIDBySlug(ctx, c.Slug)
	if err != nil {
		return 0, false, err
	}
	if ok {
		_, err := exec(ctx, r.db, qb.Update("competition").
			Set("name", c.Name).
			Set("type", c.Type).
			Set("tier", c.Tier).
			Set("cup_rank", c.CupRank).
			Set("gender", c.Gender).
			Set("age_group", c.AgeGroup).
			Set("status", c.Status).
			Set("notes", c.Notes).
			Set("logo_filename", c.LogoFilename).
			Set("country_id", c.CountryID).
			Set("organizer_ass_id", c.OrganizerAssID).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("competition_id", id)), "update competition")
		return id, false, err
	}

	b, err := qb.InsertModel("competition", competitionInsertModel{
		Slug:           c.Slug,
		Name:           c.Name,
		Type:           c.Type,
		Tier:           c.Tier,
		CupRank:        c.CupRank,
		Gender:         c.Gender,
		AgeGroup:       c.AgeGroup,
		Status:         c.Status,
		Notes:          c.Notes,
		LogoFilename:   c.LogoFilename,
		CountryID:      c.CountryID,
		OrganizerAssID: c.OrganizerAssID,
	})
	if err != nil {
		return 0, false, fmt.Errorf("build insert competition query: %w", err)
	}
	id, err = insertReturningID(ctx, r.db, b.Returning("competition_id"), "competition")
	return id, err == nil, err
}
