package usecase

import (
	"context"
	"strings"

	"github.com/mouxlas21/football-db/internal/domain/association"
	"github.com/mouxlas21/football-db/internal/domain/country"
	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/platform/coerce"
	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

var (
	associationParentColumns = []string{"parents", "parent_codes", "parent_ids", "parent", "parent_code"}
	countryColumns           = []string{"country_id", "country", "country_name", "country_code"}
	subConfederationColumns  = []string{"sub_confederations", "sub_confederation", "sub_confeds", "sub_confed_ids"}
)

type associationRecord struct {
	Association    association.Association
	ParentIDs      []int64
	ReplaceParents bool
}

// AssociationImporter loads governing bodies and their parent links.
type AssociationImporter struct{}

func (AssociationImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (associationRecord, bool, error) {
	code := coerce.Upper(row.Value("code", "association_code"))
	name := coerce.String(row.Value("name", "association_name"))
	level, ok := association.ParseLevel(row.Value("level"))
	if code == nil || name == nil || !ok {
		return associationRecord{}, false, nil
	}

	rec := associationRecord{
		Association: association.Association{
			Code:         *code,
			Name:         *name,
			Level:        level,
			FoundedYear:  coerce.ToInt(row.Value("founded_year", "founded")),
			LogoFilename: coerce.String(row.Value("logo_filename", "logo")),
		},
		ReplaceParents: row.Has(associationParentColumns...),
	}
	if !rec.ReplaceParents {
		return rec, true, nil
	}

	r := newResolvers(repos)
	parents, err := r.resolveList(ctx, row.Value(associationParentColumns...), func(ctx context.Context, token string) (*int64, error) {
		if strings.EqualFold(strings.TrimSpace(token), rec.Association.Code) {
			return nil, nil
		}
		return r.Association(ctx, token)
	})
	if err != nil {
		return associationRecord{}, false, err
	}
	rec.ParentIDs = parents
	return rec, true, nil
}

func (AssociationImporter) Upsert(ctx context.Context, repos ImportRepositories, rec associationRecord) (bool, error) {
	id, inserted, err := repos.Associations.Upsert(ctx, rec.Association)
	if err != nil {
		return false, err
	}
	if !rec.ReplaceParents {
		return inserted, nil
	}
	parents := make([]int64, 0, len(rec.ParentIDs))
	for _, parentID := range rec.ParentIDs {
		if parentID != id {
			parents = append(parents, parentID)
		}
	}
	if err := repos.Associations.ReplaceParents(ctx, id, parents); err != nil {
		return false, err
	}
	return inserted, nil
}

type countryRecord struct {
	Country                  country.Country
	SubConfederationIDs      []int64
	ReplaceSubConfederations bool
}

// CountryImporter loads countries with their confederation memberships.
type CountryImporter struct{}

func (CountryImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (countryRecord, bool, error) {
	name := coerce.String(row.Value("name", "country_name", "country"))
	if name == nil {
		return countryRecord{}, false, nil
	}

	r := newResolvers(repos)
	confedID, err := r.Association(ctx, row.Value("confederation", "confed", "confed_ass_id", "confederation_id", "confederation_code"))
	if err != nil {
		return countryRecord{}, false, err
	}

	rec := countryRecord{
		Country: country.Country{
			Name:           *name,
			FIFACode:       coerce.Upper(row.Value("fifa_code", "fifa", "code")),
			ConfedAssID:    confedID,
			FlagFilename:   coerce.String(row.Value("flag_filename", "flag")),
			NatAssociation: coerce.String(row.Value("nat_association", "national_association", "association")),
			Status:         country.NormalizeStatus(row.Value("status", "c_status")),
		},
		ReplaceSubConfederations: row.Has(subConfederationColumns...),
	}
	if rec.ReplaceSubConfederations {
		rec.SubConfederationIDs, err = r.resolveList(ctx, row.Value(subConfederationColumns...), r.Association)
		if err != nil {
			return countryRecord{}, false, err
		}
	}
	return rec, true, nil
}

func (CountryImporter) Upsert(ctx context.Context, repos ImportRepositories, rec countryRecord) (bool, error) {
	id, inserted, err := repos.Countries.Upsert(ctx, rec.Country)
	if err != nil {
		return false, err
	}
	if rec.ReplaceSubConfederations {
		if err := repos.Countries.ReplaceSubConfederations(ctx, id, rec.SubConfederationIDs); err != nil {
			return false, err
		}
	}
	return inserted, nil
}

// StadiumImporter loads venues. Stadium names are not unique, so an existing row is found by
// (name, country), then (name, city), then name alone when the row carries neither.
type StadiumImporter struct{}

func (StadiumImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (stadium.Stadium, bool, error) {
	name := coerce.String(row.Value("name", "stadium_name", "stadium"))
	if name == nil {
		return stadium.Stadium{}, false, nil
	}
	countryID, err := newResolvers(repos).Country(ctx, row.Value(countryColumns...))
	if err != nil {
		return stadium.Stadium{}, false, err
	}
	return stadium.Stadium{
		Name:           *name,
		City:           coerce.String(row.Value("city")),
		CountryID:      countryID,
		Capacity:       coerce.ToInt(row.Value("capacity")),
		OpenedYear:     coerce.ToInt(row.Value("opened_year", "opened")),
		ClosedYear:     coerce.ToInt(row.Value("closed_year", "closed")),
		Lat:            coerce.ToFloat(row.Value("lat", "latitude")),
		Lng:            coerce.ToFloat(row.Value("lng", "lon", "longitude")),
		RenovatedYears: coerce.ToIntList(row.Value("renovated_years", "renovated")),
		Tenants:        coerce.ToStrList(row.Value("tenants")),
		PhotoFilename:  coerce.String(row.Value("photo_filename", "photo")),
	}, true, nil
}

func (StadiumImporter) Upsert(ctx context.Context, repos ImportRepositories, s stadium.Stadium) (bool, error) {
	queries := make([]stadium.Query, 0, 2)
	if s.CountryID != nil {
		queries = append(queries, stadium.Query{Name: s.Name, CountryID: s.CountryID})
	}
	if s.City != nil {
		queries = append(queries, stadium.Query{Name: s.Name, City: s.City})
	}
	if len(queries) == 0 {
		queries = append(queries, stadium.Query{Name: s.Name})
	}

	for _, q := range queries {
		ids, err := repos.Stadiums.FindIDs(ctx, q)
		if err != nil {
			return false, err
		}
		if len(ids) > 0 {
			s.ID = ids[0]
			return false, repos.Stadiums.Patch(ctx, s)
		}
	}

	if _, err := repos.Stadiums.Create(ctx, s); err != nil {
		return false, err
	}
	return true, nil
}
