package usecase

import (
	"context"
	"strings"

	"github.com/mouxlas21/football-db/internal/domain/club"
	"github.com/mouxlas21/football-db/internal/domain/competition"
	"github.com/mouxlas21/football-db/internal/domain/team"
	"github.com/mouxlas21/football-db/internal/platform/coerce"
	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

// ClubImporter loads clubs keyed by their unique name.
type ClubImporter struct{}

func (ClubImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (club.Club, bool, error) {
	name := coerce.String(row.Value("name", "club_name", "club"))
	if name == nil {
		return club.Club{}, false, nil
	}

	r := newResolvers(repos)
	countryID, err := r.Country(ctx, row.Value(countryColumns...))
	if err != nil {
		return club.Club{}, false, err
	}
	stadiumID, err := r.Stadium(ctx,
		row.Value("stadium_id", "stadium", "stadium_name"),
		coerce.String(row.Value("stadium_city", "city")),
		countryID,
	)
	if err != nil {
		return club.Club{}, false, err
	}

	return club.Club{
		Name:         *name,
		ShortName:    coerce.String(row.Value("short_name")),
		Founded:      coerce.ToInt(row.Value("founded", "founded_year")),
		CountryID:    countryID,
		StadiumID:    stadiumID,
		LogoFilename: coerce.String(row.Value("logo_filename", "logo")),
		Colors:       coerce.String(row.Value("colors", "colours")),
	}, true, nil
}

func (ClubImporter) Upsert(ctx context.Context, repos ImportRepositories, c club.Club) (bool, error) {
	_, inserted, err := repos.Clubs.Upsert(ctx, c)
	return inserted, err
}

// CompetitionImporter loads competitions keyed by slug.
type CompetitionImporter struct{}

func (CompetitionImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (competition.Competition, bool, error) {
	name := coerce.String(row.Value("name", "competition_name"))
	kind := coerce.Lower(row.Value("type", "competition_type"))
	if name == nil || kind == nil {
		return competition.Competition{}, false, nil
	}

	r := newResolvers(repos)
	countryID, err := r.Country(ctx, row.Value(countryColumns...))
	if err != nil {
		return competition.Competition{}, false, err
	}
	organizerID, err := r.Association(ctx, row.Value("organizer_ass_id", "organizer", "organizer_code", "association", "association_code"))
	if err != nil {
		return competition.Competition{}, false, err
	}

	comp := competition.Competition{
		Name:           *name,
		Type:           *kind,
		Tier:           coerce.FirstInt(row.Value("tier")),
		CupRank:        coerce.Lower(row.Value("cup_rank")),
		Gender:         coerce.Lower(row.Value("gender")),
		AgeGroup:       coerce.String(row.Value("age_group")),
		Status:         competition.StatusActive,
		Notes:          coerce.String(row.Value("notes")),
		LogoFilename:   coerce.String(row.Value("logo_filename", "logo")),
		CountryID:      countryID,
		OrganizerAssID: organizerID,
	}
	if status := coerce.Lower(row.Value("status")); status != nil {
		comp.Status = *status
	}

	if explicit := coerce.Slugify(row.Value("slug")); explicit != "" {
		comp.Slug = explicit
		return comp, true, nil
	}
	scope, err := competitionScope(ctx, repos, countryID, organizerID)
	if err != nil {
		return competition.Competition{}, false, err
	}
	comp.Slug = competition.BuildSlug(scope, comp.Name)
	if comp.Slug == "" {
		return competition.Competition{}, false, nil
	}
	return comp, true, nil
}

// competitionScope is the country name, else the organizer's code, else empty.
func competitionScope(ctx context.Context, repos ImportRepositories, countryID, organizerID *int64) (string, error) {
	if countryID != nil {
		c, ok, err := repos.Countries.GetByID(ctx, *countryID)
		if err != nil {
			return "", err
		}
		if ok {
			return c.Name, nil
		}
	}
	if organizerID != nil {
		a, ok, err := repos.Associations.GetByID(ctx, *organizerID)
		if err != nil {
			return "", err
		}
		if ok {
			return a.Code, nil
		}
	}
	return "", nil
}

func (CompetitionImporter) Upsert(ctx context.Context, repos ImportRepositories, c competition.Competition) (bool, error) {
	_, inserted, err := repos.Competitions.Upsert(ctx, c)
	return inserted, err
}

// TeamImporter loads club and national teams. A row is rejected unless exactly the
// attachment its type asks for resolves.
type TeamImporter struct{}

func (TeamImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (team.Team, bool, error) {
	kind, ok := team.ParseType(row.Value("type", "team_type"))
	if !ok {
		return team.Team{}, false, nil
	}

	r := newResolvers(repos)
	clubID, err := r.Club(ctx, row.Value("club_id", "club", "club_name"))
	if err != nil {
		return team.Team{}, false, err
	}
	nationalColumns := []string{"national_country_id", "national_country", "national_country_name"}
	if kind == team.TypeNational {
		nationalColumns = append(nationalColumns, countryColumns...)
	}
	countryID, err := r.Country(ctx, row.Value(nationalColumns...))
	if err != nil {
		return team.Team{}, false, err
	}

	t := team.Team{
		Name:              strings.TrimSpace(row.Value("name", "team_name")),
		Type:              kind,
		ClubID:            clubID,
		NationalCountryID: countryID,
		Gender:            coerce.Lower(row.Value("gender")),
		AgeGroup:          coerce.String(row.Value("age_group")),
		SquadLevel:        coerce.String(row.Value("squad_level")),
		LogoFilename:      coerce.String(row.Value("logo_filename", "logo")),
	}
	if t.Name == "" {
		if t.Name, err = derivedTeamName(ctx, repos, t); err != nil {
			return team.Team{}, false, err
		}
	}
	if t.Validate() != nil {
		return team.Team{}, false, nil
	}
	return t, true, nil
}

func derivedTeamName(ctx context.Context, repos ImportRepositories, t team.Team) (string, error) {
	switch {
	case t.ClubID != nil && t.NationalCountryID == nil:
		c, ok, err := repos.Clubs.GetByID(ctx, *t.ClubID)
		if err != nil || !ok {
			return "", err
		}
		return c.Name, nil
	case t.NationalCountryID != nil && t.ClubID == nil:
		c, ok, err := repos.Countries.GetByID(ctx, *t.NationalCountryID)
		if err != nil || !ok {
			return "", err
		}
		return c.Name, nil
	default:
		return "", nil
	}
}

func (TeamImporter) Upsert(ctx context.Context, repos ImportRepositories, t team.Team) (bool, error) {
	_, inserted, err := repos.Teams.Upsert(ctx, t)
	return inserted, err
}
