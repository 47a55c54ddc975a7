package usecase

import (
	"context"

	"github.com/mouxlas21/football-db/internal/domain/person"
	"github.com/mouxlas21/football-db/internal/platform/coerce"
	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

// parsePerson reads the person columns shared by every people file. Rows without a usable
// full name are rejected.
func parsePerson(ctx context.Context, repos ImportRepositories, row csvfile.Row) (person.Person, bool, error) {
	fullName := person.DisplayName(
		row.Value("full_name", "name", "person_name"),
		row.Value("first_name"),
		row.Value("last_name"),
	)
	if fullName == "" {
		return person.Person{}, false, nil
	}

	r := newResolvers(repos)
	countryID, err := r.Country(ctx, row.Value("country_id", "country", "nationality", "country_code"))
	if err != nil {
		return person.Person{}, false, err
	}
	secondCountryID, err := r.Country(ctx, row.Value("second_country_id", "second_country", "second_nationality"))
	if err != nil {
		return person.Person{}, false, err
	}

	return person.Person{
		FullName:        fullName,
		FirstName:       coerce.String(row.Value("first_name")),
		LastName:        coerce.String(row.Value("last_name")),
		KnownAs:         coerce.String(row.Value("known_as", "nickname")),
		BirthDate:       coerce.ToDate(row.Value("birth_date", "date_of_birth", "dob")),
		BirthPlace:      coerce.String(row.Value("birth_place", "place_of_birth")),
		CountryID:       countryID,
		SecondCountryID: secondCountryID,
		Gender:          coerce.Lower(row.Value("gender")),
		HeightCM:        coerce.ToInt(row.Value("height_cm", "height")),
		WeightKG:        coerce.ToInt(row.Value("weight_kg", "weight")),
		PhotoURL:        coerce.String(row.Value("photo_url", "photo")),
	}, true, nil
}

// ensurePerson finds the person through the matcher, patching it, or creates a new one.
func ensurePerson(ctx context.Context, repos ImportRepositories, matcher PersonMatcher, p person.Person) (int64, bool, error) {
	id, err := matcher.Match(ctx, repos.People, p)
	if err != nil {
		return 0, false, err
	}
	if id != nil {
		p.ID = *id
		return p.ID, false, repos.People.Patch(ctx, p)
	}
	created, err := repos.People.Create(ctx, p)
	if err != nil {
		return 0, false, err
	}
	return created, true, nil
}

// PersonImporter loads people without any role.
type PersonImporter struct {
	Matcher PersonMatcher
}

func (PersonImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (person.Person, bool, error) {
	return parsePerson(ctx, repos, row)
}

func (i PersonImporter) Upsert(ctx context.Context, repos ImportRepositories, p person.Person) (bool, error) {
	_, created, err := ensurePerson(ctx, repos, i.Matcher, p)
	return created, err
}

type playerRecord struct {
	Person person.Person
	Player person.Player
}

// PlayerImporter loads players; the person is matched or created first.
type PlayerImporter struct {
	Matcher PersonMatcher
}

func (PlayerImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (playerRecord, bool, error) {
	p, ok, err := parsePerson(ctx, repos, row)
	if err != nil || !ok {
		return playerRecord{}, false, err
	}
	return playerRecord{
		Person: p,
		Player: person.Player{
			Position: coerce.String(row.Value("position", "player_position")),
			Active:   coerce.ToBool(row.Value("active", "player_active"), true),
		},
	}, true, nil
}

func (i PlayerImporter) Upsert(ctx context.Context, repos ImportRepositories, rec playerRecord) (bool, error) {
	personID, _, err := ensurePerson(ctx, repos, i.Matcher, rec.Person)
	if err != nil {
		return false, err
	}
	rec.Player.PersonID = personID
	return repos.People.UpsertPlayer(ctx, rec.Player)
}

type coachRecord struct {
	Person person.Person
	Coach  person.Coach
}

// CoachImporter loads coaching staff.
type CoachImporter struct {
	Matcher PersonMatcher
}

func (CoachImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (coachRecord, bool, error) {
	p, ok, err := parsePerson(ctx, repos, row)
	if err != nil || !ok {
		return coachRecord{}, false, err
	}
	return coachRecord{
		Person: p,
		Coach: person.Coach{
			RoleDefault: coerce.String(row.Value("role_default", "role")),
			Active:      coerce.ToBool(row.Value("active", "coach_active"), true),
		},
	}, true, nil
}

func (i CoachImporter) Upsert(ctx context.Context, repos ImportRepositories, rec coachRecord) (bool, error) {
	personID, _, err := ensurePerson(ctx, repos, i.Matcher, rec.Person)
	if err != nil {
		return false, err
	}
	rec.Coach.PersonID = personID
	return repos.People.UpsertCoach(ctx, rec.Coach)
}

type officialRecord struct {
	Person   person.Person
	Official person.Official
}

// OfficialImporter loads referees and other match officials.
type OfficialImporter struct {
	Matcher PersonMatcher
}

func (OfficialImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (officialRecord, bool, error) {
	p, ok, err := parsePerson(ctx, repos, row)
	if err != nil || !ok {
		return officialRecord{}, false, err
	}
	associationID, err := newResolvers(repos).Association(ctx, row.Value("association_id", "association", "federation"))
	if err != nil {
		return officialRecord{}, false, err
	}
	return officialRecord{
		Person: p,
		Official: person.Official{
			AssociationID: associationID,
			Roles:         coerce.String(row.Value("roles", "role")),
			Active:        coerce.ToBool(row.Value("active", "official_active"), true),
		},
	}, true, nil
}

func (i OfficialImporter) Upsert(ctx context.Context, repos ImportRepositories, rec officialRecord) (bool, error) {
	personID, _, err := ensurePerson(ctx, repos, i.Matcher, rec.Person)
	if err != nil {
		return false, err
	}
	rec.Official.PersonID = personID
	return repos.People.UpsertOfficial(ctx, rec.Official)
}
