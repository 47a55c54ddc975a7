package usecase

import (
	"context"
	"strings"

	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/domain/team"
	"github.com/mouxlas21/football-db/internal/platform/coerce"
	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

// resolveStep looks a trimmed, non-blank token up one way. A nil id means "try the next step".
type resolveStep func(ctx context.Context, token string) (*int64, error)

// resolverChain turns a reference token into a primary key. Integer tokens are ids and are
// returned without a lookup; otherwise the steps run in order and the first hit wins.
// Nothing is ever created and no match is not an error.
type resolverChain []resolveStep

func (c resolverChain) resolve(ctx context.Context, raw string) (*int64, error) {
	if id := coerce.ToInt64(raw); id != nil {
		return id, nil
	}
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil, nil
	}
	for _, step := range c {
		id, err := step(ctx, token)
		if err != nil || id != nil {
			return id, err
		}
	}
	return nil, nil
}

// byKey matches a short code exactly after normalize.
func byKey(find func(ctx context.Context, key string) (int64, bool, error), normalize func(string) string) resolveStep {
	return func(ctx context.Context, token string) (*int64, error) {
		id, ok, err := find(ctx, normalize(token))
		if err != nil || !ok {
			return nil, err
		}
		return &id, nil
	}
}

// byUniqueName matches a case-insensitive name and only accepts a single hit.
func byUniqueName(find func(ctx context.Context, name string) ([]int64, error)) resolveStep {
	return func(ctx context.Context, token string) (*int64, error) {
		ids, err := find(ctx, token)
		if err != nil {
			return nil, err
		}
		return uniqueID(ids), nil
	}
}

func uniqueID(ids []int64) *int64 {
	if len(ids) != 1 {
		return nil
	}
	id := ids[0]
	return &id
}

// resolvers binds the lookup chains to the repositories of one transaction. Chains are built
// per call so a lookup only touches the repository it needs.
type resolvers struct {
	repos ImportRepositories
}

func newResolvers(repos ImportRepositories) resolvers {
	return resolvers{repos: repos}
}

func (r resolvers) Country(ctx context.Context, raw string) (*int64, error) {
	return resolverChain{
		byKey(r.repos.Countries.FindIDByFIFACode, strings.ToUpper),
		byUniqueName(r.repos.Countries.FindIDsByName),
	}.resolve(ctx, raw)
}

func (r resolvers) Association(ctx context.Context, raw string) (*int64, error) {
	return resolverChain{
		byKey(r.repos.Associations.FindIDByCode, strings.ToUpper),
		byUniqueName(r.repos.Associations.FindIDsByName),
	}.resolve(ctx, raw)
}

func (r resolvers) Club(ctx context.Context, raw string) (*int64, error) {
	return resolverChain{
		byUniqueName(r.repos.Clubs.FindIDsByName),
	}.resolve(ctx, raw)
}

func (r resolvers) Competition(ctx context.Context, raw string) (*int64, error) {
	return resolverChain{
		byKey(r.repos.Competitions.FindIDBySlug, strings.ToLower),
		byUniqueName(r.repos.Competitions.FindIDsByName),
	}.resolve(ctx, raw)
}

// resolveList resolves every token of a list cell, dropping unresolved tokens and duplicates.
func (r resolvers) resolveList(ctx context.Context, raw string, resolve func(context.Context, string) (*int64, error)) ([]int64, error) {
	var out []int64
	seen := make(map[int64]struct{})
	for _, token := range coerce.Tokens(raw) {
		id, err := resolve(ctx, token)
		if err != nil {
			return nil, err
		}
		if id == nil {
			continue
		}
		if _, dup := seen[*id]; dup {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out, nil
}

// Stadium prefers a (name, city) match, then a unique (name, country) match, then a globally
// unique name. Ambiguity at every level resolves to nil.
func (r resolvers) Stadium(ctx context.Context, raw string, city *string, countryID *int64) (*int64, error) {
	steps := resolverChain{}
	if city != nil {
		steps = append(steps, r.stadiumBy(func(name string) stadium.Query {
			return stadium.Query{Name: name, City: city}
		}))
	}
	if countryID != nil {
		steps = append(steps, r.stadiumBy(func(name string) stadium.Query {
			return stadium.Query{Name: name, CountryID: countryID}
		}))
	}
	steps = append(steps, r.stadiumBy(func(name string) stadium.Query {
		return stadium.Query{Name: name}
	}))
	return steps.resolve(ctx, raw)
}

func (r resolvers) stadiumBy(query func(name string) stadium.Query) resolveStep {
	return func(ctx context.Context, token string) (*int64, error) {
		ids, err := r.repos.Stadiums.FindIDs(ctx, query(token))
		if err != nil {
			return nil, err
		}
		return uniqueID(ids), nil
	}
}

// teamBucket identifies the default team of a club or country.
type teamBucket struct {
	Type      team.Type
	ClubID    *int64
	CountryID *int64
	AgeGroup  *string
	Gender    *string
}

// Team resolves an id, then the bucket when one is given, then a globally unique name.
func (r resolvers) Team(ctx context.Context, raw string, bucket *teamBucket) (*int64, error) {
	if id := coerce.ToInt64(raw); id != nil {
		return id, nil
	}
	if bucket != nil {
		id, err := r.teamInBucket(ctx, *bucket)
		if err != nil || id != nil {
			return id, err
		}
	}
	return resolverChain{
		byUniqueName(r.repos.Teams.FindIDsByName),
	}.resolve(ctx, raw)
}

func (r resolvers) teamInBucket(ctx context.Context, b teamBucket) (*int64, error) {
	var (
		ids []int64
		err error
	)
	switch {
	case b.Type == team.TypeClub && b.ClubID != nil:
		ids, err = r.repos.Teams.FindClubTeamIDs(ctx, *b.ClubID)
	case b.Type == team.TypeNational && b.CountryID != nil:
		ids, err = r.repos.Teams.FindNationalTeamIDs(ctx, *b.CountryID, b.AgeGroup, b.Gender)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return uniqueID(ids), nil
}

// teamBucketFromRow reads "<prefix>club" or "<prefix>country" columns into a bucket. A club
// wins when both are given.
func (r resolvers) teamBucketFromRow(ctx context.Context, row csvfile.Row, prefix string) (*teamBucket, error) {
	if token := row.Value(prefix+"club", prefix+"club_id"); token != "" {
		clubID, err := r.Club(ctx, token)
		if err != nil || clubID == nil {
			return nil, err
		}
		return &teamBucket{Type: team.TypeClub, ClubID: clubID}, nil
	}
	if token := row.Value(prefix+"country", prefix+"country_id", prefix+"national_country"); token != "" {
		countryID, err := r.Country(ctx, token)
		if err != nil || countryID == nil {
			return nil, err
		}
		return &teamBucket{
			Type:      team.TypeNational,
			CountryID: countryID,
			AgeGroup:  coerce.String(row.Value(prefix + "age_group")),
			Gender:    coerce.String(row.Value(prefix + "gender")),
		}, nil
	}
	return nil, nil
}

// Season resolves an id, or a season name within a competition. Without a competition token
// the name must be globally unique.
func (r resolvers) Season(ctx context.Context, raw, competitionRaw string) (*int64, error) {
	if id := coerce.ToInt64(raw); id != nil {
		return id, nil
	}
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil, nil
	}
	if strings.TrimSpace(competitionRaw) == "" {
		ids, err := r.repos.Seasons.FindIDsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return uniqueID(ids), nil
	}
	competitionID, err := r.Competition(ctx, competitionRaw)
	if err != nil || competitionID == nil {
		return nil, err
	}
	id, ok, err := r.repos.Seasons.FindID(ctx, *competitionID, name)
	if err != nil || !ok {
		return nil, err
	}
	return &id, nil
}

// Stage resolves an id, or a stage name within a resolved season.
func (r resolvers) Stage(ctx context.Context, raw string, seasonID *int64) (*int64, error) {
	return r.childByName(ctx, raw, seasonID, r.repos.Stages.FindStageID)
}

// Round resolves an id, or a round name within a resolved stage.
func (r resolvers) Round(ctx context.Context, raw string, stageID *int64) (*int64, error) {
	return r.childByName(ctx, raw, stageID, r.repos.Stages.FindRoundID)
}

// Group resolves an id, or a unique group name or code within a resolved stage.
func (r resolvers) Group(ctx context.Context, raw string, stageID *int64) (*int64, error) {
	if id := coerce.ToInt64(raw); id != nil {
		return id, nil
	}
	token := strings.TrimSpace(raw)
	if token == "" || stageID == nil {
		return nil, nil
	}
	ids, err := r.repos.Stages.FindGroupIDs(ctx, *stageID, token)
	if err != nil {
		return nil, err
	}
	return uniqueID(ids), nil
}

func (r resolvers) childByName(
	ctx context.Context,
	raw string,
	parentID *int64,
	find func(ctx context.Context, parentID int64, name string) (int64, bool, error),
) (*int64, error) {
	if id := coerce.ToInt64(raw); id != nil {
		return id, nil
	}
	name := strings.TrimSpace(raw)
	if name == "" || parentID == nil {
		return nil, nil
	}
	id, ok, err := find(ctx, *parentID, name)
	if err != nil || !ok {
		return nil, err
	}
	return &id, nil
}

// Column aliases of the season structure chain.
var (
	competitionColumns = []string{"competition_id", "competition", "competition_name", "competition_slug"}
	seasonColumns      = []string{"season_id", "season", "season_name"}
	stageColumns       = []string{"stage_id", "stage", "stage_name"}
	roundColumns       = []string{"stage_round_id", "round_id", "round", "round_name", "stage_round"}
)

// seasonFromRow resolves the season named by a row's season and competition columns.
func (r resolvers) seasonFromRow(ctx context.Context, row csvfile.Row) (*int64, error) {
	return r.Season(ctx, row.Value(seasonColumns...), row.Value(competitionColumns...))
}

// stageFromRow resolves stage_id directly, or walks competition, season and stage names.
func (r resolvers) stageFromRow(ctx context.Context, row csvfile.Row) (*int64, error) {
	token := row.Value(stageColumns...)
	if id := coerce.ToInt64(token); id != nil {
		return id, nil
	}
	if token == "" {
		return nil, nil
	}
	seasonID, err := r.seasonFromRow(ctx, row)
	if err != nil {
		return nil, err
	}
	return r.Stage(ctx, token, seasonID)
}

// roundFromRow resolves stage_round_id directly, or walks the chain down to the round name.
func (r resolvers) roundFromRow(ctx context.Context, row csvfile.Row) (*int64, error) {
	token := row.Value(roundColumns...)
	if id := coerce.ToInt64(token); id != nil {
		return id, nil
	}
	if token == "" {
		return nil, nil
	}
	stageID, err := r.stageFromRow(ctx, row)
	if err != nil {
		return nil, err
	}
	return r.Round(ctx, token, stageID)
}
