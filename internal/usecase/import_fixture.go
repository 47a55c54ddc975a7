package usecase

import (
	"context"
	"strings"

	"github.com/mouxlas21/football-db/internal/domain/fixture"
	"github.com/mouxlas21/football-db/internal/platform/coerce"
	"github.com/mouxlas21/football-db/internal/platform/csvfile"
)

// FixtureImporter loads matches. The identity of a fixture is (round, home, away, kickoff);
// re-importing a known fixture patches its result, venue and group in place.
type FixtureImporter struct{}

func (FixtureImporter) ParseRow(ctx context.Context, repos ImportRepositories, row csvfile.Row) (fixture.Fixture, bool, error) {
	r := newResolvers(repos)

	roundID, err := r.roundFromRow(ctx, row)
	if err != nil || roundID == nil {
		return fixture.Fixture{}, false, err
	}
	kickoff := coerce.ToDateTime(row.Value("kickoff_utc", "kickoff", "datetime", "date"))
	if kickoff == nil {
		return fixture.Fixture{}, false, nil
	}
	homeID, err := fixtureTeam(ctx, r, row, "home")
	if err != nil || homeID == nil {
		return fixture.Fixture{}, false, err
	}
	awayID, err := fixtureTeam(ctx, r, row, "away")
	if err != nil || awayID == nil {
		return fixture.Fixture{}, false, err
	}

	f := fixture.Fixture{
		StageRoundID: *roundID,
		HomeTeamID:   *homeID,
		AwayTeamID:   *awayID,
		KickoffUTC:   *kickoff,
		Attendance:   coerce.ToInt(row.Value("attendance")),
		HTHomeScore:  coerce.ToInt(row.Value("ht_home_score")),
		HTAwayScore:  coerce.ToInt(row.Value("ht_away_score")),
		FTHomeScore:  coerce.ToInt(row.Value("ft_home_score")),
		FTAwayScore:  coerce.ToInt(row.Value("ft_away_score")),
		ETHomeScore:  coerce.ToInt(row.Value("et_home_score")),
		ETAwayScore:  coerce.ToInt(row.Value("et_away_score")),
		PenHomeScore: coerce.ToInt(row.Value("pen_home_score")),
		PenAwayScore: coerce.ToInt(row.Value("pen_away_score")),
	}

	outcome := fixture.DecideOutcome(fixture.Scores{
		HTHome: f.HTHomeScore, HTAway: f.HTAwayScore,
		FTHome: f.FTHomeScore, FTAway: f.FTAwayScore,
		ETHome: f.ETHomeScore, ETAway: f.ETAwayScore,
		PenHome: f.PenHomeScore, PenAway: f.PenAwayScore,
		Home:            coerce.ToInt(row.Value("home_score")),
		Away:            coerce.ToInt(row.Value("away_score")),
		WentToExtraTime: coerce.ParseBool(row.Value("went_to_extra_time", "extra_time")),
		WentToPenalties: coerce.ParseBool(row.Value("went_to_penalties", "penalties")),
		Status:          row.Value("status", "fixture_status"),
	})
	f.HomeScore = outcome.HomeScore
	f.AwayScore = outcome.AwayScore
	f.Status = outcome.Status
	f.WentToExtraTime = outcome.WentToExtraTime
	f.WentToPenalties = outcome.WentToPenalties

	if f.WinnerTeamID, err = fixtureWinner(ctx, r, row, f); err != nil {
		return fixture.Fixture{}, false, err
	}
	if f.WinnerTeamID == nil {
		f.WinnerTeamID = outcome.WinnerID(f.HomeTeamID, f.AwayTeamID)
	}
	if f.GroupID, err = fixtureGroup(ctx, r, row, f); err != nil {
		return fixture.Fixture{}, false, err
	}
	if f.StadiumID, err = fixtureStadium(ctx, r, row, f.HomeTeamID); err != nil {
		return fixture.Fixture{}, false, err
	}
	return f, true, nil
}

func (FixtureImporter) Upsert(ctx context.Context, repos ImportRepositories, f fixture.Fixture) (bool, error) {
	id, ok, err := repos.Fixtures.FindIDByKey(ctx, f.Key())
	if err != nil {
		return false, err
	}
	if ok {
		f.ID = id
		return false, repos.Fixtures.PatchResult(ctx, f)
	}
	if _, err := repos.Fixtures.Create(ctx, f); err != nil {
		return false, err
	}
	return true, nil
}

func fixtureTeam(ctx context.Context, r resolvers, row csvfile.Row, side string) (*int64, error) {
	bucket, err := r.teamBucketFromRow(ctx, row, side+"_")
	if err != nil {
		return nil, err
	}
	return r.Team(ctx, row.Value(side+"_team_id", side+"_team", side), bucket)
}

// fixtureWinner reads an explicit winner: a team reference or the words home/away.
func fixtureWinner(ctx context.Context, r resolvers, row csvfile.Row, f fixture.Fixture) (*int64, error) {
	token := row.Value("winner_team_id", "winner_team", "winner")
	switch strings.ToLower(token) {
	case "":
		return nil, nil
	case "home":
		return &f.HomeTeamID, nil
	case "away":
		return &f.AwayTeamID, nil
	}
	return r.Team(ctx, token, nil)
}

// fixtureGroup resolves an explicit group within the round's stage, or infers the single
// group of that stage both teams belong to.
func fixtureGroup(ctx context.Context, r resolvers, row csvfile.Row, f fixture.Fixture) (*int64, error) {
	token := row.Value("group_id", "stage_group_id", "group", "group_name")
	if id := coerce.ToInt64(token); id != nil {
		return id, nil
	}

	round, ok, err := r.repos.Stages.GetRound(ctx, f.StageRoundID)
	if err != nil || !ok {
		return nil, err
	}
	if token != "" {
		return r.Group(ctx, token, &round.StageID)
	}

	homeGroups, err := r.repos.Stages.GroupIDsForTeam(ctx, round.StageID, f.HomeTeamID)
	if err != nil || len(homeGroups) == 0 {
		return nil, err
	}
	awayGroups, err := r.repos.Stages.GroupIDsForTeam(ctx, round.StageID, f.AwayTeamID)
	if err != nil {
		return nil, err
	}
	shared := make(map[int64]struct{}, len(homeGroups))
	for _, id := range homeGroups {
		shared[id] = struct{}{}
	}
	var common []int64
	for _, id := range awayGroups {
		if _, ok := shared[id]; ok {
			common = append(common, id)
		}
	}
	return uniqueID(common), nil
}

// fixtureStadium resolves the venue cell, falling back to the home club's stadium.
func fixtureStadium(ctx context.Context, r resolvers, row csvfile.Row, homeTeamID int64) (*int64, error) {
	id, err := r.Stadium(ctx, row.Value("stadium_id", "stadium", "stadium_name", "venue"), coerce.String(row.Value("stadium_city", "city")), nil)
	if err != nil || id != nil {
		return id, err
	}

	home, ok, err := r.repos.Teams.GetByID(ctx, homeTeamID)
	if err != nil || !ok || home.ClubID == nil {
		return nil, err
	}
	c, ok, err := r.repos.Clubs.GetByID(ctx, *home.ClubID)
	if err != nil || !ok {
		return nil, err
	}
	return c.StadiumID, nil
}
