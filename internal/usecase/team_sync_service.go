package usecase

import (
	"context"
	"errors"

	"github.com/mouxlas21/football-db/internal/domain/team"
	"github.com/mouxlas21/football-db/internal/platform/logging"
)

type TeamSyncResult struct {
	ClubTeamsCreated     int `json:"club_teams_created"`
	ClubTeamsRenamed     int `json:"club_teams_renamed"`
	NationalTeamsCreated int `json:"national_teams_created"`
	NationalTeamsRenamed int `json:"national_teams_renamed"`
	RenamesSkipped       int `json:"renames_skipped"`
}

// TeamSyncService makes sure every club and country has its default team.
type TeamSyncService struct {
	store  ImportStore
	logger *logging.Logger
}

func NewTeamSyncService(store ImportStore, logger *logging.Logger) *TeamSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamSyncService{store: store, logger: logger}
}

// Sync creates a senior men's first team for each club without a club team and an
// unqualified national team for each country without one. A club with exactly one club
// team, and a country with exactly one unqualified national team, gets that team renamed
// to its own name. A rename that collides with an existing team of the same type is logged
// and skipped. Running it twice changes nothing the second time.
func (s *TeamSyncService) Sync(ctx context.Context) (TeamSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamSyncService.Sync")
	defer span.End()

	var result TeamSyncResult
	err := withImportTx(ctx, s.store, func(ctx context.Context, tx ImportTx) error {
		if err := s.syncClubTeams(ctx, tx, &result); err != nil {
			return err
		}
		return s.syncNationalTeams(ctx, tx, &result)
	})
	if err != nil {
		return TeamSyncResult{}, err
	}

	s.logger.InfoContext(ctx, "team sync done",
		"club_created", result.ClubTeamsCreated,
		"club_renamed", result.ClubTeamsRenamed,
		"national_created", result.NationalTeamsCreated,
		"national_renamed", result.NationalTeamsRenamed,
		"renames_skipped", result.RenamesSkipped,
	)
	return result, nil
}

func (s *TeamSyncService) syncClubTeams(ctx context.Context, tx ImportTx, result *TeamSyncResult) error {
	repos := tx.Repositories()
	clubs, err := repos.Clubs.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range clubs {
		ids, err := repos.Teams.FindClubTeamIDs(ctx, c.ID)
		if err != nil {
			return err
		}
		switch len(ids) {
		case 0:
			clubID := c.ID
			gender, ageGroup, squad := team.DefaultClubGender, team.DefaultClubAgeGroup, team.DefaultClubSquadLevel
			if _, _, err := repos.Teams.Upsert(ctx, team.Team{
				Name:       c.Name,
				Type:       team.TypeClub,
				ClubID:     &clubID,
				Gender:     &gender,
				AgeGroup:   &ageGroup,
				SquadLevel: &squad,
			}); err != nil {
				return err
			}
			result.ClubTeamsCreated++
		case 1:
			renamed, err := s.rename(ctx, tx, ids[0], c.Name, result)
			if err != nil {
				return err
			}
			if renamed {
				result.ClubTeamsRenamed++
			}
		}
	}
	return nil
}

func (s *TeamSyncService) syncNationalTeams(ctx context.Context, tx ImportTx, result *TeamSyncResult) error {
	repos := tx.Repositories()
	countries, err := repos.Countries.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range countries {
		ids, err := repos.Teams.FindNationalTeamIDs(ctx, c.ID, nil, nil)
		if err != nil {
			return err
		}
		switch len(ids) {
		case 0:
			countryID := c.ID
			squad := team.DefaultClubSquadLevel
			if _, _, err := repos.Teams.Upsert(ctx, team.Team{
				Name:              c.Name,
				Type:              team.TypeNational,
				NationalCountryID: &countryID,
				SquadLevel:        &squad,
			}); err != nil {
				return err
			}
			result.NationalTeamsCreated++
		case 1:
			renamed, err := s.rename(ctx, tx, ids[0], c.Name, result)
			if err != nil {
				return err
			}
			if renamed {
				result.NationalTeamsRenamed++
			}
		}
	}
	return nil
}

// rename runs renameTeam in a savepoint. Any failure other than a broken transaction skips
// the team.
func (s *TeamSyncService) rename(ctx context.Context, tx ImportTx, id int64, name string, result *TeamSyncResult) (bool, error) {
	var renamed bool
	err := tx.Savepoint(ctx, func(ctx context.Context) error {
		var err error
		renamed, err = renameTeam(ctx, tx.Repositories().Teams, id, name)
		return err
	})
	switch {
	case errors.Is(err, ErrTxBroken):
		return false, err
	case err != nil:
		s.logger.WarnContext(ctx, "team rename skipped", "team_id", id, "name", name, "error", err)
		result.RenamesSkipped++
		return false, nil
	}
	return renamed, nil
}

func renameTeam(ctx context.Context, teams team.Repository, id int64, name string) (bool, error) {
	t, ok, err := teams.GetByID(ctx, id)
	if err != nil || !ok || t.Name == name {
		return false, err
	}
	return true, teams.Rename(ctx, id, name)
}
