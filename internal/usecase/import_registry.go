package usecase

import (
	"fmt"
	"sort"

	"github.com/mouxlas21/football-db/internal/domain/club"
	"github.com/mouxlas21/football-db/internal/domain/competition"
	"github.com/mouxlas21/football-db/internal/domain/fixture"
	"github.com/mouxlas21/football-db/internal/domain/person"
	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/domain/stage"
	"github.com/mouxlas21/football-db/internal/domain/team"
)

// ImportRegistry maps entity kinds to their importers. It is built once at startup.
type ImportRegistry struct {
	importers map[EntityKind]Importer
}

func NewImportRegistry(importers ...Importer) *ImportRegistry {
	r := &ImportRegistry{importers: make(map[EntityKind]Importer, len(importers))}
	for _, importer := range importers {
		r.importers[importer.Kind()] = importer
	}
	return r
}

// DefaultImportRegistry registers every reference-data importer. A nil matcher uses
// NameBirthDateMatcher.
func DefaultImportRegistry(matcher PersonMatcher) *ImportRegistry {
	if matcher == nil {
		matcher = NameBirthDateMatcher{}
	}
	return NewImportRegistry(
		NewImporter[associationRecord](EntityAssociation, AssociationImporter{}),
		NewImporter[countryRecord](EntityCountry, CountryImporter{}),
		NewImporter[stadium.Stadium](EntityStadium, StadiumImporter{}),
		NewImporter[club.Club](EntityClub, ClubImporter{}),
		NewImporter[competition.Competition](EntityCompetition, CompetitionImporter{}),
		NewImporter[team.Team](EntityTeam, TeamImporter{}),
		NewImporter[person.Person](EntityPerson, PersonImporter{Matcher: matcher}),
		NewImporter[playerRecord](EntityPlayer, PlayerImporter{Matcher: matcher}),
		NewImporter[coachRecord](EntityCoach, CoachImporter{Matcher: matcher}),
		NewImporter[officialRecord](EntityOfficial, OfficialImporter{Matcher: matcher}),
		NewImporter[seasonRecord](EntitySeason, SeasonImporter{}),
		NewImporter[stage.Stage](EntityStage, StageImporter{}),
		NewImporter[stage.Round](EntityStageRound, StageRoundImporter{}),
		NewImporter[stage.Group](EntityStageGroup, StageGroupImporter{}),
		NewImporter[stage.GroupTeam](EntityStageGroupTeam, StageGroupTeamImporter{}),
		NewImporter[fixture.Fixture](EntityFixture, FixtureImporter{}),
	)
}

// Lookup returns the importer for kind, or ErrNoImporter for kinds that are planned but not
// importable.
func (r *ImportRegistry) Lookup(kind EntityKind) (Importer, error) {
	importer, ok := r.importers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoImporter, kind)
	}
	return importer, nil
}

// LookupName parses an entity name and looks its importer up.
func (r *ImportRegistry) LookupName(name string) (Importer, error) {
	kind, err := ParseEntityKind(name)
	if err != nil {
		return nil, err
	}
	return r.Lookup(kind)
}

func (r *ImportRegistry) Has(kind EntityKind) bool {
	_, ok := r.importers[kind]
	return ok
}

// Kinds lists the importable kinds in phase order.
func (r *ImportRegistry) Kinds() []EntityKind {
	out := make([]EntityKind, 0, len(r.importers))
	for kind := range r.importers {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Phase() != out[j].Phase() {
			return out[i].Phase() < out[j].Phase()
		}
		return out[i] < out[j]
	})
	return out
}

// EntityInfo describes one catalogued entity kind.
type EntityInfo struct {
	Entity     EntityKind `json:"entity"`
	Phase      int        `json:"phase"`
	Aliases    []string   `json:"aliases"`
	Importable bool       `json:"importable"`
}

// Catalogue lists every known entity kind in phase order.
func (r *ImportRegistry) Catalogue() []EntityInfo {
	kinds := AllEntityKinds()
	out := make([]EntityInfo, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, EntityInfo{
			Entity:     kind,
			Phase:      kind.Phase(),
			Aliases:    kind.Aliases(),
			Importable: r.Has(kind),
		})
	}
	return out
}
