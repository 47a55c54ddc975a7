package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/mouxlas21/football-db/internal/domain/association"
	"github.com/mouxlas21/football-db/internal/domain/club"
	"github.com/mouxlas21/football-db/internal/domain/competition"
	"github.com/mouxlas21/football-db/internal/domain/country"
	"github.com/mouxlas21/football-db/internal/domain/fixture"
	"github.com/mouxlas21/football-db/internal/domain/person"
	"github.com/mouxlas21/football-db/internal/domain/season"
	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/domain/stage"
	"github.com/mouxlas21/football-db/internal/domain/team"
	"github.com/mouxlas21/football-db/internal/usecase"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrRowNotFound         = errors.New("row not found")
	ErrTxDone              = errors.New("transaction already finished")
)

type tables struct {
	nextID int64

	associations       map[int64]association.Association
	associationParents map[int64][]int64
	countries          map[int64]country.Country
	countrySubConfeds  map[int64][]int64
	stadiums           map[int64]stadium.Stadium
	clubs              map[int64]club.Club
	competitions       map[int64]competition.Competition
	teams              map[int64]team.Team
	seasons            map[int64]season.Season
	pointsRules        map[int64]season.PointsRule
	stages             map[int64]stage.Stage
	rounds             map[int64]stage.Round
	groups             map[int64]stage.Group
	groupTeams         map[stage.GroupTeam]struct{}
	people             map[int64]person.Person
	players            map[int64]person.Player
	coaches            map[int64]person.Coach
	officials          map[int64]person.Official
	fixtures           map[int64]fixture.Fixture
}

func newTables() *tables {
	return &tables{
		associations:       map[int64]association.Association{},
		associationParents: map[int64][]int64{},
		countries:          map[int64]country.Country{},
		countrySubConfeds:  map[int64][]int64{},
		stadiums:           map[int64]stadium.Stadium{},
		clubs:              map[int64]club.Club{},
		competitions:       map[int64]competition.Competition{},
		teams:              map[int64]team.Team{},
		seasons:            map[int64]season.Season{},
		pointsRules:        map[int64]season.PointsRule{},
		stages:             map[int64]stage.Stage{},
		rounds:             map[int64]stage.Round{},
		groups:             map[int64]stage.Group{},
		groupTeams:         map[stage.GroupTeam]struct{}{},
		people:             map[int64]person.Person{},
		players:            map[int64]person.Player{},
		coaches:            map[int64]person.Coach{},
		officials:          map[int64]person.Official{},
		fixtures:           map[int64]fixture.Fixture{},
	}
}

// clone copies every table. Stored values are replaced, never mutated, so copying the maps
// is enough.
func (t *tables) clone() *tables {
	return &tables{
		nextID:             t.nextID,
		associations:       maps.Clone(t.associations),
		associationParents: maps.Clone(t.associationParents),
		countries:          maps.Clone(t.countries),
		countrySubConfeds:  maps.Clone(t.countrySubConfeds),
		stadiums:           maps.Clone(t.stadiums),
		clubs:              maps.Clone(t.clubs),
		competitions:       maps.Clone(t.competitions),
		teams:              maps.Clone(t.teams),
		seasons:            maps.Clone(t.seasons),
		pointsRules:        maps.Clone(t.pointsRules),
		stages:             maps.Clone(t.stages),
		rounds:             maps.Clone(t.rounds),
		groups:             maps.Clone(t.groups),
		groupTeams:         maps.Clone(t.groupTeams),
		people:             maps.Clone(t.people),
		players:            maps.Clone(t.players),
		coaches:            maps.Clone(t.coaches),
		officials:          maps.Clone(t.officials),
		fixtures:           maps.Clone(t.fixtures),
	}
}

func (t *tables) newID() int64 {
	t.nextID++
	return t.nextID
}

// Store is a transactional in-memory store. Transactions are serialised: Begin blocks until
// the previous transaction commits or rolls back.
type Store struct {
	mu   sync.Mutex
	data *tables
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

func (s *Store) Begin(ctx context.Context) (usecase.ImportTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &Tx{store: s, work: s.data.clone()}, nil
}

// Tx works on a private copy of the tables that replaces the store's on commit. Writes made
// inside a savepoint are journaled so a failed row undoes only what it touched.
type Tx struct {
	store *Store
	work  *tables
	undo  *[]func()
	done  bool
}

func (tx *Tx) Repositories() usecase.ImportRepositories {
	return usecase.ImportRepositories{
		Associations: &AssociationRepository{tx: tx},
		Countries:    &CountryRepository{tx: tx},
		Stadiums:     &StadiumRepository{tx: tx},
		Clubs:        &ClubRepository{tx: tx},
		Competitions: &CompetitionRepository{tx: tx},
		Teams:        &TeamRepository{tx: tx},
		Seasons:      &SeasonRepository{tx: tx},
		Stages:       &StageRepository{tx: tx},
		People:       &PersonRepository{tx: tx},
		Fixtures:     &FixtureRepository{tx: tx},
	}
}

func (tx *Tx) Savepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx.done {
		return fmt.Errorf("%w: %w", usecase.ErrTxBroken, ErrTxDone)
	}
	var undo []func()
	outer, nextID := tx.undo, tx.work.nextID
	tx.undo = &undo
	err := fn(ctx)
	tx.undo = outer
	if err != nil {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		tx.work.nextID = nextID
		return err
	}
	if outer != nil {
		*outer = append(*outer, undo...)
	}
	return nil
}

// put writes rows[key], journaling the previous value while a savepoint is open.
func put[K comparable, V any](tx *Tx, rows map[K]V, key K, value V) {
	journal(tx, rows, key)
	rows[key] = value
}

func remove[K comparable, V any](tx *Tx, rows map[K]V, key K) {
	journal(tx, rows, key)
	delete(rows, key)
}

func journal[K comparable, V any](tx *Tx, rows map[K]V, key K) {
	if tx.undo == nil {
		return
	}
	old, had := rows[key]
	*tx.undo = append(*tx.undo, func() {
		if had {
			rows[key] = old
		} else {
			delete(rows, key)
		}
	})
}

func (tx *Tx) Commit(_ context.Context) error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true
	tx.store.data = tx.work
	tx.store.mu.Unlock()
	return nil
}

func (tx *Tx) Rollback(_ context.Context) error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.store.mu.Unlock()
	return nil
}

func (tx *Tx) tables() *tables {
	return tx.work
}

// matchIDs returns the ids of rows that keep accepts, ascending.
func matchIDs[T any](rows map[int64]T, keep func(T) bool) []int64 {
	var out []int64
	for id, row := range rows {
		if keep(row) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func exists[T any](rows map[int64]T, id *int64) bool {
	if id == nil {
		return true
	}
	_, ok := rows[*id]
	return ok
}
