package usecase

import (
	"context"
	"errors"

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
)

// ErrTxBroken marks a transaction the store can no longer use, such as a failed savepoint.
// The batch is aborted instead of moving on to the next row.
var ErrTxBroken = errors.New("import transaction broken")

// ImportRepositories is the set of repositories bound to one transaction.
type ImportRepositories struct {
	Associations association.Repository
	Countries    country.Repository
	Stadiums     stadium.Repository
	Clubs        club.Repository
	Competitions competition.Repository
	Teams        team.Repository
	Seasons      season.Repository
	Stages       stage.Repository
	People       person.Repository
	Fixtures     fixture.Repository
}

// ImportStore opens the transaction a batch runs in.
type ImportStore interface {
	Begin(ctx context.Context) (ImportTx, error)
}

// ImportTx is one batch transaction. Reads through Repositories see earlier writes of the
// same transaction.
type ImportTx interface {
	Repositories() ImportRepositories
	// Savepoint runs fn and undoes only fn's writes when it returns an error. The
	// transaction itself stays usable.
	Savepoint(ctx context.Context, fn func(ctx context.Context) error) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// withImportTx runs fn in a fresh transaction, committing on success.
func withImportTx(ctx context.Context, store ImportStore, fn func(ctx context.Context, tx ImportTx) error) error {
	tx, err := store.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
