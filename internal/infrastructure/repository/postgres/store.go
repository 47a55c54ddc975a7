package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mouxlas21/football-db/internal/platform/logging"
	"github.com/mouxlas21/football-db/internal/usecase"
)

// Store opens one database transaction per import batch.
type Store struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewStore(db *sqlx.DB, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{db: db, logger: logger}
}

func (s *Store) Begin(ctx context.Context) (usecase.ImportTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %v", usecase.ErrDependencyUnavailable, err)
	}
	return &Tx{tx: tx, logger: s.logger}, nil
}

// Tx wraps a *sqlx.Tx. Savepoints are numbered per transaction.
type Tx struct {
	tx         *sqlx.Tx
	logger     *logging.Logger
	savepoints int
}

func (t *Tx) Repositories() usecase.ImportRepositories {
	return usecase.ImportRepositories{
		Associations: &AssociationRepository{db: t.tx},
		Countries:    &CountryRepository{db: t.tx},
		Stadiums:     &StadiumRepository{db: t.tx},
		Clubs:        &ClubRepository{db: t.tx},
		Competitions: &CompetitionRepository{db: t.tx},
		Teams:        &TeamRepository{db: t.tx},
		Seasons:      &SeasonRepository{db: t.tx},
		Stages:       &StageRepository{db: t.tx},
		People:       &PersonRepository{db: t.tx},
		Fixtures:     &FixtureRepository{db: t.tx},
	}
}

// Savepoint runs fn between SAVEPOINT and RELEASE, rolling back to the savepoint when fn fails
// so the transaction stays usable for the next row.
func (t *Tx) Savepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	t.savepoints++
	name := fmt.Sprintf("import_row_%d", t.savepoints)

	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("%w: create savepoint %s: %w", usecase.ErrTxBroken, name, err)
	}
	if err := fn(ctx); err != nil {
		if _, rbErr := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
			t.logger.ErrorContext(ctx, "rollback to savepoint failed", "savepoint", name, "error", rbErr)
			return fmt.Errorf("%w: rollback to savepoint %s: %w", usecase.ErrTxBroken, name, rbErr)
		}
		return mapError(err)
	}
	if _, err := t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return fmt.Errorf("%w: release savepoint %s: %w", usecase.ErrTxBroken, name, err)
	}
	return nil
}

func (t *Tx) Commit(_ context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

// Rollback is a no-op once the transaction has been committed.
func (t *Tx) Rollback(_ context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			return nil
		}
		return fmt.Errorf("rollback import tx: %w", err)
	}
	return nil
}
