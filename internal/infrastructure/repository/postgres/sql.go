package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	qb "github.com/mouxlas21/football-db/internal/platform/querybuilder"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrRowNotFound         = errors.New("row not found")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapError turns integrity errors reported by the server into the package sentinels, keeping
// the constraint name and server message in the text.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	var sentinel error
	switch string(pqErr.Code) {
	case pqUniqueViolation:
		sentinel = ErrUniqueViolation
	case pqForeignKeyViolation:
		sentinel = ErrForeignKeyViolation
	case pqCheckViolation:
		sentinel = ErrCheckViolation
	default:
		return err
	}
	if pqErr.Constraint != "" {
		return fmt.Errorf("%w: %s (%s)", sentinel, pqErr.Message, pqErr.Constraint)
	}
	return fmt.Errorf("%w: %s", sentinel, pqErr.Message)
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func intsFromArray(items pq.Int64Array) []int {
	if len(items) == 0 {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, int(item))
	}
	return out
}

func intsToArray(items []int) pq.Int64Array {
	if items == nil {
		return nil
	}
	out := make(pq.Int64Array, 0, len(items))
	for _, item := range items {
		out = append(out, int64(item))
	}
	return out
}

func stringsFromArray(items pq.StringArray) []string {
	if len(items) == 0 {
		return nil
	}
	return []string(items)
}

// selectIDs runs a single-column id query.
func selectIDs(ctx context.Context, db sqlx.QueryerContext, b *qb.SelectBuilder, what string) ([]int64, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", what, err)
	}
	var ids []int64
	if err := sqlx.SelectContext(ctx, db, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", what, err)
	}
	return ids, nil
}

// selectID is selectIDs for a query that matches at most one row.
func selectID(ctx context.Context, db sqlx.QueryerContext, b *qb.SelectBuilder, what string) (int64, bool, error) {
	query, args, err := b.Limit(1).ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select %s query: %w", what, err)
	}
	var id int64
	if err := sqlx.GetContext(ctx, db, &id, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select %s: %w", what, err)
	}
	return id, true, nil
}

// getRow loads one row into dest, reporting false when there is none.
func getRow(ctx context.Context, db sqlx.QueryerContext, dest any, b *qb.SelectBuilder, what string) (bool, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return false, fmt.Errorf("build select %s query: %w", what, err)
	}
	if err := sqlx.GetContext(ctx, db, dest, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("select %s: %w", what, err)
	}
	return true, nil
}

// insertReturningID runs an INSERT ... RETURNING <id>.
func insertReturningID(ctx context.Context, db sqlx.QueryerContext, b *qb.InsertBuilder, what string) (int64, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert %s query: %w", what, err)
	}
	var id int64
	if err := sqlx.GetContext(ctx, db, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert %s: %w", what, mapError(err))
	}
	return id, nil
}

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// exec runs an UPDATE, DELETE or INSERT without RETURNING and reports the affected rows.
func exec(ctx context.Context, db sqlx.ExecerContext, b sqlBuilder, what string) (int64, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build %s query: %w", what, err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", what, err)
	}
	return n, nil
}

func stringArray(items []string) pq.StringArray {
	if items == nil {
		return nil
	}
	return pq.StringArray(items)
}
