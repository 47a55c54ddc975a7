package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "unique violation keeps constraint",
			err:      &pq.Error{Code: "23505", Message: "duplicate key value", Constraint: "club_name_key"},
			sentinel: ErrUniqueViolation,
			contains: "(club_name_key)",
		},
		{
			name:     "wrapped foreign key violation",
			err:      fmt.Errorf("insert club: %w", &pq.Error{Code: "23503", Message: "violates foreign key"}),
			sentinel: ErrForeignKeyViolation,
			contains: "violates foreign key",
		},
		{
			name:     "check violation",
			err:      &pq.Error{Code: "23514", Message: "violates check constraint", Constraint: "team_attachment_check"},
			sentinel: ErrCheckViolation,
			contains: "team_attachment_check",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := mapError(tc.err)
			if !errors.Is(got, tc.sentinel) {
				t.Fatalf("expected %v, got %v", tc.sentinel, got)
			}
			if !strings.Contains(got.Error(), tc.contains) {
				t.Fatalf("expected %q in %q", tc.contains, got.Error())
			}
		})
	}
}

func TestMapError_PassesThroughOtherErrors(t *testing.T) {
	t.Parallel()

	if mapError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	plain := errors.New("connection reset")
	if got := mapError(plain); got != plain {
		t.Fatalf("expected plain error to pass through, got %v", got)
	}

	syntax := &pq.Error{Code: "42601", Message: "syntax error"}
	if got := mapError(syntax); got != error(syntax) {
		t.Fatalf("expected unmapped pq error to pass through, got %v", got)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("select club: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("expected unrelated error not to be not found")
	}
}

func TestNullConverters(t *testing.T) {
	t.Parallel()

	if nullStringPtr(sql.NullString{}) != nil || nullInt64Ptr(sql.NullInt64{}) != nil ||
		nullIntPtr(sql.NullInt64{}) != nil || nullFloatPtr(sql.NullFloat64{}) != nil || nullTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected invalid values to map to nil")
	}

	if got := nullStringPtr(sql.NullString{String: "Ajax", Valid: true}); got == nil || *got != "Ajax" {
		t.Fatalf("expected Ajax, got %v", got)
	}
	if got := nullIntPtr(sql.NullInt64{Int64: 55000, Valid: true}); got == nil || *got != 55000 {
		t.Fatalf("expected 55000, got %v", got)
	}
	if got := nullFloatPtr(sql.NullFloat64{Float64: 52.31, Valid: true}); got == nil || *got != 52.31 {
		t.Fatalf("expected 52.31, got %v", got)
	}
	day := time.Date(1996, 8, 14, 0, 0, 0, 0, time.UTC)
	if got := nullTimePtr(sql.NullTime{Time: day, Valid: true}); got == nil || !got.Equal(day) {
		t.Fatalf("expected %s, got %v", day, got)
	}
}

func TestArrayConverters(t *testing.T) {
	t.Parallel()

	if intsToArray(nil) != nil || stringArray(nil) != nil {
		t.Fatalf("expected nil slices to stay nil")
	}
	if intsFromArray(pq.Int64Array{}) != nil || stringsFromArray(pq.StringArray{}) != nil {
		t.Fatalf("expected empty arrays to map to nil")
	}

	years := intsFromArray(intsToArray([]int{1996, 2018}))
	if len(years) != 2 || years[0] != 1996 || years[1] != 2018 {
		t.Fatalf("unexpected years %v", years)
	}
	tenants := stringsFromArray(stringArray([]string{"Ajax", "Jong Ajax"}))
	if len(tenants) != 2 || tenants[1] != "Jong Ajax" {
		t.Fatalf("unexpected tenants %v", tenants)
	}
}
