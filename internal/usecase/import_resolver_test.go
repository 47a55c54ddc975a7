package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/domain/team"
	countrymock "github.com/mouxlas21/football-db/internal/mocks/domain/country"
	stadiummock "github.com/mouxlas21/football-db/internal/mocks/domain/stadium"
	teammock "github.com/mouxlas21/football-db/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestResolvers_Country(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	anyCtx := mock.Anything

	t.Run("integer token is an id without lookup", func(t *testing.T) {
		t.Parallel()
		repo := countrymock.NewRepository(t)
		r := newResolvers(ImportRepositories{Countries: repo})

		got, err := r.Country(ctx, " 42 ")
		if err != nil {
			t.Fatalf("resolve country: %v", err)
		}
		if got == nil || *got != 42 {
			t.Fatalf("expected id 42, got %v", got)
		}
	})

	t.Run("fifa code wins before name", func(t *testing.T) {
		t.Parallel()
		repo := countrymock.NewRepository(t)
		repo.On("FindIDByFIFACode", anyCtx, "NED").Return(int64(7), true, nil).Once()
		r := newResolvers(ImportRepositories{Countries: repo})

		got, err := r.Country(ctx, "ned")
		if err != nil {
			t.Fatalf("resolve country: %v", err)
		}
		if got == nil || *got != 7 {
			t.Fatalf("expected id 7, got %v", got)
		}
	})

	t.Run("name fallback must be unique", func(t *testing.T) {
		t.Parallel()
		repo := countrymock.NewRepository(t)
		repo.On("FindIDByFIFACode", anyCtx, "GEORGIA").Return(int64(0), false, nil).Once()
		repo.On("FindIDsByName", anyCtx, "Georgia").Return([]int64{3, 9}, nil).Once()
		r := newResolvers(ImportRepositories{Countries: repo})

		got, err := r.Country(ctx, "Georgia")
		if err != nil {
			t.Fatalf("resolve country: %v", err)
		}
		if got != nil {
			t.Fatalf("expected ambiguous name to resolve to nil, got %d", *got)
		}
	})

	t.Run("blank token", func(t *testing.T) {
		t.Parallel()
		repo := countrymock.NewRepository(t)
		r := newResolvers(ImportRepositories{Countries: repo})

		got, err := r.Country(ctx, "   ")
		if err != nil || got != nil {
			t.Fatalf("expected nil, nil for blank token, got %v, %v", got, err)
		}
	})

	t.Run("store error propagates", func(t *testing.T) {
		t.Parallel()
		repo := countrymock.NewRepository(t)
		storeErr := errors.New("connection reset")
		repo.On("FindIDByFIFACode", anyCtx, "ENG").Return(int64(0), false, storeErr).Once()
		r := newResolvers(ImportRepositories{Countries: repo})

		if _, err := r.Country(ctx, "ENG"); !errors.Is(err, storeErr) {
			t.Fatalf("expected store error, got %v", err)
		}
	})
}

func TestResolvers_StadiumHints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	city := "Milan"
	countryID := int64(5)

	t.Run("name and city first", func(t *testing.T) {
		t.Parallel()
		repo := stadiummock.NewRepository(t)
		repo.On("FindIDs", mock.Anything, stadium.Query{Name: "San Siro", City: &city}).Return([]int64{11}, nil).Once()
		r := newResolvers(ImportRepositories{Stadiums: repo})

		got, err := r.Stadium(ctx, "San Siro", &city, &countryID)
		if err != nil {
			t.Fatalf("resolve stadium: %v", err)
		}
		if got == nil || *got != 11 {
			t.Fatalf("expected stadium 11, got %v", got)
		}
	})

	t.Run("falls back to country then global", func(t *testing.T) {
		t.Parallel()
		repo := stadiummock.NewRepository(t)
		repo.On("FindIDs", mock.Anything, stadium.Query{Name: "Olimpico", City: &city}).Return(nil, nil).Once()
		repo.On("FindIDs", mock.Anything, stadium.Query{Name: "Olimpico", CountryID: &countryID}).Return([]int64{1, 2}, nil).Once()
		repo.On("FindIDs", mock.Anything, stadium.Query{Name: "Olimpico"}).Return([]int64{1, 2, 3}, nil).Once()
		r := newResolvers(ImportRepositories{Stadiums: repo})

		got, err := r.Stadium(ctx, "Olimpico", &city, &countryID)
		if err != nil {
			t.Fatalf("resolve stadium: %v", err)
		}
		if got != nil {
			t.Fatalf("expected ambiguous stadium to resolve to nil, got %d", *got)
		}
	})
}

func TestResolvers_TeamBucket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := teammock.NewRepository(t)
	repo.
		On("FindNationalTeamIDs", mock.Anything, int64(8), (*string)(nil), (*string)(nil)).
		Return([]int64{21}, nil).
		Once()
	r := newResolvers(ImportRepositories{Teams: repo})

	countryID := int64(8)
	got, err := r.Team(ctx, "", &teamBucket{Type: team.TypeNational, CountryID: &countryID})
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	if got == nil || *got != 21 {
		t.Fatalf("expected national team 21, got %v", got)
	}
}

func TestResolvers_TeamNameFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clubID := int64(4)
	repo := teammock.NewRepository(t)
	repo.On("FindClubTeamIDs", mock.Anything, clubID).Return([]int64{}, nil).Once()
	repo.On("FindIDsByName", mock.Anything, "Ajax").Return([]int64{30}, nil).Once()
	r := newResolvers(ImportRepositories{Teams: repo})

	got, err := r.Team(ctx, "Ajax", &teamBucket{Type: team.TypeClub, ClubID: &clubID})
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	if got == nil || *got != 30 {
		t.Fatalf("expected team 30, got %v", got)
	}
}
