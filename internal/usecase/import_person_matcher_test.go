package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mouxlas21/football-db/internal/domain/person"
	personmock "github.com/mouxlas21/football-db/internal/mocks/domain/person"
	"github.com/stretchr/testify/mock"
)

func TestNameBirthDateMatcher(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	born := time.Date(1987, 6, 24, 0, 0, 0, 0, time.UTC)

	t.Run("single match", func(t *testing.T) {
		t.Parallel()
		repo := personmock.NewRepository(t)
		repo.On("FindIDs", mock.Anything, "Lionel Messi", &born).Return([]int64{10}, nil).Once()

		got, err := NameBirthDateMatcher{}.Match(ctx, repo, person.Person{FullName: "Lionel Messi", BirthDate: &born})
		if err != nil {
			t.Fatalf("match person: %v", err)
		}
		if got == nil || *got != 10 {
			t.Fatalf("expected person 10, got %v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		repo := personmock.NewRepository(t)
		repo.On("FindIDs", mock.Anything, "New Person", (*time.Time)(nil)).Return(nil, nil).Once()

		got, err := NameBirthDateMatcher{}.Match(ctx, repo, person.Person{FullName: "New Person"})
		if err != nil || got != nil {
			t.Fatalf("expected no match, got %v, %v", got, err)
		}
	})

	t.Run("ambiguous name is an error", func(t *testing.T) {
		t.Parallel()
		repo := personmock.NewRepository(t)
		repo.On("FindIDs", mock.Anything, "Ronaldo", (*time.Time)(nil)).Return([]int64{1, 2}, nil).Once()

		if _, err := (NameBirthDateMatcher{}).Match(ctx, repo, person.Person{FullName: "Ronaldo"}); err == nil {
			t.Fatalf("expected ambiguity error")
		}
	})
}
