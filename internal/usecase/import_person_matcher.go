package usecase

import (
	"context"
	"fmt"

	"github.com/mouxlas21/football-db/internal/domain/person"
)

// PersonMatcher decides which stored person, if any, a parsed person row refers to.
type PersonMatcher interface {
	Match(ctx context.Context, people person.Repository, candidate person.Person) (*int64, error)
}

// NameBirthDateMatcher matches on case-insensitive full name plus birth date when the row
// has one, and on the name alone otherwise. Two different people sharing a name and lacking
// birth dates collapse into one person.
type NameBirthDateMatcher struct{}

func (NameBirthDateMatcher) Match(ctx context.Context, people person.Repository, candidate person.Person) (*int64, error) {
	ids, err := people.FindIDs(ctx, candidate.FullName, candidate.BirthDate)
	if err != nil {
		return nil, err
	}
	switch len(ids) {
	case 0:
		return nil, nil
	case 1:
		return &ids[0], nil
	default:
		return nil, fmt.Errorf("%d people match %q, add a birth_date to disambiguate", len(ids), candidate.FullName)
	}
}
