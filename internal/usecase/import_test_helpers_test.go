package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/mouxlas21/football-db/internal/domain/stadium"
	"github.com/mouxlas21/football-db/internal/usecase"
)

func stadiumQuery(name string) stadium.Query {
	return stadium.Query{Name: name}
}

// fixtureIDByKickoff finds a fixture by kickoff alone; tests keep kickoffs distinct.
func fixtureIDByKickoff(t *testing.T, repos usecase.ImportRepositories, kickoff time.Time) int64 {
	t.Helper()
	for id := int64(1); id < 1000; id++ {
		f, ok, err := repos.Fixtures.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("get fixture %d: %v", id, err)
		}
		if ok && f.KickoffUTC.Equal(kickoff) {
			return id
		}
	}
	t.Fatalf("no fixture at %s", kickoff)
	return 0
}
