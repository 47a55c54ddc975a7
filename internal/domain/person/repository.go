package person

import (
	"context"
	"time"
)

type Repository interface {
	// FindIDs matches full name case-insensitively, and birth date exactly when given.
	FindIDs(ctx context.Context, fullName string, birthDate *time.Time) ([]int64, error)
	GetByID(ctx context.Context, id int64) (Person, bool, error)
	Create(ctx context.Context, p Person) (int64, error)
	// Patch writes the non-nil optional fields of p onto the row with p.ID.
	Patch(ctx context.Context, p Person) error

	UpsertPlayer(ctx context.Context, p Player) (bool, error)
	UpsertCoach(ctx context.Context, c Coach) (bool, error)
	UpsertOfficial(ctx context.Context, o Official) (bool, error)
}
