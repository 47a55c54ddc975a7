package fixture

import "context"

// Repository exposes fixture persistence used by the importer.
type Repository interface {
	FindIDByKey(ctx context.Context, key Key) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (Fixture, bool, error)
	Create(ctx context.Context, f Fixture) (int64, error)
	// PatchResult overwrites status, scores and flags, and writes the nullable venue, group,
	// attendance and winner fields only when non-nil.
	PatchResult(ctx context.Context, f Fixture) error
}
