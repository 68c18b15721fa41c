package ports

import (
	"context"

	"movie-collections/internal/core/domain/auth"
	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"
)

// UserRepository defines storage for users.
type UserRepository interface {
	Save(ctx context.Context, user auth.User) error
	FindByEmail(ctx context.Context, email string) (auth.User, error)
}

// MembershipStore persists per-(user, movie, kind) relations. It is
// the sole arbiter of uniqueness: Insert must be safe against
// concurrent duplicate inserts for the same key, so callers never rely
// on an exists-then-insert sequence being atomic.
type MembershipStore interface {
	// Exists reports whether the relation currently holds.
	Exists(ctx context.Context, user, movieID string, kind membership.Kind) (bool, error)

	// Insert creates the relation if absent; a duplicate insert is a
	// no-op. Records an "added" activity only on actual change.
	Insert(ctx context.Context, user, movieID string, kind membership.Kind) error

	// Remove deletes the relation if present; absent is a no-op.
	// Records a "removed" activity only on actual change.
	Remove(ctx context.Context, user, movieID string, kind membership.Kind) error

	// ListPage returns the user's movie ids holding an active relation
	// of kind, ordered by creation time descending with id as the
	// tiebreaker. page is 1-indexed; validation happens upstream.
	ListPage(ctx context.Context, user string, kind membership.Kind, page, pageSize int) (catalog.PageResult[string], error)

	// RecentActivity returns the user's most recent membership
	// changes, newest first, truncated to limit.
	RecentActivity(ctx context.Context, user string, limit int) ([]membership.Activity, error)
}

// CatalogReader provides read-only access to the shared movie catalog.
// The catalog is owned externally; this service only queries it.
type CatalogReader interface {
	// FindByIDs fetches movies keyed by id. Unknown ids are absent
	// from the result, not an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]catalog.Movie, error)

	// Exists reports whether the catalog recognizes the id.
	Exists(ctx context.Context, id string) (bool, error)

	// ListPage returns one catalog page matching the filter, ordered
	// by id ascending, with the total page count for the matching set.
	ListPage(ctx context.Context, filter catalog.Filter, page, pageSize int) (catalog.PageResult[catalog.Movie], error)

	// Genres returns the distinct genres present in the catalog.
	Genres(ctx context.Context) ([]string, error)
}
