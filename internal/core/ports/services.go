package ports

import (
	"context"

	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"
)

// AuthService defines the authentication service.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (token string, err error)
}

// MovieCache caches immutable catalog records to cheapen the
// membership-to-movie join. Membership state is never cached; the
// store stays the single source of truth for it.
type MovieCache interface {
	// Set stores one serialized movie record.
	Set(ctx context.Context, id string, data []byte) error

	// GetBatch retrieves cached movies by id; missing ids are simply
	// absent from the result.
	GetBatch(ctx context.Context, ids []string) (map[string][]byte, error)

	// Remove evicts a movie record.
	Remove(ctx context.Context, id string) error

	// SetGenres / GetGenres cache the distinct genre list.
	SetGenres(ctx context.Context, genres []string) error
	GetGenres(ctx context.Context) ([]string, error)
}

// MembershipService exposes the idempotent toggle operations.
type MembershipService interface {
	// ToggleAdd creates the relation, or reports StatusAlreadyActive
	// when the end state already holds.
	ToggleAdd(ctx context.Context, user, movieID string, kind membership.Kind) (membership.ToggleStatus, error)

	// ToggleRemove deletes the relation. Removal of an absent relation
	// is indistinguishable from a successful removal: both report
	// StatusRemoved.
	ToggleRemove(ctx context.Context, user, movieID string, kind membership.Kind) (membership.ToggleStatus, error)
}

// ListingService produces paginated, optionally filtered movie views
// annotated with the caller's own membership flags.
type ListingService interface {
	ListFavorites(ctx context.Context, user string, page int) (catalog.PageResult[catalog.AnnotatedMovie], error)
	ListWatchLater(ctx context.Context, user string, page int, filter catalog.Filter) (catalog.PageResult[catalog.AnnotatedMovie], error)
	ListCatalog(ctx context.Context, user string, page int, filter catalog.Filter) (catalog.PageResult[catalog.AnnotatedMovie], error)
	Genres(ctx context.Context) ([]string, error)
}

// ActivityService derives a user's recent-activity feed.
type ActivityService interface {
	Recent(ctx context.Context, user string, limit int) ([]membership.Activity, error)
}
