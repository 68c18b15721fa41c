package membership

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors forming the stable external taxonomy. Store-specific
// failures are wrapped into ErrStoreUnavailable at the service
// boundary and never escape with driver detail.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Kind distinguishes the two independent relation sets a user holds
// over the catalog.
type Kind string

const (
	KindFavorite   Kind = "favorite"
	KindWatchLater Kind = "watch_later"
)

// Validate rejects kinds outside the two known relation sets.
func (k Kind) Validate() error {
	switch k {
	case KindFavorite, KindWatchLater:
		return nil
	}
	return fmt.Errorf("%w: unknown membership kind %q", ErrInvalidInput, string(k))
}

// Record is a single (user, movie, kind) relation. Its existence IS
// the membership flag; there is no false record. Records are created
// by a toggle-add, destroyed by a toggle-remove, never mutated.
type Record struct {
	User      string    `json:"user"`
	MovieID   string    `json:"movieId"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToggleStatus is the caller-visible outcome of a toggle operation.
// AlreadyActive and Removed-when-absent are successes, not errors: the
// requested end state holds either way.
type ToggleStatus string

const (
	StatusAdded         ToggleStatus = "added"
	StatusAlreadyActive ToggleStatus = "already_active"
	StatusRemoved       ToggleStatus = "removed"
)

// Action labels an activity feed entry.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// Activity is one entry in a user's recent-activity feed, derived from
// the append-only change log kept alongside the membership records.
type Activity struct {
	MovieID string    `json:"movieId"`
	Kind    Kind      `json:"kind"`
	Action  Action    `json:"action"`
	At      time.Time `json:"at"`
}
