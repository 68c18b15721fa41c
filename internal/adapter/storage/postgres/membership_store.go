package postgres

import (
	"context"
	"fmt"

	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MembershipStore implements ports.MembershipStore using PostgreSQL.
// The (user_id, movie_id, kind) primary key is the uniqueness arbiter:
// a concurrent duplicate insert degrades to a no-op instead of a
// second row.
type MembershipStore struct {
	db *pgxpool.Pool
}

// NewMembershipStore creates a new postgres membership store.
func NewMembershipStore(db *pgxpool.Pool) *MembershipStore {
	return &MembershipStore{db: db}
}

// Exists reports whether the relation currently holds.
func (s *MembershipStore) Exists(ctx context.Context, user, movieID string, kind membership.Kind) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM memberships WHERE user_id = $1 AND movie_id = $2 AND kind = $3
	)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, user, movieID, string(kind)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// Insert creates the relation if absent. The activity row is appended
// in the same transaction, and only when the insert actually changed
// state, so a lost race or repeated add leaves no duplicate feed entry.
func (s *MembershipStore) Insert(ctx context.Context, user, movieID string, kind membership.Kind) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO memberships (user_id, movie_id, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, movie_id, kind) DO NOTHING
	`, user, movieID, string(kind))
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if err := appendActivity(ctx, tx, user, movieID, kind, membership.ActionAdded); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Remove deletes the relation if present; absent is a no-op.
func (s *MembershipStore) Remove(ctx context.Context, user, movieID string, kind membership.Kind) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		DELETE FROM memberships WHERE user_id = $1 AND movie_id = $2 AND kind = $3
	`, user, movieID, string(kind))
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if err := appendActivity(ctx, tx, user, movieID, kind, membership.ActionRemoved); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func appendActivity(ctx context.Context, tx pgx.Tx, user, movieID string, kind membership.Kind, action membership.Action) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO activities (user_id, movie_id, kind, action)
		VALUES ($1, $2, $3, $4)
	`, user, movieID, string(kind), string(action))
	if err != nil {
		return fmt.Errorf("failed to append activity: %w", err)
	}
	return nil
}

// ListPage returns one page of the user's movie ids for the kind,
// newest first with movie_id as the tiebreaker, plus the total page
// count computed from the current cardinality.
func (s *MembershipStore) ListPage(ctx context.Context, user string, kind membership.Kind, page, pageSize int) (catalog.PageResult[string], error) {
	var total int
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM memberships WHERE user_id = $1 AND kind = $2
	`, user, string(kind)).Scan(&total)
	if err != nil {
		return catalog.PageResult[string]{}, fmt.Errorf("failed to count memberships: %w", err)
	}

	offset := (page - 1) * pageSize
	rows, err := s.db.Query(ctx, `
		SELECT movie_id
		FROM memberships
		WHERE user_id = $1 AND kind = $2
		ORDER BY created_at DESC, movie_id ASC
		LIMIT $3 OFFSET $4
	`, user, string(kind), pageSize, offset)
	if err != nil {
		return catalog.PageResult[string]{}, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return catalog.PageResult[string]{}, fmt.Errorf("failed to scan movie id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return catalog.PageResult[string]{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return catalog.PageResult[string]{
		Items:      ids,
		TotalPages: catalog.TotalPages(total, pageSize),
	}, nil
}

// RecentActivity returns the user's latest membership changes, newest
// first.
func (s *MembershipStore) RecentActivity(ctx context.Context, user string, limit int) ([]membership.Activity, error) {
	rows, err := s.db.Query(ctx, `
		SELECT movie_id, kind, action, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, user, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	activities := []membership.Activity{}
	for rows.Next() {
		var a membership.Activity
		var kind, action string
		if err := rows.Scan(&a.MovieID, &kind, &action, &a.At); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Kind = membership.Kind(kind)
		a.Action = membership.Action(action)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return activities, nil
}
