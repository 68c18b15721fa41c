package service

import (
	"context"
	"fmt"
	"log/slog"

	"movie-collections/internal/core/domain/membership"
	"movie-collections/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("internal/core/service")

// MembershipService orchestrates idempotent toggles against the
// membership store. It sequences store calls but never assumes a lock:
// the store's Insert is the uniqueness arbiter under races.
type MembershipService struct {
	store   ports.MembershipStore
	catalog ports.CatalogReader
	logger  *slog.Logger
}

func NewMembershipService(store ports.MembershipStore, catalog ports.CatalogReader, logger *slog.Logger) *MembershipService {
	return &MembershipService{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// ToggleAdd marks the movie with the given relation for the user. The
// pre-check exists to produce a distinguishable "already active"
// signal for the caller's feedback; correctness under concurrent adds
// rests on the store's idempotent insert, not on this sequence.
func (s *MembershipService) ToggleAdd(ctx context.Context, user, movieID string, kind membership.Kind) (membership.ToggleStatus, error) {
	ctx, span := tracer.Start(ctx, "MembershipService.ToggleAdd", trace.WithAttributes(
		attribute.String("movie.id", movieID),
		attribute.String("membership.kind", string(kind)),
	))
	defer span.End()

	if err := s.validate(ctx, user, movieID, kind); err != nil {
		span.RecordError(err)
		return "", err
	}

	active, err := s.store.Exists(ctx, user, movieID, kind)
	if err != nil {
		span.RecordError(err)
		return "", storeFailure("exists check", err)
	}
	if active {
		return membership.StatusAlreadyActive, nil
	}

	if err := s.store.Insert(ctx, user, movieID, kind); err != nil {
		span.RecordError(err)
		return "", storeFailure("insert", err)
	}

	s.logger.InfoContext(ctx, "membership added", "movie_id", movieID, "kind", kind)
	return membership.StatusAdded, nil
}

// ToggleRemove unmarks the relation. Removing an absent relation and
// removing a present one both report StatusRemoved; the end state is
// identical and the caller has no use for the distinction.
func (s *MembershipService) ToggleRemove(ctx context.Context, user, movieID string, kind membership.Kind) (membership.ToggleStatus, error) {
	ctx, span := tracer.Start(ctx, "MembershipService.ToggleRemove", trace.WithAttributes(
		attribute.String("movie.id", movieID),
		attribute.String("membership.kind", string(kind)),
	))
	defer span.End()

	if err := s.validate(ctx, user, movieID, kind); err != nil {
		span.RecordError(err)
		return "", err
	}

	if err := s.store.Remove(ctx, user, movieID, kind); err != nil {
		span.RecordError(err)
		return "", storeFailure("remove", err)
	}

	s.logger.InfoContext(ctx, "membership removed", "movie_id", movieID, "kind", kind)
	return membership.StatusRemoved, nil
}

func (s *MembershipService) validate(ctx context.Context, user, movieID string, kind membership.Kind) error {
	if user == "" {
		return membership.ErrUnauthorized
	}
	if movieID == "" {
		return fmt.Errorf("%w: missing movie id", membership.ErrInvalidInput)
	}
	if err := kind.Validate(); err != nil {
		return err
	}

	known, err := s.catalog.Exists(ctx, movieID)
	if err != nil {
		return storeFailure("catalog lookup", err)
	}
	if !known {
		return fmt.Errorf("%w: unknown movie id %q", membership.ErrInvalidInput, movieID)
	}
	return nil
}

// storeFailure normalizes persistence errors so store-specific detail
// never leaks past the service boundary.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", membership.ErrStoreUnavailable, op, err)
}
