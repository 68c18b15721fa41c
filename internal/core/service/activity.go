package service

import (
	"context"
	"log/slog"

	"movie-collections/internal/core/domain/membership"
	"movie-collections/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FeedLimit is the fixed size of the recent-activity feed.
const FeedLimit = 6

// ActivityService derives the recent-activity feed from the store's
// change log. Read-only; no side effects.
type ActivityService struct {
	store  ports.MembershipStore
	logger *slog.Logger
}

func NewActivityService(store ports.MembershipStore, logger *slog.Logger) *ActivityService {
	return &ActivityService{store: store, logger: logger}
}

// Recent returns the user's most recent membership changes, newest
// first. limit is clamped to the feed constant; zero or negative means
// the full feed.
func (s *ActivityService) Recent(ctx context.Context, user string, limit int) ([]membership.Activity, error) {
	ctx, span := tracer.Start(ctx, "ActivityService.Recent", trace.WithAttributes(
		attribute.Int("limit", limit),
	))
	defer span.End()

	if user == "" {
		return nil, membership.ErrUnauthorized
	}
	if limit < 1 || limit > FeedLimit {
		limit = FeedLimit
	}

	activities, err := s.store.RecentActivity(ctx, user, limit)
	if err != nil {
		return nil, storeFailure("recent activity", err)
	}
	return activities, nil
}
