package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"
	"movie-collections/internal/core/ports"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// PageSize is the fixed page size of every listing view.
const PageSize = 6

// ListingService joins membership ids with catalog records and
// annotates each movie with the caller's own flags. Movie records are
// read through the cache; membership state always comes straight from
// the store.
type ListingService struct {
	store   ports.MembershipStore
	catalog ports.CatalogReader
	cache   ports.MovieCache
	logger  *slog.Logger
}

func NewListingService(store ports.MembershipStore, catalog ports.CatalogReader, cache ports.MovieCache, logger *slog.Logger) *ListingService {
	return &ListingService{
		store:   store,
		catalog: catalog,
		cache:   cache,
		logger:  logger,
	}
}

// ListFavorites returns one page of the user's favorites, newest
// first, each annotated with the cross-kind watch-later flag.
func (s *ListingService) ListFavorites(ctx context.Context, user string, page int) (catalog.PageResult[catalog.AnnotatedMovie], error) {
	ctx, span := tracer.Start(ctx, "ListingService.ListFavorites", trace.WithAttributes(
		attribute.Int("page", page),
	))
	defer span.End()

	return s.listMemberships(ctx, user, membership.KindFavorite, page, catalog.Filter{})
}

// ListWatchLater returns one page of the user's watch-later list,
// restricted by the filter, each annotated with the favorited flag.
func (s *ListingService) ListWatchLater(ctx context.Context, user string, page int, filter catalog.Filter) (catalog.PageResult[catalog.AnnotatedMovie], error) {
	ctx, span := tracer.Start(ctx, "ListingService.ListWatchLater", trace.WithAttributes(
		attribute.Int("page", page),
	))
	defer span.End()

	return s.listMemberships(ctx, user, membership.KindWatchLater, page, filter)
}

var empty = catalog.PageResult[catalog.AnnotatedMovie]{}

func (s *ListingService) listMemberships(ctx context.Context, user string, kind membership.Kind, page int, filter catalog.Filter) (catalog.PageResult[catalog.AnnotatedMovie], error) {
	if err := validateListing(user, page, filter); err != nil {
		return empty, err
	}

	// An unfiltered view pages in the store. A filtered one cannot:
	// totalPages must count filter survivors, so the whole membership
	// set is joined first and paged in memory. Per-user sets are small
	// enough for that to stay cheap.
	if filter.IsZero() {
		idPage, err := s.store.ListPage(ctx, user, kind, page, PageSize)
		if err != nil {
			return empty, storeFailure("list memberships", err)
		}
		items, err := s.annotate(ctx, user, kind, idPage.Items)
		if err != nil {
			return empty, err
		}
		return catalog.PageResult[catalog.AnnotatedMovie]{Items: items, TotalPages: idPage.TotalPages}, nil
	}

	all, err := s.store.ListPage(ctx, user, kind, 1, maxMemberships)
	if err != nil {
		return empty, storeFailure("list memberships", err)
	}
	annotated, err := s.annotate(ctx, user, kind, all.Items)
	if err != nil {
		return empty, err
	}

	matched := annotated[:0]
	for _, am := range annotated {
		if filter.Matches(am.Movie) {
			matched = append(matched, am)
		}
	}
	return paginate(matched, page), nil
}

// maxMemberships bounds the in-memory join for filtered membership
// views. A user past this many saved movies gets a truncated filter
// result rather than an unbounded query.
const maxMemberships = 1000

// ListCatalog returns one page of the full catalog matching the
// filter, annotated with the calling user's flags.
func (s *ListingService) ListCatalog(ctx context.Context, user string, page int, filter catalog.Filter) (catalog.PageResult[catalog.AnnotatedMovie], error) {
	ctx, span := tracer.Start(ctx, "ListingService.ListCatalog", trace.WithAttributes(
		attribute.Int("page", page),
	))
	defer span.End()

	if err := validateListing(user, page, filter); err != nil {
		return empty, err
	}

	moviePage, err := s.catalog.ListPage(ctx, filter, page, PageSize)
	if err != nil {
		return empty, storeFailure("list catalog", err)
	}

	items := make([]catalog.AnnotatedMovie, 0, len(moviePage.Items))
	for _, m := range moviePage.Items {
		fav, err := s.store.Exists(ctx, user, m.ID, membership.KindFavorite)
		if err != nil {
			return empty, storeFailure("favorite flag", err)
		}
		wl, err := s.store.Exists(ctx, user, m.ID, membership.KindWatchLater)
		if err != nil {
			return empty, storeFailure("watch-later flag", err)
		}
		items = append(items, catalog.AnnotatedMovie{Movie: m, Favorited: fav, WatchLater: wl})
	}
	return catalog.PageResult[catalog.AnnotatedMovie]{Items: items, TotalPages: moviePage.TotalPages}, nil
}

// Genres returns the distinct catalog genres, cache first.
func (s *ListingService) Genres(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "ListingService.Genres")
	defer span.End()

	if genres, err := s.cache.GetGenres(ctx); err == nil && len(genres) > 0 {
		return genres, nil
	}

	genres, err := s.catalog.Genres(ctx)
	if err != nil {
		return nil, storeFailure("genres", err)
	}
	if err := s.cache.SetGenres(ctx, genres); err != nil {
		s.logger.WarnContext(ctx, "failed to cache genres", "error", err)
	}
	return genres, nil
}

// annotate resolves movie ids to records (cache first, catalog on
// miss) and computes the cross-kind flag for each. The kind's own flag
// is true by construction: the ids came from that membership set.
func (s *ListingService) annotate(ctx context.Context, user string, kind membership.Kind, ids []string) ([]catalog.AnnotatedMovie, error) {
	movies, err := s.resolveMovies(ctx, ids)
	if err != nil {
		return nil, err
	}

	other := membership.KindWatchLater
	if kind == membership.KindWatchLater {
		other = membership.KindFavorite
	}

	items := make([]catalog.AnnotatedMovie, 0, len(ids))
	for _, id := range ids {
		m, ok := movies[id]
		if !ok {
			// Membership survived a catalog record it pointed at. Skip
			// rather than fail the whole page.
			s.logger.WarnContext(ctx, "membership references unknown movie", "movie_id", id)
			continue
		}

		crossFlag, err := s.store.Exists(ctx, user, id, other)
		if err != nil {
			return nil, storeFailure("cross-kind flag", err)
		}

		am := catalog.AnnotatedMovie{Movie: m}
		if kind == membership.KindFavorite {
			am.Favorited, am.WatchLater = true, crossFlag
		} else {
			am.WatchLater, am.Favorited = true, crossFlag
		}
		items = append(items, am)
	}
	return items, nil
}

// resolveMovies is the cache-then-catalog movie lookup. Cache failures
// degrade to catalog reads; they are never surfaced.
func (s *ListingService) resolveMovies(ctx context.Context, ids []string) (map[string]catalog.Movie, error) {
	movies := make(map[string]catalog.Movie, len(ids))

	cached, err := s.cache.GetBatch(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "movie cache unavailable, falling back to catalog", "error", err)
		cached = nil
	}

	var misses []string
	for _, id := range ids {
		data, ok := cached[id]
		if !ok {
			misses = append(misses, id)
			continue
		}
		var m catalog.Movie
		if err := json.Unmarshal(data, &m); err != nil {
			s.logger.WarnContext(ctx, "corrupt cached movie, re-reading", "movie_id", id, "error", err)
			misses = append(misses, id)
			continue
		}
		movies[id] = m
	}

	if len(misses) > 0 {
		fetched, err := s.catalog.FindByIDs(ctx, misses)
		if err != nil {
			return nil, storeFailure("catalog fetch", err)
		}
		for id, m := range fetched {
			movies[id] = m
			s.cacheMovie(ctx, m)
		}
	}
	return movies, nil
}

func (s *ListingService) cacheMovie(ctx context.Context, m catalog.Movie) {
	data, err := json.Marshal(m)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal movie for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, m.ID, data); err != nil {
		s.logger.WarnContext(ctx, "failed to cache movie", "movie_id", m.ID, "error", err)
	}
}

// paginate slices an in-memory matching set into the requested page.
// A page past the end yields empty items with the true TotalPages.
func paginate(items []catalog.AnnotatedMovie, page int) catalog.PageResult[catalog.AnnotatedMovie] {
	total := catalog.TotalPages(len(items), PageSize)
	start := (page - 1) * PageSize
	if start >= len(items) {
		return catalog.PageResult[catalog.AnnotatedMovie]{Items: []catalog.AnnotatedMovie{}, TotalPages: total}
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return catalog.PageResult[catalog.AnnotatedMovie]{Items: items[start:end], TotalPages: total}
}

func validateListing(user string, page int, filter catalog.Filter) error {
	if user == "" {
		return membership.ErrUnauthorized
	}
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", membership.ErrInvalidInput, page)
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("%w: %v", membership.ErrInvalidInput, err)
	}
	return nil
}
