package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbPool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := RunMigrations(ctx, dbPool, logger); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		dbPool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	}

	return dbPool, cleanup
}

func seedMovies(t *testing.T, db *pgxpool.Pool, n int) {
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := db.Exec(ctx, `
			INSERT INTO movies (id, title, synopsis, released, genre)
			VALUES ($1, $2, $3, $4, $5)
		`, fmt.Sprintf("m%03d", i), fmt.Sprintf("Movie %d", i), "synopsis", 2000+i%20, []string{"Drama", "Comedy", "Crime"}[i%3])
		if err != nil {
			t.Fatalf("failed to seed movie: %v", err)
		}
	}
}

func TestMembershipStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbPool, cleanup := setupTestDB(t)
	defer cleanup()

	seedMovies(t, dbPool, 10)
	store := NewMembershipStore(dbPool)
	ctx := context.Background()

	t.Run("insert then exists", func(t *testing.T) {
		err := store.Insert(ctx, "a@example.com", "m000", membership.KindFavorite)
		assert.NoError(t, err)

		exists, err := store.Exists(ctx, "a@example.com", "m000", membership.KindFavorite)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate insert is a no-op", func(t *testing.T) {
		err := store.Insert(ctx, "a@example.com", "m000", membership.KindFavorite)
		assert.NoError(t, err)

		var count int
		err = dbPool.QueryRow(ctx, `
			SELECT COUNT(*) FROM memberships
			WHERE user_id = 'a@example.com' AND movie_id = 'm000' AND kind = 'favorite'
		`).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("concurrent inserts never produce two rows", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = store.Insert(ctx, "race@example.com", "m001", membership.KindFavorite)
			}()
		}
		wg.Wait()

		var count int
		err := dbPool.QueryRow(ctx, `
			SELECT COUNT(*) FROM memberships
			WHERE user_id = 'race@example.com' AND movie_id = 'm001' AND kind = 'favorite'
		`).Scan(&count)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("kinds are independent", func(t *testing.T) {
		assert.NoError(t, store.Insert(ctx, "b@example.com", "m002", membership.KindFavorite))
		assert.NoError(t, store.Insert(ctx, "b@example.com", "m002", membership.KindWatchLater))

		assert.NoError(t, store.Remove(ctx, "b@example.com", "m002", membership.KindFavorite))

		fav, err := store.Exists(ctx, "b@example.com", "m002", membership.KindFavorite)
		assert.NoError(t, err)
		assert.False(t, fav)

		wl, err := store.Exists(ctx, "b@example.com", "m002", membership.KindWatchLater)
		assert.NoError(t, err)
		assert.True(t, wl)
	})

	t.Run("users are isolated", func(t *testing.T) {
		assert.NoError(t, store.Insert(ctx, "c1@example.com", "m003", membership.KindFavorite))

		other, err := store.Exists(ctx, "c2@example.com", "m003", membership.KindFavorite)
		assert.NoError(t, err)
		assert.False(t, other)

		assert.NoError(t, store.Remove(ctx, "c2@example.com", "m003", membership.KindFavorite))
		own, err := store.Exists(ctx, "c1@example.com", "m003", membership.KindFavorite)
		assert.NoError(t, err)
		assert.True(t, own)
	})

	t.Run("remove of absent relation is a no-op", func(t *testing.T) {
		err := store.Remove(ctx, "d@example.com", "m004", membership.KindFavorite)
		assert.NoError(t, err)

		exists, err := store.Exists(ctx, "d@example.com", "m004", membership.KindFavorite)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list page orders newest first and counts pages", func(t *testing.T) {
		user := "pager@example.com"
		for i := 0; i < 8; i++ {
			id := fmt.Sprintf("m%03d", i)
			assert.NoError(t, store.Insert(ctx, user, id, membership.KindWatchLater))
			// Distinct created_at per row keeps the expected order deterministic
			_, err := dbPool.Exec(ctx, `
				UPDATE memberships SET created_at = NOW() + ($1 || ' seconds')::interval
				WHERE user_id = $2 AND movie_id = $3 AND kind = 'watch_later'
			`, fmt.Sprint(i), user, id)
			assert.NoError(t, err)
		}

		page1, err := store.ListPage(ctx, user, membership.KindWatchLater, 1, 6)
		assert.NoError(t, err)
		assert.Equal(t, 2, page1.TotalPages)
		assert.Equal(t, []string{"m007", "m006", "m005", "m004", "m003", "m002"}, page1.Items)

		page2, err := store.ListPage(ctx, user, membership.KindWatchLater, 2, 6)
		assert.NoError(t, err)
		assert.Equal(t, []string{"m001", "m000"}, page2.Items)

		// Out-of-range page: empty items, same total
		page3, err := store.ListPage(ctx, user, membership.KindWatchLater, 3, 6)
		assert.NoError(t, err)
		assert.Empty(t, page3.Items)
		assert.Equal(t, 2, page3.TotalPages)
	})

	t.Run("empty membership set reports one page", func(t *testing.T) {
		page, err := store.ListPage(ctx, "nobody@example.com", membership.KindFavorite, 1, 6)
		assert.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("activity log records changes, not no-ops", func(t *testing.T) {
		user := "feed@example.com"
		assert.NoError(t, store.Insert(ctx, user, "m005", membership.KindFavorite))
		assert.NoError(t, store.Insert(ctx, user, "m005", membership.KindFavorite)) // no-op
		assert.NoError(t, store.Remove(ctx, user, "m005", membership.KindFavorite))
		assert.NoError(t, store.Remove(ctx, user, "m005", membership.KindFavorite)) // no-op
		assert.NoError(t, store.Insert(ctx, user, "m006", membership.KindWatchLater))

		feed, err := store.RecentActivity(ctx, user, 6)
		assert.NoError(t, err)
		if assert.Len(t, feed, 3) {
			assert.Equal(t, "m006", feed[0].MovieID)
			assert.Equal(t, membership.ActionAdded, feed[0].Action)
			assert.Equal(t, membership.ActionRemoved, feed[1].Action)
			assert.Equal(t, membership.ActionAdded, feed[2].Action)
		}
	})

	t.Run("activity feed truncates to limit", func(t *testing.T) {
		user := "busy@example.com"
		for i := 0; i < 9; i++ {
			assert.NoError(t, store.Insert(ctx, user, fmt.Sprintf("m%03d", i), membership.KindFavorite))
		}

		feed, err := store.RecentActivity(ctx, user, 6)
		assert.NoError(t, err)
		assert.Len(t, feed, 6)
	})
}

func TestCatalogReader(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	dbPool, cleanup := setupTestDB(t)
	defer cleanup()

	seedMovies(t, dbPool, 15)
	reader := NewCatalogReader(dbPool)
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		known, err := reader.Exists(ctx, "m000")
		assert.NoError(t, err)
		assert.True(t, known)

		unknown, err := reader.Exists(ctx, "zzz")
		assert.NoError(t, err)
		assert.False(t, unknown)
	})

	t.Run("find by ids skips unknown", func(t *testing.T) {
		movies, err := reader.FindByIDs(ctx, []string{"m001", "zzz", "m002"})
		assert.NoError(t, err)
		assert.Len(t, movies, 2)
		assert.Equal(t, "Movie 1", movies["m001"].Title)
	})

	t.Run("list page is ordered by id with stable totals", func(t *testing.T) {
		page, err := reader.ListPage(ctx, catalog.Filter{}, 1, 6)
		assert.NoError(t, err)
		assert.Equal(t, 3, page.TotalPages) // 15 movies at page size 6
		if assert.Len(t, page.Items, 6) {
			assert.Equal(t, "m000", page.Items[0].ID)
			assert.Equal(t, "m005", page.Items[5].ID)
		}
	})

	t.Run("filter compiles conjunctively", func(t *testing.T) {
		// Seeded genres cycle Drama/Comedy/Crime; years are 2000+i%20
		filter := catalog.Filter{MinYear: 2000, MaxYear: 2005, Genres: []string{"Drama"}}
		page, err := reader.ListPage(ctx, filter, 1, 6)
		assert.NoError(t, err)
		for _, m := range page.Items {
			assert.Equal(t, "Drama", m.Genre)
			assert.GreaterOrEqual(t, m.Released, 2000)
			assert.LessOrEqual(t, m.Released, 2005)
		}
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		page, err := reader.ListPage(ctx, catalog.Filter{Search: "movie 1"}, 1, 6)
		assert.NoError(t, err)
		assert.NotEmpty(t, page.Items)
		for _, m := range page.Items {
			assert.Contains(t, m.Title, "Movie 1")
		}
	})

	t.Run("no match still reports one page", func(t *testing.T) {
		page, err := reader.ListPage(ctx, catalog.Filter{Search: "no such film"}, 1, 6)
		assert.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("genres", func(t *testing.T) {
		genres, err := reader.Genres(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Comedy", "Crime", "Drama"}, genres)
	})
}
