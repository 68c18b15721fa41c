package postgres

import (
	"context"
	"fmt"
	"strings"

	"movie-collections/internal/core/domain/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogReader implements ports.CatalogReader over the movies table.
// Strictly read-only; catalog ingestion is owned elsewhere.
type CatalogReader struct {
	db *pgxpool.Pool
}

// NewCatalogReader creates a new postgres catalog reader.
func NewCatalogReader(db *pgxpool.Pool) *CatalogReader {
	return &CatalogReader{db: db}
}

// Exists reports whether the catalog recognizes the movie id.
func (r *CatalogReader) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check movie: %w", err)
	}
	return exists, nil
}

// FindByIDs fetches movies keyed by id; unknown ids are simply absent.
func (r *CatalogReader) FindByIDs(ctx context.Context, ids []string) (map[string]catalog.Movie, error) {
	if len(ids) == 0 {
		return map[string]catalog.Movie{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, synopsis, released, genre
		FROM movies
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := make(map[string]catalog.Movie, len(ids))
	for rows.Next() {
		var m catalog.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Synopsis, &m.Released, &m.Genre); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return movies, nil
}

// ListPage returns one catalog page matching the filter, ordered by id
// ascending for a stable browse order, plus the total page count for
// the matching set.
func (r *CatalogReader) ListPage(ctx context.Context, filter catalog.Filter, page, pageSize int) (catalog.PageResult[catalog.Movie], error) {
	where, args := compileFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM movies" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return catalog.PageResult[catalog.Movie]{}, fmt.Errorf("failed to count movies: %w", err)
	}

	offset := (page - 1) * pageSize
	pageQuery := fmt.Sprintf(
		"SELECT id, title, synopsis, released, genre FROM movies%s ORDER BY id ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2,
	)
	rows, err := r.db.Query(ctx, pageQuery, append(args, pageSize, offset)...)
	if err != nil {
		return catalog.PageResult[catalog.Movie]{}, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []catalog.Movie{}
	for rows.Next() {
		var m catalog.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Synopsis, &m.Released, &m.Genre); err != nil {
			return catalog.PageResult[catalog.Movie]{}, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return catalog.PageResult[catalog.Movie]{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return catalog.PageResult[catalog.Movie]{
		Items:      movies,
		TotalPages: catalog.TotalPages(total, pageSize),
	}, nil
}

// Genres returns the distinct genres present in the catalog.
func (r *CatalogReader) Genres(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT genre FROM movies ORDER BY genre ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return genres, nil
}

// compileFilter turns a Filter into a WHERE clause with positional
// args. Conjunctive: every provided constraint must hold.
func compileFilter(f catalog.Filter) (string, []any) {
	var clauses []string
	var args []any

	next := func() int { return len(args) + 1 }

	if f.Search != "" {
		n := next()
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR synopsis ILIKE $%d)", n, n))
		args = append(args, "%"+f.Search+"%")
	}
	if f.MinYear > 0 {
		clauses = append(clauses, fmt.Sprintf("released >= $%d", next()))
		args = append(args, f.MinYear)
	}
	if f.MaxYear > 0 {
		clauses = append(clauses, fmt.Sprintf("released <= $%d", next()))
		args = append(args, f.MaxYear)
	}
	if len(f.Genres) > 0 {
		clauses = append(clauses, fmt.Sprintf("genre ILIKE ANY($%d)", next()))
		args = append(args, f.Genres)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
