package service

import (
	"context"
	"log/slog"

	"movie-collections/internal/core/domain/catalog"
	"movie-collections/internal/core/domain/membership"

	"github.com/stretchr/testify/mock"
)

// Mocks

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Exists(ctx context.Context, user, movieID string, kind membership.Kind) (bool, error) {
	args := m.Called(ctx, user, movieID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Insert(ctx context.Context, user, movieID string, kind membership.Kind) error {
	args := m.Called(ctx, user, movieID, kind)
	return args.Error(0)
}

func (m *MockStore) Remove(ctx context.Context, user, movieID string, kind membership.Kind) error {
	args := m.Called(ctx, user, movieID, kind)
	return args.Error(0)
}

func (m *MockStore) ListPage(ctx context.Context, user string, kind membership.Kind, page, pageSize int) (catalog.PageResult[string], error) {
	args := m.Called(ctx, user, kind, page, pageSize)
	return args.Get(0).(catalog.PageResult[string]), args.Error(1)
}

func (m *MockStore) RecentActivity(ctx context.Context, user string, limit int) ([]membership.Activity, error) {
	args := m.Called(ctx, user, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]membership.Activity), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FindByIDs(ctx context.Context, ids []string) (map[string]catalog.Movie, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]catalog.Movie), args.Error(1)
}

func (m *MockCatalog) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalog) ListPage(ctx context.Context, filter catalog.Filter, page, pageSize int) (catalog.PageResult[catalog.Movie], error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).(catalog.PageResult[catalog.Movie]), args.Error(1)
}

func (m *MockCatalog) Genres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMovieCache struct {
	mock.Mock
}

func (m *MockMovieCache) Set(ctx context.Context, id string, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockMovieCache) GetBatch(ctx context.Context, ids []string) (map[string][]byte, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *MockMovieCache) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieCache) SetGenres(ctx context.Context, genres []string) error {
	args := m.Called(ctx, genres)
	return args.Error(0)
}

func (m *MockMovieCache) GetGenres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Helper to silence logs
type testWriter struct{}

func (tw *testWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&testWriter{}, nil))
}
