// Package genres manages the fixed genre vocabulary.
package genres

import (
	"context"
	"strings"

	"showbook/internal/models"
	"showbook/internal/validate"
)

// DefaultPopularLimit caps genre popularity results unless the caller
// asks for a different limit.
const DefaultPopularLimit = 10

// Store defines persistence operations for genres
type Store interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GetOrCreateGenre(ctx context.Context, name string) (*models.Genre, error)
	EnsureGenres(ctx context.Context, names []string) error
	PopularGenres(ctx context.Context, limit int) ([]models.GenrePopularity, error)
	DeleteUnusedGenres(ctx context.Context) (int, error)
}

// Service coordinates genre-related operations
type Service interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetOrCreate(ctx context.Context, name string) (*models.Genre, error)
	EnsureDefaults(ctx context.Context) error
	Popular(ctx context.Context, limit int) ([]models.GenrePopularity, error)
	DeleteUnused(ctx context.Context) (int, error)
}

type service struct {
	store Store
}

// New constructs a genres Service backed by the provided Store
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListGenres(ctx)
}

func (s *service) GetOrCreate(ctx context.Context, name string) (*models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validate.Errorf("genre name is required")
	}
	if _, err := validate.Genres([]string{name}); err != nil {
		return nil, err
	}
	return s.store.GetOrCreateGenre(ctx, name)
}

// EnsureDefaults provisions the full fixed vocabulary, leaving existing
// rows untouched.
func (s *service) EnsureDefaults(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.EnsureGenres(ctx, validate.GenreNames())
}

func (s *service) Popular(ctx context.Context, limit int) ([]models.GenrePopularity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return s.store.PopularGenres(ctx, limit)
}

func (s *service) DeleteUnused(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.DeleteUnusedGenres(ctx)
}
