package store

import (
	"context"
	"fmt"

	"showbook/internal/models"
)

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM genres
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// GetOrCreateGenre returns the genre with the given name, creating it if
// it does not exist yet.
func (s *Store) GetOrCreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	var g models.Genre
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO genres (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`, name).Scan(&g.ID, &g.Name)
	if err != nil {
		return nil, fmt.Errorf("get or create genre: %w", err)
	}
	return &g, nil
}

// EnsureGenres inserts any of the given genre names that are missing.
// Existing rows are left untouched.
func (s *Store) EnsureGenres(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO genres (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`, name); err != nil {
			return fmt.Errorf("ensure genre %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// PopularGenres counts linked artists and venues per genre and returns
// the top genres by combined count. Ties break by ascending name.
func (s *Store) PopularGenres(ctx context.Context, limit int) ([]models.GenrePopularity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name,
		       COUNT(DISTINCT ag.artist_id) AS artist_count,
		       COUNT(DISTINCT vg.venue_id) AS venue_count
		FROM genres g
		LEFT JOIN artist_genres ag ON ag.genre_id = g.id
		LEFT JOIN venue_genres vg ON vg.genre_id = g.id
		GROUP BY g.id, g.name
		ORDER BY COUNT(DISTINCT ag.artist_id) + COUNT(DISTINCT vg.venue_id) DESC, g.name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select popular genres: %w", err)
	}
	defer rows.Close()

	var popular []models.GenrePopularity
	for rows.Next() {
		var p models.GenrePopularity
		if err := rows.Scan(&p.ID, &p.Name, &p.ArtistCount, &p.VenueCount); err != nil {
			return nil, fmt.Errorf("scan genre popularity: %w", err)
		}
		p.TotalCount = p.ArtistCount + p.VenueCount
		popular = append(popular, p)
	}
	return popular, rows.Err()
}

// DeleteUnusedGenres removes genres with zero venue and zero artist
// associations and reports how many were removed.
func (s *Store) DeleteUnusedGenres(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM genres
		WHERE id NOT IN (SELECT genre_id FROM artist_genres)
		  AND id NOT IN (SELECT genre_id FROM venue_genres)
	`)
	if err != nil {
		return 0, fmt.Errorf("delete unused genres: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete unused genres: %w", err)
	}
	return int(rows), nil
}
