package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"showbook/internal/models"
)

var (
	ErrArtistNotFound  = errors.New("artist not found")
	ErrDuplicateArtist = errors.New("artist already exists")
	ErrArtistHasShows  = errors.New("artist has shows")
)

// CreateArtist adds a new artist together with its genre associations.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM artists
		WHERE name = $1 AND city = $2
	`, artist.Name, artist.City).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("artist %q already exists in %s: %w", artist.Name, artist.City, ErrDuplicateArtist)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate artist: %w", err)
	}

	ids, err := genreIDs(ctx, tx, artist.Genres)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO artists (name, city, state, phone, image_link,
		                     facebook_link, website_link, seeking_venue, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, artist.Name, artist.City, artist.State, artist.Phone, artist.ImageLink,
		artist.FacebookLink, artist.WebsiteLink, artist.SeekingVenue, artist.SeekingDescription,
	).Scan(&artist.ID, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("artist %q already exists in %s: %w", artist.Name, artist.City, ErrDuplicateArtist)
		}
		return nil, fmt.Errorf("insert artist: %w", err)
	}

	for _, genreID := range ids {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO artist_genres (artist_id, genre_id)
			VALUES ($1, $2)
		`, artist.ID, genreID); err != nil {
			return nil, fmt.Errorf("link artist genre: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return artist, nil
}

// GetArtist retrieves a single artist by ID with its genres.
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	a, err := scanArtist(s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, phone, image_link,
		       facebook_link, website_link, seeking_venue, seeking_description,
		       created_at, updated_at
		FROM artists
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artist with ID %d: %w", id, ErrArtistNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}

	a.Genres, err = artistGenres(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetArtistWithShows retrieves an artist with its shows split into
// upcoming (start_time > now) and past (start_time < now) at query time.
func (s *Store) GetArtistWithShows(ctx context.Context, id int64, now time.Time) (*models.ArtistWithShows, error) {
	artist, err := s.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.artistShows(ctx, id, now, true)
	if err != nil {
		return nil, err
	}
	past, err := s.artistShows(ctx, id, now, false)
	if err != nil {
		return nil, err
	}

	return &models.ArtistWithShows{
		Artist:           *artist,
		UpcomingShows:    upcoming,
		PastShows:        past,
		NumUpcomingShows: len(upcoming),
		NumPastShows:     len(past),
	}, nil
}

// ListArtists returns all artists as index items ordered by name.
func (s *Store) ListArtists(ctx context.Context) ([]models.ArtistListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM artists
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var items []models.ArtistListItem
	for rows.Next() {
		var item models.ArtistListItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan artist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SearchArtistsByName finds artists whose name contains the term,
// case-insensitively.
func (s *Store) SearchArtistsByName(ctx context.Context, term string) ([]models.ArtistListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM artists
		WHERE name ILIKE $1
		ORDER BY name ASC
	`, "%"+term+"%")
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer rows.Close()

	var items []models.ArtistListItem
	for rows.Next() {
		var item models.ArtistListItem
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan artist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateArtist applies a partial update, same semantics as UpdateVenue.
func (s *Store) UpdateArtist(ctx context.Context, id int64, upd *models.ArtistUpdate) (*models.Artist, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	artist, err := scanArtist(tx.QueryRowContext(ctx, `
		SELECT id, name, city, state, phone, image_link,
		       facebook_link, website_link, seeking_venue, seeking_description,
		       created_at, updated_at
		FROM artists
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artist with ID %d: %w", id, ErrArtistNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}

	applyArtistUpdate(artist, upd)

	if upd.Name != nil || upd.City != nil {
		var other int64
		err = tx.QueryRowContext(ctx, `
			SELECT id
			FROM artists
			WHERE name = $1 AND city = $2 AND id <> $3
		`, artist.Name, artist.City, id).Scan(&other)
		if err == nil {
			return nil, fmt.Errorf("artist %q already exists in %s: %w", artist.Name, artist.City, ErrDuplicateArtist)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("check duplicate artist: %w", err)
		}
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE artists
		SET name = $1, city = $2, state = $3, phone = $4,
		    image_link = $5, facebook_link = $6, website_link = $7,
		    seeking_venue = $8, seeking_description = $9, updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING updated_at
	`, artist.Name, artist.City, artist.State, artist.Phone,
		artist.ImageLink, artist.FacebookLink, artist.WebsiteLink,
		artist.SeekingVenue, artist.SeekingDescription, id,
	).Scan(&artist.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("artist %q already exists in %s: %w", artist.Name, artist.City, ErrDuplicateArtist)
		}
		return nil, fmt.Errorf("update artist: %w", err)
	}

	if upd.Genres != nil {
		ids, err := genreIDs(ctx, tx, upd.Genres)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM artist_genres
			WHERE artist_id = $1
		`, id); err != nil {
			return nil, fmt.Errorf("clear artist genres: %w", err)
		}
		for _, genreID := range ids {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO artist_genres (artist_id, genre_id)
				VALUES ($1, $2)
			`, id, genreID); err != nil {
				return nil, fmt.Errorf("link artist genre: %w", err)
			}
		}
		artist.Genres = upd.Genres
	} else {
		artist.Genres, err = artistGenres(ctx, tx, id)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return artist, nil
}

// DeleteArtist removes an artist and its genre associations. Deletion is
// refused while any show references the artist.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int64
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM artists
		WHERE id = $1
	`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("artist with ID %d: %w", id, ErrArtistNotFound)
	}
	if err != nil {
		return fmt.Errorf("select artist: %w", err)
	}

	var showCount int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM shows
		WHERE artist_id = $1
	`, id).Scan(&showCount); err != nil {
		return fmt.Errorf("count artist shows: %w", err)
	}
	if showCount > 0 {
		return fmt.Errorf("cannot delete artist with %d shows: %w", showCount, ErrArtistHasShows)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM artist_genres
		WHERE artist_id = $1
	`, id); err != nil {
		return fmt.Errorf("clear artist genres: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM artists
		WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

func (s *Store) artistShows(ctx context.Context, artistID int64, now time.Time, upcoming bool) ([]models.ShowSummary, error) {
	query := `
		SELECT s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.artist_id = $1 AND s.start_time > $2
		ORDER BY s.start_time ASC
	`
	if !upcoming {
		query = `
		SELECT s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.artist_id = $1 AND s.start_time < $2
		ORDER BY s.start_time DESC
	`
	}

	rows, err := s.db.QueryContext(ctx, query, artistID, now)
	if err != nil {
		return nil, fmt.Errorf("select artist shows: %w", err)
	}
	defer rows.Close()

	return scanShowSummaries(rows)
}

func artistGenres(ctx context.Context, q querier, artistID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT g.name
		FROM genres g
		INNER JOIN artist_genres ag ON ag.genre_id = g.id
		WHERE ag.artist_id = $1
		ORDER BY g.name ASC
	`, artistID)
	if err != nil {
		return nil, fmt.Errorf("select artist genres: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanArtist(row *sql.Row) (*models.Artist, error) {
	var a models.Artist
	err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone,
		&a.ImageLink, &a.FacebookLink, &a.WebsiteLink, &a.SeekingVenue,
		&a.SeekingDescription, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func applyArtistUpdate(artist *models.Artist, upd *models.ArtistUpdate) {
	if upd.Name != nil {
		artist.Name = *upd.Name
	}
	if upd.City != nil {
		artist.City = *upd.City
	}
	if upd.State != nil {
		artist.State = *upd.State
	}
	if upd.Phone != nil {
		artist.Phone = *upd.Phone
	}
	if upd.ImageLink != nil {
		artist.ImageLink = *upd.ImageLink
	}
	if upd.FacebookLink != nil {
		artist.FacebookLink = *upd.FacebookLink
	}
	if upd.WebsiteLink != nil {
		artist.WebsiteLink = *upd.WebsiteLink
	}
	if upd.SeekingVenue != nil {
		artist.SeekingVenue = *upd.SeekingVenue
	}
	if upd.SeekingDescription != nil {
		artist.SeekingDescription = *upd.SeekingDescription
	}
}
