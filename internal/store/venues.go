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
	ErrVenueNotFound  = errors.New("venue not found")
	ErrDuplicateVenue = errors.New("venue already exists")
	ErrVenueHasShows  = errors.New("venue has shows")
)

// CreateVenue adds a new venue together with its genre associations.
// Either the full record and its links commit, or nothing does.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
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
		FROM venues
		WHERE name = $1 AND city = $2
	`, venue.Name, venue.City).Scan(&existing)
	if err == nil {
		return nil, fmt.Errorf("venue %q already exists in %s: %w", venue.Name, venue.City, ErrDuplicateVenue)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate venue: %w", err)
	}

	ids, err := genreIDs(ctx, tx, venue.Genres)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state, address, phone, image_link,
		                    facebook_link, website_link, seeking_talent, seeking_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, venue.ImageLink,
		venue.FacebookLink, venue.WebsiteLink, venue.SeekingTalent, venue.SeekingDescription,
	).Scan(&venue.ID, &venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("venue %q already exists in %s: %w", venue.Name, venue.City, ErrDuplicateVenue)
		}
		return nil, fmt.Errorf("insert venue: %w", err)
	}

	for _, genreID := range ids {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO venue_genres (venue_id, genre_id)
			VALUES ($1, $2)
		`, venue.ID, genreID); err != nil {
			return nil, fmt.Errorf("link venue genre: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return venue, nil
}

// GetVenue retrieves a single venue by ID with its genres.
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	v, err := scanVenue(s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, address, phone, image_link,
		       facebook_link, website_link, seeking_talent, seeking_description,
		       created_at, updated_at
		FROM venues
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("venue with ID %d: %w", id, ErrVenueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}

	v.Genres, err = venueGenres(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// GetVenueWithShows retrieves a venue with its shows split into upcoming
// (start_time > now) and past (start_time < now) at query time.
func (s *Store) GetVenueWithShows(ctx context.Context, id int64, now time.Time) (*models.VenueWithShows, error) {
	venue, err := s.GetVenue(ctx, id)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.venueShows(ctx, id, now, true)
	if err != nil {
		return nil, err
	}
	past, err := s.venueShows(ctx, id, now, false)
	if err != nil {
		return nil, err
	}

	return &models.VenueWithShows{
		Venue:            *venue,
		UpcomingShows:    upcoming,
		PastShows:        past,
		NumUpcomingShows: len(upcoming),
		NumPastShows:     len(past),
	}, nil
}

// ListAreas groups venues into distinct (city, state) pairs, each venue
// annotated with its upcoming show count.
func (s *Store) ListAreas(ctx context.Context, now time.Time) ([]models.Area, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		GROUP BY v.id, v.name, v.city, v.state
		ORDER BY v.city ASC, v.state ASC, v.name ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("select areas: %w", err)
	}
	defer rows.Close()

	var areas []models.Area
	for rows.Next() {
		var (
			item        models.VenueListItem
			city, state string
		)
		if err := rows.Scan(&item.ID, &item.Name, &city, &state, &item.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan area venue: %w", err)
		}
		n := len(areas)
		if n == 0 || areas[n-1].City != city || areas[n-1].State != state {
			areas = append(areas, models.Area{City: city, State: state})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, item)
		areas[n-1].VenueCount = len(areas[n-1].Venues)
	}
	return areas, rows.Err()
}

// SearchVenuesByName finds venues whose name contains the term,
// case-insensitively.
func (s *Store) SearchVenuesByName(ctx context.Context, term string, now time.Time) ([]models.VenueListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name,
		       COUNT(s.id) FILTER (WHERE s.start_time > $2) AS num_upcoming
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.name ILIKE $1
		GROUP BY v.id, v.name
		ORDER BY v.name ASC
	`, "%"+term+"%", now)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	defer rows.Close()

	var items []models.VenueListItem
	for rows.Next() {
		var item models.VenueListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan venue item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateVenue applies a partial update. Nil fields keep their prior
// values; a non-nil genre list replaces the association set entirely.
func (s *Store) UpdateVenue(ctx context.Context, id int64, upd *models.VenueUpdate) (*models.Venue, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	venue, err := scanVenue(tx.QueryRowContext(ctx, `
		SELECT id, name, city, state, address, phone, image_link,
		       facebook_link, website_link, seeking_talent, seeking_description,
		       created_at, updated_at
		FROM venues
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("venue with ID %d: %w", id, ErrVenueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}

	applyVenueUpdate(venue, upd)

	if upd.Name != nil || upd.City != nil {
		var other int64
		err = tx.QueryRowContext(ctx, `
			SELECT id
			FROM venues
			WHERE name = $1 AND city = $2 AND id <> $3
		`, venue.Name, venue.City, id).Scan(&other)
		if err == nil {
			return nil, fmt.Errorf("venue %q already exists in %s: %w", venue.Name, venue.City, ErrDuplicateVenue)
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("check duplicate venue: %w", err)
		}
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE venues
		SET name = $1, city = $2, state = $3, address = $4, phone = $5,
		    image_link = $6, facebook_link = $7, website_link = $8,
		    seeking_talent = $9, seeking_description = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at
	`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone,
		venue.ImageLink, venue.FacebookLink, venue.WebsiteLink,
		venue.SeekingTalent, venue.SeekingDescription, id,
	).Scan(&venue.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("venue %q already exists in %s: %w", venue.Name, venue.City, ErrDuplicateVenue)
		}
		return nil, fmt.Errorf("update venue: %w", err)
	}

	if upd.Genres != nil {
		ids, err := genreIDs(ctx, tx, upd.Genres)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM venue_genres
			WHERE venue_id = $1
		`, id); err != nil {
			return nil, fmt.Errorf("clear venue genres: %w", err)
		}
		for _, genreID := range ids {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO venue_genres (venue_id, genre_id)
				VALUES ($1, $2)
			`, id, genreID); err != nil {
				return nil, fmt.Errorf("link venue genre: %w", err)
			}
		}
		venue.Genres = upd.Genres
	} else {
		venue.Genres, err = venueGenres(ctx, tx, id)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return venue, nil
}

// DeleteVenue removes a venue and its genre associations. Deletion is
// refused while any show references the venue.
func (s *Store) DeleteVenue(ctx context.Context, id int64) error {
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
		FROM venues
		WHERE id = $1
	`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("venue with ID %d: %w", id, ErrVenueNotFound)
	}
	if err != nil {
		return fmt.Errorf("select venue: %w", err)
	}

	var showCount int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM shows
		WHERE venue_id = $1
	`, id).Scan(&showCount); err != nil {
		return fmt.Errorf("count venue shows: %w", err)
	}
	if showCount > 0 {
		return fmt.Errorf("cannot delete venue with %d shows: %w", showCount, ErrVenueHasShows)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM venue_genres
		WHERE venue_id = $1
	`, id); err != nil {
		return fmt.Errorf("clear venue genres: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM venues
		WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

func (s *Store) venueShows(ctx context.Context, venueID int64, now time.Time, upcoming bool) ([]models.ShowSummary, error) {
	query := `
		SELECT s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.venue_id = $1 AND s.start_time > $2
		ORDER BY s.start_time ASC
	`
	if !upcoming {
		query = `
		SELECT s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.venue_id = $1 AND s.start_time < $2
		ORDER BY s.start_time DESC
	`
	}

	rows, err := s.db.QueryContext(ctx, query, venueID, now)
	if err != nil {
		return nil, fmt.Errorf("select venue shows: %w", err)
	}
	defer rows.Close()

	return scanShowSummaries(rows)
}

func venueGenres(ctx context.Context, q querier, venueID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT g.name
		FROM genres g
		INNER JOIN venue_genres vg ON vg.genre_id = g.id
		WHERE vg.venue_id = $1
		ORDER BY g.name ASC
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("select venue genres: %w", err)
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

func scanVenue(row *sql.Row) (*models.Venue, error) {
	var v models.Venue
	err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone,
		&v.ImageLink, &v.FacebookLink, &v.WebsiteLink, &v.SeekingTalent,
		&v.SeekingDescription, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func applyVenueUpdate(venue *models.Venue, upd *models.VenueUpdate) {
	if upd.Name != nil {
		venue.Name = *upd.Name
	}
	if upd.City != nil {
		venue.City = *upd.City
	}
	if upd.State != nil {
		venue.State = *upd.State
	}
	if upd.Address != nil {
		venue.Address = *upd.Address
	}
	if upd.Phone != nil {
		venue.Phone = *upd.Phone
	}
	if upd.ImageLink != nil {
		venue.ImageLink = *upd.ImageLink
	}
	if upd.FacebookLink != nil {
		venue.FacebookLink = *upd.FacebookLink
	}
	if upd.WebsiteLink != nil {
		venue.WebsiteLink = *upd.WebsiteLink
	}
	if upd.SeekingTalent != nil {
		venue.SeekingTalent = *upd.SeekingTalent
	}
	if upd.SeekingDescription != nil {
		venue.SeekingDescription = *upd.SeekingDescription
	}
}

func scanShowSummaries(rows *sql.Rows) ([]models.ShowSummary, error) {
	var shows []models.ShowSummary
	for rows.Next() {
		var sh models.ShowSummary
		if err := rows.Scan(&sh.ArtistID, &sh.ArtistName, &sh.ArtistImageLink,
			&sh.VenueID, &sh.VenueName, &sh.VenueImageLink, &sh.StartTime); err != nil {
			return nil, fmt.Errorf("scan show summary: %w", err)
		}
		shows = append(shows, sh)
	}
	return shows, rows.Err()
}
