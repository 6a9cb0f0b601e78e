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
	ErrShowNotFound = errors.New("show not found")
	ErrShowConflict = errors.New("show scheduling conflict")
)

// CreateShow books an artist at a venue. Both sides must exist and
// neither may already have a show at the exact start time.
func (s *Store) CreateShow(ctx context.Context, show *models.Show) (*models.Show, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM artists
		WHERE id = $1
	`, show.ArtistID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artist with ID %d: %w", show.ArtistID, ErrArtistNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM venues
		WHERE id = $1
	`, show.VenueID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("venue with ID %d: %w", show.VenueID, ErrVenueNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM shows
		WHERE artist_id = $1 AND start_time = $2
	`, show.ArtistID, show.StartTime).Scan(&id)
	if err == nil {
		return nil, fmt.Errorf("artist %d already has a show at %s: %w",
			show.ArtistID, show.StartTime.Format(time.RFC3339), ErrShowConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check artist conflict: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT id
		FROM shows
		WHERE venue_id = $1 AND start_time = $2
	`, show.VenueID, show.StartTime).Scan(&id)
	if err == nil {
		return nil, fmt.Errorf("venue %d already has a show at %s: %w",
			show.VenueID, show.StartTime.Format(time.RFC3339), ErrShowConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check venue conflict: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO shows (artist_id, venue_id, start_time)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, show.ArtistID, show.VenueID, show.StartTime,
	).Scan(&show.ID, &show.CreatedAt, &show.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("show at %s: %w", show.StartTime.Format(time.RFC3339), ErrShowConflict)
		}
		return nil, fmt.Errorf("insert show: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return show, nil
}

// GetShow retrieves a single show by ID with artist and venue details.
func (s *Store) GetShow(ctx context.Context, id int64) (*models.ShowWithDetails, error) {
	var sh models.ShowWithDetails
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.artist_id, s.venue_id, s.start_time, s.created_at, s.updated_at,
		       a.name, a.image_link, v.name, v.image_link
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.id = $1
	`, id).Scan(&sh.ID, &sh.ArtistID, &sh.VenueID, &sh.StartTime, &sh.CreatedAt, &sh.UpdatedAt,
		&sh.ArtistName, &sh.ArtistImageLink, &sh.VenueName, &sh.VenueImageLink)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("show with ID %d: %w", id, ErrShowNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select show: %w", err)
	}
	return &sh, nil
}

// ListShows returns all shows with artist and venue details, newest first.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.artist_id, s.venue_id, s.start_time, s.created_at, s.updated_at,
		       a.name, a.image_link, v.name, v.image_link
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		ORDER BY s.start_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	defer rows.Close()

	return scanShowsWithDetails(rows)
}

// ListUpcomingShows returns shows with start_time strictly after now,
// soonest first. A zero limit means no limit.
func (s *Store) ListUpcomingShows(ctx context.Context, now time.Time, limit int) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.artist_id, s.venue_id, s.start_time, s.created_at, s.updated_at,
		       a.name, a.image_link, v.name, v.image_link
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.start_time > $1
		ORDER BY s.start_time ASC
		LIMIT NULLIF($2, 0)
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("select upcoming shows: %w", err)
	}
	defer rows.Close()

	return scanShowsWithDetails(rows)
}

// ListPastShows returns shows with start_time strictly before now, most
// recent first. A zero limit means no limit.
func (s *Store) ListPastShows(ctx context.Context, now time.Time, limit int) ([]models.ShowWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.artist_id, s.venue_id, s.start_time, s.created_at, s.updated_at,
		       a.name, a.image_link, v.name, v.image_link
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.start_time < $1
		ORDER BY s.start_time DESC
		LIMIT NULLIF($2, 0)
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("select past shows: %w", err)
	}
	defer rows.Close()

	return scanShowsWithDetails(rows)
}

// DeleteShow removes a show unconditionally.
func (s *Store) DeleteShow(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM shows
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete show: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete show: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("show with ID %d: %w", id, ErrShowNotFound)
	}
	return nil
}

// ShowStatistics counts all shows, upcoming ones (start_time > now) and
// past ones (start_time < now). A show starting exactly at now is counted
// in the total only.
func (s *Store) ShowStatistics(ctx context.Context, now time.Time) (*models.ShowStats, error) {
	var stats models.ShowStats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE start_time > $1),
		       COUNT(*) FILTER (WHERE start_time < $1)
		FROM shows
	`, now).Scan(&stats.Total, &stats.Upcoming, &stats.Past)
	if err != nil {
		return nil, fmt.Errorf("select show statistics: %w", err)
	}
	return &stats, nil
}

// DirectoryStatistics counts venues, artists and shows in one pass for
// the dashboard summary.
func (s *Store) DirectoryStatistics(ctx context.Context, now time.Time) (*models.DirectoryStats, error) {
	var stats models.DirectoryStats
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM venues),
		       (SELECT COUNT(*) FROM artists),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE start_time > $1),
		       COUNT(*) FILTER (WHERE start_time < $1)
		FROM shows
	`, now).Scan(&stats.VenueCount, &stats.ArtistCount,
		&stats.Shows.Total, &stats.Shows.Upcoming, &stats.Shows.Past)
	if err != nil {
		return nil, fmt.Errorf("select directory statistics: %w", err)
	}
	return &stats, nil
}

func scanShowsWithDetails(rows *sql.Rows) ([]models.ShowWithDetails, error) {
	var shows []models.ShowWithDetails
	for rows.Next() {
		var sh models.ShowWithDetails
		if err := rows.Scan(&sh.ID, &sh.ArtistID, &sh.VenueID, &sh.StartTime,
			&sh.CreatedAt, &sh.UpdatedAt,
			&sh.ArtistName, &sh.ArtistImageLink, &sh.VenueName, &sh.VenueImageLink); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, sh)
	}
	return shows, rows.Err()
}
