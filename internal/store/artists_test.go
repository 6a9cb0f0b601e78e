package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"showbook/internal/models"
)

func TestCreateArtistDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id
		FROM artists
		WHERE name = $1 AND city = $2
	`)).
		WithArgs("Guns N Petals", "San Francisco").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	mock.ExpectRollback()

	artist := &models.Artist{
		Name:   "Guns N Petals",
		City:   "San Francisco",
		State:  "CA",
		Genres: []string{"Rock n Roll"},
	}

	_, err = s.CreateArtist(context.Background(), artist)
	if !errors.Is(err, ErrDuplicateArtist) {
		t.Fatalf("expected ErrDuplicateArtist, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetArtistWithShows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	now := time.Now()
	created := now.Add(-30 * 24 * time.Hour)
	future := now.Add(14 * 24 * time.Hour)
	past := now.Add(-14 * 24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, city, state, phone, image_link,
		       facebook_link, website_link, seeking_venue, seeking_description,
		       created_at, updated_at
		FROM artists
		WHERE id = $1
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "phone", "image_link",
			"facebook_link", "website_link", "seeking_venue", "seeking_description",
			"created_at", "updated_at",
		}).AddRow(int64(4), "Guns N Petals", "San Francisco", "CA", "326-123-5000",
			"", "", "", true, "Looking for shows", created, created))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT g.name
		FROM genres g
		INNER JOIN artist_genres ag ON ag.genre_id = g.id
		WHERE ag.artist_id = $1
		ORDER BY g.name ASC
	`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Rock n Roll"))

	showColumns := []string{
		"artist_id", "artist_name", "artist_image_link",
		"venue_id", "venue_name", "venue_image_link", "start_time",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.artist_id = $1 AND s.start_time > $2
		ORDER BY s.start_time ASC
	`)).
		WithArgs(int64(4), now).
		WillReturnRows(sqlmock.NewRows(showColumns).
			AddRow(int64(4), "Guns N Petals", "", int64(1), "The Musical Hop", "", future))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT s.artist_id, a.name, a.image_link, s.venue_id, v.name, v.image_link, s.start_time
		FROM shows s
		INNER JOIN artists a ON s.artist_id = a.id
		INNER JOIN venues v ON s.venue_id = v.id
		WHERE s.artist_id = $1 AND s.start_time < $2
		ORDER BY s.start_time DESC
	`)).
		WithArgs(int64(4), now).
		WillReturnRows(sqlmock.NewRows(showColumns).
			AddRow(int64(4), "Guns N Petals", "", int64(1), "The Musical Hop", "", past))

	got, err := s.GetArtistWithShows(context.Background(), 4, now)
	if err != nil {
		t.Fatalf("GetArtistWithShows error: %v", err)
	}

	if got.NumUpcomingShows != 1 || got.NumPastShows != 1 {
		t.Fatalf("unexpected show counts: %+v", got)
	}
	if got.UpcomingShows[0].VenueName != "The Musical Hop" {
		t.Fatalf("unexpected venue name %q", got.UpcomingShows[0].VenueName)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchArtistsByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name
		FROM artists
		WHERE name ILIKE $1
		ORDER BY name ASC
	`)).
		WithArgs("%band%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(6), "The Wild Sax Band"))

	items, err := s.SearchArtistsByName(context.Background(), "band")
	if err != nil {
		t.Fatalf("SearchArtistsByName error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "The Wild Sax Band" {
		t.Fatalf("unexpected search results: %+v", items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
