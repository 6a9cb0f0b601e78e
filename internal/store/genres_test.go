package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetOrCreateGenre(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO genres (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`)).
		WithArgs("Jazz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(7), "Jazz"))

	g, err := s.GetOrCreateGenre(context.Background(), "Jazz")
	if err != nil {
		t.Fatalf("GetOrCreateGenre error: %v", err)
	}
	if g.ID != 7 || g.Name != "Jazz" {
		t.Fatalf("unexpected genre: %+v", g)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPopularGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT g.id, g.name,
		       COUNT(DISTINCT ag.artist_id) AS artist_count,
		       COUNT(DISTINCT vg.venue_id) AS venue_count
		FROM genres g
		LEFT JOIN artist_genres ag ON ag.genre_id = g.id
		LEFT JOIN venue_genres vg ON vg.genre_id = g.id
		GROUP BY g.id, g.name
		ORDER BY COUNT(DISTINCT ag.artist_id) + COUNT(DISTINCT vg.venue_id) DESC, g.name ASC
		LIMIT $1
	`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "artist_count", "venue_count"}).
			AddRow(int64(7), "Jazz", 2, 2).
			AddRow(int64(3), "Classical", 1, 2))

	popular, err := s.PopularGenres(context.Background(), 2)
	if err != nil {
		t.Fatalf("PopularGenres error: %v", err)
	}

	if len(popular) != 2 {
		t.Fatalf("expected 2 genres, got %d", len(popular))
	}
	if popular[0].Name != "Jazz" || popular[0].TotalCount != 4 {
		t.Fatalf("unexpected first genre: %+v", popular[0])
	}
	if popular[1].TotalCount != 3 {
		t.Fatalf("unexpected total count: %+v", popular[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteUnusedGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM genres
		WHERE id NOT IN (SELECT genre_id FROM artist_genres)
		  AND id NOT IN (SELECT genre_id FROM venue_genres)
	`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := s.DeleteUnusedGenres(context.Background())
	if err != nil {
		t.Fatalf("DeleteUnusedGenres error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureGenres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectBegin()
	for _, name := range []string{"Jazz", "Blues"} {
		mock.ExpectExec(regexp.QuoteMeta(`
			INSERT INTO genres (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING
		`)).
			WithArgs(name).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := s.EnsureGenres(context.Background(), []string{"Jazz", "Blues"}); err != nil {
		t.Fatalf("EnsureGenres error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
