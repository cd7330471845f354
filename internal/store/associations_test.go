package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestAssignSongAlbumUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	track := 3
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO album_songs (song_id, album_id, track_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (song_id)
		DO UPDATE SET album_id = EXCLUDED.album_id, track_number = EXCLUDED.track_number
	`)).
		WithArgs(int64(7), int64(4), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.AssignSongAlbum(context.Background(), 7, 4, &track); err != nil {
		t.Fatalf("AssignSongAlbum: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnassignSongAlbumNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM album_songs WHERE song_id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.UnassignSongAlbum(context.Background(), 7); !errors.Is(err, ErrAlbumLinkNotFound) {
		t.Fatalf("expected ErrAlbumLinkNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddSongArtistDuplicateIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO song_artists (song_id, artist_id, role)
		VALUES ($1, $2, $3)
	`)).
		WithArgs(int64(7), int64(2), "featured").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "song_artists_pkey"})

	err = s.AddSongArtist(context.Background(), 7, 2, "featured")
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Constraint != "song_artists_pkey" {
		t.Fatalf("unexpected constraint: %q", ce.Constraint)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddSongGenreSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO song_genres (song_id, genre_id)
		VALUES ($1, $2)
	`)).
		WithArgs(int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.AddSongGenre(context.Background(), 7, 9); err != nil {
		t.Fatalf("AddSongGenre: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemoveSongGenreNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM song_genres
		WHERE song_id = $1 AND genre_id = $2
	`)).
		WithArgs(int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemoveSongGenre(context.Background(), 7, 9); !errors.Is(err, ErrGenreLinkNotFound) {
		t.Fatalf("expected ErrGenreLinkNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
