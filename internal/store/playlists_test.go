package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"tunecrate/internal/models"
)

func TestReorderPlaylistSongsCommitsWholeBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	updateSQL := regexp.QuoteMeta(`
		UPDATE playlist_songs
		SET position = $1
		WHERE playlist_id = $2 AND song_id = $3
	`)

	mock.ExpectBegin()
	mock.ExpectPrepare(updateSQL)
	mock.ExpectExec(updateSQL).WithArgs(3, int64(1), int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateSQL).WithArgs(1, int64(1), int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateSQL).WithArgs(2, int64(1), int64(12)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE playlists SET updated_at = $1 WHERE id = $2
	`)).WithArgs(sqlmock.AnyArg(), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = s.ReorderPlaylistSongs(context.Background(), 1, []models.PositionUpdate{
		{SongID: 10, Position: 3},
		{SongID: 11, Position: 1},
		{SongID: 12, Position: 2},
	})
	if err != nil {
		t.Fatalf("ReorderPlaylistSongs: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReorderPlaylistSongsRollsBackOnUnknownMember(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	updateSQL := regexp.QuoteMeta(`
		UPDATE playlist_songs
		SET position = $1
		WHERE playlist_id = $2 AND song_id = $3
	`)

	mock.ExpectBegin()
	mock.ExpectPrepare(updateSQL)
	mock.ExpectExec(updateSQL).WithArgs(1, int64(1), int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateSQL).WithArgs(2, int64(1), int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = s.ReorderPlaylistSongs(context.Background(), 1, []models.PositionUpdate{
		{SongID: 10, Position: 1},
		{SongID: 99, Position: 2},
	})

	var unknown *UnknownMemberError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMemberError, got %v", err)
	}
	if unknown.SongID != 99 || unknown.PlaylistID != 1 {
		t.Fatalf("unexpected error detail: %+v", unknown)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReorderPlaylistSongsRollsBackOnStorageFault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	updateSQL := regexp.QuoteMeta(`
		UPDATE playlist_songs
		SET position = $1
		WHERE playlist_id = $2 AND song_id = $3
	`)

	mock.ExpectBegin()
	mock.ExpectPrepare(updateSQL)
	mock.ExpectExec(updateSQL).WithArgs(1, int64(1), int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateSQL).WithArgs(2, int64(1), int64(11)).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = s.ReorderPlaylistSongs(context.Background(), 1, []models.PositionUpdate{
		{SongID: 10, Position: 1},
		{SongID: 11, Position: 2},
	})
	if err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePlaylistDuplicateNameIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	owner := int64(5)
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO playlists (name, kind, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`)).
		WithArgs("Road Trip", models.PlaylistKindUser, owner, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "playlists_owner_name_key"})

	_, err = s.CreatePlaylist(context.Background(), "Road Trip", models.PlaylistKindUser, &owner)
	if !IsConflict(err, "playlists_owner_name_key") {
		t.Fatalf("expected conflict on playlists_owner_name_key, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddPlaylistSongDuplicateIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO playlist_songs (playlist_id, song_id, position, added_at)
		VALUES ($1, $2, $3, $4)
	`)).
		WithArgs(int64(1), int64(10), nil, sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "playlist_songs_pkey"})

	err = s.AddPlaylistSong(context.Background(), 1, 10, nil)
	if !IsConflict(err, "playlist_songs_pkey") {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddPlaylistSongSurvivesTouchFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO playlist_songs (playlist_id, song_id, position, added_at)
		VALUES ($1, $2, $3, $4)
	`)).
		WithArgs(int64(1), int64(10), nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE playlists SET updated_at = $1 WHERE id = $2
	`)).
		WithArgs(sqlmock.AnyArg(), int64(1)).
		WillReturnError(errors.New("connection reset"))

	// The membership row landed; a failed updated_at bump must not surface.
	if err := s.AddPlaylistSong(context.Background(), 1, 10, nil); err != nil {
		t.Fatalf("AddPlaylistSong: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemovePlaylistSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`)).
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemovePlaylistSong(context.Background(), 1, 10); !errors.Is(err, ErrPlaylistSongNotFound) {
		t.Fatalf("expected ErrPlaylistSongNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPlaylistByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, kind, owner_user_id, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "kind", "owner_user_id", "created_at", "updated_at"}))

	if _, err := s.PlaylistByID(context.Background(), 404); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
