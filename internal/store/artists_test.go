package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"tunecrate/internal/models"
)

func TestCreateArtistEmptyBio(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	// The empty bio is written as '' rather than NULL; the column is NOT NULL.
	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO artists (name, bio)
		VALUES ($1, $2)
		RETURNING id, created_at
	`)).
		WithArgs("Nico", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	created, err := s.CreateArtist(context.Background(), &models.Artist{Name: "Nico"})
	if err != nil {
		t.Fatalf("CreateArtist: %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("unexpected id: %d", created.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistClearsBio(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE artists
		SET name = $1, bio = $2
		WHERE id = $3
	`)).
		WithArgs("Nico", "", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.UpdateArtist(context.Background(), 3, &models.Artist{Name: "Nico"}); err != nil {
		t.Fatalf("UpdateArtist: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE artists
		SET name = $1, bio = $2
		WHERE id = $3
	`)).
		WithArgs("Nico", "", int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.UpdateArtist(context.Background(), 404, &models.Artist{Name: "Nico"})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
