package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tunecrate/internal/models"
)

var (
	// ErrGenreNotFound indicates the genre does not exist.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrGenreExists signals the genre name is already taken.
	ErrGenreExists = errors.New("genre already exists")
)

// CreateGenre persists a new genre. Names are unique.
func (s *Store) CreateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	if genre == nil {
		return nil, errors.New("genre is required")
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id
	`, strings.TrimSpace(genre.Name)).Scan(&genre.ID)
	if err != nil {
		if asConflict(err) != nil {
			return nil, ErrGenreExists
		}
		return nil, fmt.Errorf("insert genre: %w", err)
	}
	return genre, nil
}

// GenreByID returns a single genre.
func (s *Store) GenreByID(ctx context.Context, id int64) (*models.Genre, error) {
	var genre models.Genre
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM genres
		WHERE id = $1
	`, id).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return &genre, nil
}

// ListGenres returns all genres ordered by name.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM genres
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]models.Genre, 0)
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return genres, nil
}

// DeleteGenre removes a genre; song links cascade.
func (s *Store) DeleteGenre(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrGenreNotFound
	}
	return nil
}
