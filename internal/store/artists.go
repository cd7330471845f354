package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tunecrate/internal/models"
)

// ErrArtistNotFound indicates the artist does not exist.
var ErrArtistNotFound = errors.New("artist not found")

// CreateArtist persists a new artist.
func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error) {
	if artist == nil {
		return nil, errors.New("artist is required")
	}

	// bio is NOT NULL with an empty-string default, so the empty value goes
	// through as-is rather than as NULL.
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name, bio)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, strings.TrimSpace(artist.Name), artist.Bio).Scan(&artist.ID, &artist.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert artist: %w", err)
	}
	return artist, nil
}

// ArtistByID returns a single artist.
func (s *Store) ArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, bio, created_at
		FROM artists
		WHERE id = $1
	`, id).Scan(&artist.ID, &artist.Name, &artist.Bio, &artist.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}
	return &artist, nil
}

// ListArtists returns artists filtered by an optional name fragment.
func (s *Store) ListArtists(ctx context.Context, name string) ([]models.Artist, error) {
	query := `
		SELECT id, name, bio, created_at
		FROM artists`
	var args []interface{}
	if name != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+name+"%")
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.Bio, &artist.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

// UpdateArtist rewrites an artist's attributes.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist *models.Artist) error {
	if artist == nil {
		return errors.New("artist is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE artists
		SET name = $1, bio = $2
		WHERE id = $3
	`, strings.TrimSpace(artist.Name), artist.Bio, id)
	if err != nil {
		return fmt.Errorf("update artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// DeleteArtist removes an artist; song credit rows cascade.
func (s *Store) DeleteArtist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrArtistNotFound
	}
	return nil
}
