package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tunecrate/internal/models"
)

// ErrAlbumNotFound indicates the album does not exist.
var ErrAlbumNotFound = errors.New("album not found")

// CreateAlbum persists a new album.
func (s *Store) CreateAlbum(ctx context.Context, album *models.Album) (*models.Album, error) {
	if album == nil {
		return nil, errors.New("album is required")
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO albums (title, release_date)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, strings.TrimSpace(album.Title), album.ReleaseDate).Scan(&album.ID, &album.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert album: %w", err)
	}
	return album, nil
}

// AlbumByID returns an album with its tracks ordered by track number.
func (s *Store) AlbumByID(ctx context.Context, id int64) (*models.Album, error) {
	var album models.Album
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, release_date, created_at
		FROM albums
		WHERE id = $1
	`, id).Scan(&album.ID, &album.Title, &album.ReleaseDate, &album.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlbumNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}

	songs, err := s.albumSongs(ctx, id)
	if err != nil {
		return nil, err
	}
	album.Songs = songs
	album.SongCount = len(songs)
	return &album, nil
}

// AlbumExists reports whether the album is present without loading it.
func (s *Store) AlbumExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM albums WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check album: %w", err)
	}
	return exists, nil
}

// ListAlbums returns albums filtered by an optional title fragment.
func (s *Store) ListAlbums(ctx context.Context, title string) ([]models.Album, error) {
	query := `
		SELECT id, title, release_date, created_at
		FROM albums`
	var args []interface{}
	if title != "" {
		query += ` WHERE title ILIKE $1`
		args = append(args, "%"+title+"%")
	}
	query += ` ORDER BY title ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]models.Album, 0)
	for rows.Next() {
		var album models.Album
		if err := rows.Scan(&album.ID, &album.Title, &album.ReleaseDate, &album.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return albums, nil
}

// UpdateAlbum rewrites an album's attributes.
func (s *Store) UpdateAlbum(ctx context.Context, id int64, album *models.Album) error {
	if album == nil {
		return errors.New("album is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET title = $1, release_date = $2
		WHERE id = $3
	`, strings.TrimSpace(album.Title), album.ReleaseDate, id)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// DeleteAlbum removes an album; song assignment rows cascade.
func (s *Store) DeleteAlbum(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

func (s *Store) albumSongs(ctx context.Context, albumID int64) ([]models.AlbumSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, als.track_number, s.duration
		FROM album_songs als
		JOIN songs s ON s.id = als.song_id
		WHERE als.album_id = $1
		ORDER BY als.track_number ASC NULLS LAST, s.id ASC
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("list album songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.AlbumSong, 0)
	for rows.Next() {
		var song models.AlbumSong
		if err := rows.Scan(&song.SongID, &song.Title, &song.TrackNumber, &song.Duration); err != nil {
			return nil, fmt.Errorf("scan album song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album songs: %w", err)
	}
	return songs, nil
}
