package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tunecrate/internal/models"
)

// ErrFavoriteNotFound indicates the song is not in the favorites list.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoritesListForUser returns the user's favorites list, creating it on
// first use. The unique owner_user_id constraint makes concurrent first use
// safe: the insert is a no-op when another call won the race, and the
// follow-up select returns the single surviving row either way.
func (s *Store) FavoritesListForUser(ctx context.Context, userID int64) (*models.FavoritesList, error) {
	var list models.FavoritesList
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO favorites_lists (owner_user_id, created_at)
		VALUES ($1, $2)
		ON CONFLICT (owner_user_id) DO NOTHING
		RETURNING id, owner_user_id, created_at
	`, userID, time.Now().UTC()).Scan(&list.ID, &list.OwnerUserID, &list.CreatedAt)
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("create favorites list: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, created_at
		FROM favorites_lists
		WHERE owner_user_id = $1
	`, userID).Scan(&list.ID, &list.OwnerUserID, &list.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get favorites list: %w", err)
	}
	return &list, nil
}

// AddFavorite inserts a membership row. A song already in the list surfaces
// as a ConflictError.
func (s *Store) AddFavorite(ctx context.Context, listID, songID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites_list_songs (list_id, song_id, added_at)
		VALUES ($1, $2, $3)
	`, listID, songID, time.Now().UTC())
	if err != nil {
		if ce := asConflict(err); ce != nil {
			return ce
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// RemoveFavorite deletes a membership row.
func (s *Store) RemoveFavorite(ctx context.Context, listID, songID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM favorites_list_songs
		WHERE list_id = $1 AND song_id = $2
	`, listID, songID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites returns a page of favorites, most recently added first, plus
// the total membership count for pagination.
func (s *Store) ListFavorites(ctx context.Context, listID int64, limit, offset int) ([]models.FavoriteSong, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM favorites_list_songs
		WHERE list_id = $1
	`, listID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT fs.song_id, s.title, fs.added_at
		FROM favorites_list_songs fs
		JOIN songs s ON s.id = fs.song_id
		WHERE fs.list_id = $1
		ORDER BY fs.added_at DESC, fs.song_id DESC
		LIMIT $2 OFFSET $3
	`, listID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	songs := make([]models.FavoriteSong, 0)
	for rows.Next() {
		var song models.FavoriteSong
		if err := rows.Scan(&song.SongID, &song.Title, &song.AddedAt); err != nil {
			return nil, 0, fmt.Errorf("scan favorite: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate favorites: %w", err)
	}
	return songs, total, nil
}
