package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tunecrate/internal/models"
)

var (
	// ErrPlaylistNotFound indicates the playlist does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrPlaylistSongNotFound indicates the song is not a member of the playlist.
	ErrPlaylistSongNotFound = errors.New("song not found in playlist")
)

// UnknownMemberError names the song that made a reorder batch invalid.
type UnknownMemberError struct {
	PlaylistID int64
	SongID     int64
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("song %d is not a member of playlist %d", e.SongID, e.PlaylistID)
}

// CreatePlaylist persists a new playlist. ownerUserID must be nil exactly
// when kind is system. A duplicate name for the same owner surfaces as a
// ConflictError.
func (s *Store) CreatePlaylist(ctx context.Context, name, kind string, ownerUserID *int64) (*models.Playlist, error) {
	playlist := models.Playlist{
		Name:        strings.TrimSpace(name),
		Kind:        kind,
		OwnerUserID: ownerUserID,
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (name, kind, owner_user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, created_at, updated_at
	`, playlist.Name, kind, ownerUserID, time.Now().UTC()).
		Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		if ce := asConflict(err); ce != nil {
			return nil, ce
		}
		return nil, fmt.Errorf("insert playlist: %w", err)
	}

	playlist.Songs = make([]models.PlaylistSong, 0)
	return &playlist, nil
}

// PlaylistByID returns a playlist with its membership in playback order.
func (s *Store) PlaylistByID(ctx context.Context, id int64) (*models.Playlist, error) {
	playlist, err := s.playlistMeta(ctx, id)
	if err != nil {
		return nil, err
	}

	songs, err := s.listPlaylistSongs(ctx, id)
	if err != nil {
		return nil, err
	}
	playlist.Songs = songs
	playlist.SongCount = len(songs)
	return playlist, nil
}

// PlaylistMeta returns a playlist's attributes without loading membership.
// Services use it for the ownership gate before any mutation.
func (s *Store) PlaylistMeta(ctx context.Context, id int64) (*models.Playlist, error) {
	return s.playlistMeta(ctx, id)
}

// ListPlaylists returns the system playlists plus those owned by the user,
// newest first.
func (s *Store) ListPlaylists(ctx context.Context, userID int64) ([]*models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, owner_user_id, created_at, updated_at
		FROM playlists
		WHERE kind = 'system' OR owner_user_id = $1
		ORDER BY kind ASC, created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Kind,
			&playlist.OwnerUserID, &playlist.CreatedAt, &playlist.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	for _, playlist := range playlists {
		songs, err := s.listPlaylistSongs(ctx, playlist.ID)
		if err != nil {
			return nil, err
		}
		playlist.Songs = songs
		playlist.SongCount = len(songs)
	}
	return playlists, nil
}

// RenamePlaylist updates a playlist's name. A duplicate name for the same
// owner surfaces as a ConflictError.
func (s *Store) RenamePlaylist(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE playlists
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, strings.TrimSpace(name), time.Now().UTC(), id)
	if err != nil {
		if ce := asConflict(err); ce != nil {
			return ce
		}
		return fmt.Errorf("rename playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// DeletePlaylist removes a playlist and, by cascade, its membership rows.
func (s *Store) DeletePlaylist(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddPlaylistSong inserts a membership row. A song already in the playlist
// surfaces as a ConflictError; the position is stored as provided and may
// be nil.
func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID int64, position *int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_id, position, added_at)
		VALUES ($1, $2, $3, $4)
	`, playlistID, songID, position, time.Now().UTC())
	if err != nil {
		if ce := asConflict(err); ce != nil {
			return ce
		}
		return fmt.Errorf("insert playlist song: %w", err)
	}

	s.touchPlaylist(ctx, playlistID)
	return nil
}

// RemovePlaylistSong deletes a membership row.
func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistSongNotFound
	}

	s.touchPlaylist(ctx, playlistID)
	return nil
}

// ReorderPlaylistSongs applies the whole position batch inside one
// transaction: either every update lands or none does. An item naming a song
// that is not currently a member rolls the batch back and returns an
// UnknownMemberError for it.
func (s *Store) ReorderPlaylistSongs(ctx context.Context, playlistID int64, items []models.PositionUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE playlist_songs
		SET position = $1
		WHERE playlist_id = $2 AND song_id = $3
	`)
	if err != nil {
		return fmt.Errorf("prepare position update: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		res, err := stmt.ExecContext(ctx, item.Position, playlistID, item.SongID)
		if err != nil {
			return fmt.Errorf("update position: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return &UnknownMemberError{PlaylistID: playlistID, SongID: item.SongID}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE playlists SET updated_at = $1 WHERE id = $2
	`, time.Now().UTC(), playlistID); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	tx = nil

	return nil
}

func (s *Store) playlistMeta(ctx context.Context, id int64) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, kind, owner_user_id, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`, id).Scan(&playlist.ID, &playlist.Name, &playlist.Kind,
		&playlist.OwnerUserID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &playlist, nil
}

// listPlaylistSongs returns membership in playback order: explicit positions
// first, then unpositioned entries by insertion order, ties by song id.
func (s *Store) listPlaylistSongs(ctx context.Context, playlistID int64) ([]models.PlaylistSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ps.song_id, s.title, ps.position, ps.added_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.position ASC NULLS LAST, ps.added_at ASC, ps.song_id ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.PlaylistSong, 0)
	for rows.Next() {
		var song models.PlaylistSong
		if err := rows.Scan(&song.SongID, &song.Title, &song.Position, &song.AddedAt); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return songs, nil
}

// touchPlaylist bumps updated_at. A failure here does not fail the caller
// since the membership write itself already landed, but it is logged so the
// stale timestamp is traceable.
func (s *Store) touchPlaylist(ctx context.Context, id int64) {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE playlists SET updated_at = $1 WHERE id = $2
	`, time.Now().UTC(), id); err != nil {
		log.Debug().Err(err).Int64("playlist_id", id).Msg("failed to bump playlist updated_at")
	}
}
