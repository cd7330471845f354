package store

import (
	"context"
	"errors"
	"fmt"
)

// Link-absence sentinels for the remove operations. Removing a link that is
// not there is an error, not a silent success, so callers can tell "already
// detached" from "detached now".
var (
	ErrAlbumLinkNotFound  = errors.New("song has no album assignment")
	ErrArtistLinkNotFound = errors.New("song has no such artist credit")
	ErrGenreLinkNotFound  = errors.New("song has no such genre link")
)

// AssignSongAlbum sets the song's single album slot, overwriting any prior
// assignment in place. The song_id key makes this an upsert: a song can
// never end up linked to two albums through repeated calls.
func (s *Store) AssignSongAlbum(ctx context.Context, songID, albumID int64, trackNumber *int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO album_songs (song_id, album_id, track_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (song_id)
		DO UPDATE SET album_id = EXCLUDED.album_id, track_number = EXCLUDED.track_number
	`, songID, albumID, trackNumber)
	if err != nil {
		return fmt.Errorf("assign song album: %w", err)
	}
	return nil
}

// UnassignSongAlbum clears the song's album slot.
func (s *Store) UnassignSongAlbum(ctx context.Context, songID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM album_songs WHERE song_id = $1`, songID)
	if err != nil {
		return fmt.Errorf("unassign song album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumLinkNotFound
	}
	return nil
}

// AddSongArtist records an artist credit. Unlike the album slot this is
// set-membership: a duplicate pair surfaces as a ConflictError, never an
// upsert.
func (s *Store) AddSongArtist(ctx context.Context, songID, artistID int64, role string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO song_artists (song_id, artist_id, role)
		VALUES ($1, $2, $3)
	`, songID, artistID, nullIfEmpty(role))
	if err != nil {
		if ce := asConflict(err); ce != nil {
			return ce
		}
		return fmt.Errorf("insert song artist: %w", err)
	}
	return nil
}

// RemoveSongArtist deletes an artist credit.
func (s *Store) RemoveSongArtist(ctx context.Context, songID, artistID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM song_artists
		WHERE song_id = $1 AND artist_id = $2
	`, songID, artistID)
	if err != nil {
		return fmt.Errorf("delete song artist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrArtistLinkNotFound
	}
	return nil
}

// AddSongGenre records a genre link with the same insert-or-conflict
// semantics as artist credits.
func (s *Store) AddSongGenre(ctx context.Context, songID, genreID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO song_genres (song_id, genre_id)
		VALUES ($1, $2)
	`, songID, genreID)
	if err != nil {
		if ce := asConflict(err); ce != nil {
			return ce
		}
		return fmt.Errorf("insert song genre: %w", err)
	}
	return nil
}

// RemoveSongGenre deletes a genre link.
func (s *Store) RemoveSongGenre(ctx context.Context, songID, genreID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM song_genres
		WHERE song_id = $1 AND genre_id = $2
	`, songID, genreID)
	if err != nil {
		return fmt.Errorf("delete song genre: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrGenreLinkNotFound
	}
	return nil
}
