package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"tunecrate/internal/models"
)

// ErrSongNotFound indicates the song does not exist.
var ErrSongNotFound = errors.New("song not found")

// SongFilter narrows the songs returned by ListSongs.
type SongFilter struct {
	Title       string
	OwnerUserID int64
	ArtistID    int64
	GenreID     int64
	Limit       int
	Offset      int
}

// CreateSong persists a new song owned by the given user.
func (s *Store) CreateSong(ctx context.Context, song *models.Song) (*models.Song, error) {
	if song == nil {
		return nil, errors.New("song is required")
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (title, duration, media_url, release_date, owner_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, strings.TrimSpace(song.Title), song.Duration, song.MediaURL, song.ReleaseDate, song.OwnerUserID).
		Scan(&song.ID, &song.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert song: %w", err)
	}
	return song, nil
}

// SongByID returns a song with its artist credits, genres, and album
// assignment.
func (s *Store) SongByID(ctx context.Context, id int64) (*models.Song, error) {
	var song models.Song
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, duration, media_url, release_date, owner_user_id, created_at
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Duration, &song.MediaURL,
		&song.ReleaseDate, &song.OwnerUserID, &song.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get song: %w", err)
	}

	if song.Artists, err = s.songArtists(ctx, id); err != nil {
		return nil, err
	}
	if song.Genres, err = s.songGenres(ctx, id); err != nil {
		return nil, err
	}
	if song.Album, err = s.songAlbum(ctx, id); err != nil {
		return nil, err
	}
	return &song, nil
}

// SongOwner returns the owning user of a song without loading its relations.
func (s *Store) SongOwner(ctx context.Context, id int64) (int64, error) {
	var owner int64
	err := s.db.QueryRowContext(ctx, `
		SELECT owner_user_id
		FROM songs
		WHERE id = $1
	`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSongNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get song owner: %w", err)
	}
	return owner, nil
}

// ListSongs returns song summaries with flattened artist names.
func (s *Store) ListSongs(ctx context.Context, filter SongFilter) ([]models.SongSummary, error) {
	query := `
		SELECT s.id, s.title, s.duration, s.media_url, s.owner_user_id,
			COALESCE(array_agg(a.name ORDER BY a.name) FILTER (WHERE a.id IS NOT NULL), '{}')
		FROM songs s
		LEFT JOIN song_artists sa ON sa.song_id = s.id
		LEFT JOIN artists a ON a.id = sa.artist_id`

	var (
		conds []string
		args  []interface{}
	)
	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		conds = append(conds, fmt.Sprintf("s.title ILIKE $%d", len(args)))
	}
	if filter.OwnerUserID != 0 {
		args = append(args, filter.OwnerUserID)
		conds = append(conds, fmt.Sprintf("s.owner_user_id = $%d", len(args)))
	}
	if filter.ArtistID != 0 {
		args = append(args, filter.ArtistID)
		conds = append(conds, fmt.Sprintf("s.id IN (SELECT song_id FROM song_artists WHERE artist_id = $%d)", len(args)))
	}
	if filter.GenreID != 0 {
		args = append(args, filter.GenreID)
		conds = append(conds, fmt.Sprintf("s.id IN (SELECT song_id FROM song_genres WHERE genre_id = $%d)", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY s.id ORDER BY s.title ASC, s.id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.SongSummary, 0)
	for rows.Next() {
		var song models.SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Duration, &song.MediaURL,
			&song.OwnerUserID, pq.Array(&song.ArtistNames)); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// UpdateSong rewrites a song's attributes.
func (s *Store) UpdateSong(ctx context.Context, id int64, song *models.Song) error {
	if song == nil {
		return errors.New("song is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET title = $1, duration = $2, media_url = $3, release_date = $4
		WHERE id = $5
	`, strings.TrimSpace(song.Title), song.Duration, song.MediaURL, song.ReleaseDate, id)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a song. Membership rows in playlists, favorites, and
// association tables cascade at the schema level.
func (s *Store) DeleteSong(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

func (s *Store) songArtists(ctx context.Context, songID int64) ([]models.SongArtist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, COALESCE(sa.role, '')
		FROM song_artists sa
		JOIN artists a ON a.id = sa.artist_id
		WHERE sa.song_id = $1
		ORDER BY a.name ASC, a.id ASC
	`, songID)
	if err != nil {
		return nil, fmt.Errorf("list song artists: %w", err)
	}
	defer rows.Close()

	var artists []models.SongArtist
	for rows.Next() {
		var artist models.SongArtist
		if err := rows.Scan(&artist.ArtistID, &artist.Name, &artist.Role); err != nil {
			return nil, fmt.Errorf("scan song artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate song artists: %w", err)
	}
	return artists, nil
}

func (s *Store) songGenres(ctx context.Context, songID int64) ([]models.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name
		FROM song_genres sg
		JOIN genres g ON g.id = sg.genre_id
		WHERE sg.song_id = $1
		ORDER BY g.name ASC
	`, songID)
	if err != nil {
		return nil, fmt.Errorf("list song genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, fmt.Errorf("scan song genre: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate song genres: %w", err)
	}
	return genres, nil
}

func (s *Store) songAlbum(ctx context.Context, songID int64) (*models.SongAlbum, error) {
	var album models.SongAlbum
	err := s.db.QueryRowContext(ctx, `
		SELECT al.id, al.title, als.track_number
		FROM album_songs als
		JOIN albums al ON al.id = als.album_id
		WHERE als.song_id = $1
	`, songID).Scan(&album.AlbumID, &album.Title, &album.TrackNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get song album: %w", err)
	}
	return &album, nil
}
