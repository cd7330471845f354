package models

import "time"

// SongArtist is an artist credit attached to a song, with an optional role
// such as "featured".
type SongArtist struct {
	ArtistID int64  `json:"artist_id" db:"artist_id"`
	Name     string `json:"name" db:"name"`
	Role     string `json:"role,omitempty" db:"role"`
}

// SongAlbum is the song's single album assignment, when present.
type SongAlbum struct {
	AlbumID     int64  `json:"album_id" db:"album_id"`
	Title       string `json:"title" db:"title"`
	TrackNumber *int   `json:"track_number,omitempty" db:"track_number"`
}

// Song is a track in the catalog, owned by the user who uploaded it.
type Song struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Duration    *int         `json:"duration,omitempty" db:"duration"`
	MediaURL    string       `json:"media_url" db:"media_url"`
	ReleaseDate *time.Time   `json:"release_date,omitempty" db:"release_date"`
	OwnerUserID int64        `json:"owner_user_id" db:"owner_user_id"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	Artists     []SongArtist `json:"artists,omitempty"`
	Genres      []Genre      `json:"genres,omitempty"`
	Album       *SongAlbum   `json:"album,omitempty"`
}

// SongSummary is the list-view shape: artist names are flattened instead of
// carrying the full credit rows.
type SongSummary struct {
	ID          int64    `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Duration    *int     `json:"duration,omitempty" db:"duration"`
	MediaURL    string   `json:"media_url" db:"media_url"`
	OwnerUserID int64    `json:"owner_user_id" db:"owner_user_id"`
	ArtistNames []string `json:"artist_names"`
}
