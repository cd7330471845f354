package models

import "time"

// Artist is a musical artist with an independent lifecycle; songs reference
// it through credit rows.
type Artist struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Genre is a named category; names are unique.
type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// AlbumSong is a track listed inside an album, ordered by track number.
type AlbumSong struct {
	SongID      int64 `json:"song_id" db:"song_id"`
	Title       string `json:"title" db:"title"`
	TrackNumber *int   `json:"track_number,omitempty" db:"track_number"`
	Duration    *int   `json:"duration,omitempty" db:"duration"`
}

// Album is a record in the catalog holding an ordered collection of songs.
type Album struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	ReleaseDate *time.Time  `json:"release_date,omitempty" db:"release_date"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	Songs       []AlbumSong `json:"songs,omitempty"`
	SongCount   int         `json:"song_count"`
}
