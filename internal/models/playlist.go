package models

import "time"

// Playlist kinds. System playlists are curated by admins and readable by
// anyone; user playlists are private to their owner.
const (
	PlaylistKindSystem = "system"
	PlaylistKindUser   = "user"
)

// PlaylistSong is a song's membership in a playlist. Position is optional
// and not required to be contiguous; entries without a position sort last.
type PlaylistSong struct {
	SongID   int64     `json:"song_id" db:"song_id"`
	Title    string    `json:"title" db:"title"`
	Position *int      `json:"position,omitempty" db:"position"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
}

// Playlist captures an ordered list of songs. OwnerUserID is nil exactly when
// the playlist is system-kind.
type Playlist struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Kind        string         `json:"kind" db:"kind"`
	OwnerUserID *int64         `json:"owner_user_id,omitempty" db:"owner_user_id"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
	SongCount   int            `json:"song_count"`
	Songs       []PlaylistSong `json:"songs,omitempty"`
}

// PositionUpdate is one entry of a reorder batch.
type PositionUpdate struct {
	SongID   int64 `json:"song_id"`
	Position int   `json:"position"`
}
